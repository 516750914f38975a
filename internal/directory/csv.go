// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package directory

import (
	"encoding/csv"
	"fmt"
	"io"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/identitystore/types"
)

// Header is the CSV header row, in column order.
var Header = []string{"UserId", "Username", "Email", "GivenName", "FamilyName"}

// User is one exported directory user. Absent attributes are "".
type User struct {
	UserID     string `json:"user_id" yaml:"user_id"`
	Username   string `json:"username" yaml:"username"`
	Email      string `json:"email" yaml:"email"`
	GivenName  string `json:"given_name" yaml:"given_name"`
	FamilyName string `json:"family_name" yaml:"family_name"`
}

// Row returns the user's CSV columns in Header order.
func (u User) Row() []string {
	return []string{u.UserID, u.Username, u.Email, u.GivenName, u.FamilyName}
}

// userFromType flattens an identity store user. Only the primary email is
// taken; a user without one exports an empty Email.
func userFromType(u types.User) User {
	out := User{
		UserID:   awsv2.ToString(u.UserId),
		Username: awsv2.ToString(u.UserName),
	}
	if u.Name != nil {
		out.GivenName = awsv2.ToString(u.Name.GivenName)
		out.FamilyName = awsv2.ToString(u.Name.FamilyName)
	}
	for _, e := range u.Emails {
		if e.Primary {
			out.Email = awsv2.ToString(e.Value)
			break
		}
	}
	return out
}

// WriteCSV writes Header followed by one row per user. Rows end in CRLF as
// RFC 4180 specifies.
func WriteCSV(w io.Writer, users []User) error {
	cw := csv.NewWriter(w)
	cw.UseCRLF = true
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, u := range users {
		if err := cw.Write(u.Row()); err != nil {
			return fmt.Errorf("failed to write csv row for %s: %w", u.UserID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
