// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package filters

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/apex/log"
	"github.com/tidwall/gjson"
)

// filterRegex splits a filter expression into key, operator and target.
// Operators are one of = ~ ^ < > @ or /, optionally prefixed with '!'.
var filterRegex = regexp.MustCompile(`^([^!=~^<>@/]*)(!?[=~^<>@/])?(.*)$`)

// Filter is a single parsed --filter expression.
type Filter struct {
	Key     string `yaml:"key" json:"key"`
	Negate  bool   `yaml:"negate" json:"negate"`
	Operand string `yaml:"operand" json:"operand"`
	Value   string `yaml:"value" json:"value"`
}

func (f Filter) String() string {
	neg := ""
	if f.Negate {
		neg = "!"
	}
	return f.Key + neg + f.Operand + f.Value
}

// Parse turns a filter spec into a slice of Filter. Entries are split on ","
// or on Q3P_FILTER_DELIM when set. Entries without a key or operator are
// logged and skipped.
func Parse(spec string) []Filter {
	//nolint:prealloc
	var filters []Filter

	if strings.TrimSpace(spec) == "" {
		return filters
	}

	delim := ","
	if d, ok := os.LookupEnv("Q3P_FILTER_DELIM"); ok && d != "" {
		delim = d
	}

	for _, entry := range strings.Split(spec, delim) {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		parts := filterRegex.FindStringSubmatch(entry)
		if parts == nil {
			log.Error("invalid filter: " + entry)
			continue
		}

		key := strings.TrimSpace(parts[1])
		operand := parts[2]
		if key == "" || operand == "" {
			log.Error("invalid filter: " + entry)
			continue
		}

		negate := strings.HasPrefix(operand, "!")
		filters = append(filters, Filter{
			Key:     key,
			Negate:  negate,
			Operand: strings.TrimPrefix(operand, "!"),
			Value:   parts[3],
		})
	}

	return filters
}

// Match reports whether candidate passes every filter. Keys are gjson paths
// into the candidate. A filter whose key is absent from the candidate is
// reported once on stderr and ignored.
func Match(candidate gjson.Result, filters []Filter) bool {
	for _, f := range filters {
		value := candidate.Get(f.Key)
		if !value.Exists() {
			warnUnknownKey(f.Key)
			continue
		}
		if !checkStringOperand(value.String(), f) {
			return false
		}
	}
	return true
}

var warned = map[string]bool{}

func warnUnknownKey(key string) {
	if warned[key] {
		return
	}
	warned[key] = true
	msg := fmt.Sprintf("filter key not found: %s", key)
	log.Error(msg)
	fmt.Fprintf(os.Stderr, "warning: %s\n", msg)
}

// checkStringOperand evaluates one filter against value.
func checkStringOperand(value string, filter Filter) bool {
	switch filter.Operand {
	case "=":
		return value == filter.Value == !filter.Negate
	case "~":
		return strings.EqualFold(value, filter.Value) == !filter.Negate
	case "^":
		return strings.HasPrefix(value, filter.Value) == !filter.Negate
	case ">":
		return value > filter.Value == !filter.Negate
	case "<":
		return value < filter.Value == !filter.Negate
	case "@":
		return strings.Contains(value, filter.Value) == !filter.Negate
	case "/":
		matched, err := regexp.MatchString(filter.Value, value)
		if err != nil {
			log.Error("invalid regex: " + filter.Value)
			return false
		}
		return matched == !filter.Negate
	default:
		log.Error("unsupported filtering operand: " + filter.Operand)
		return false
	}
}
