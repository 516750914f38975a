// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/aws-samples/sample-amazon-q-logging-stats/internal/log"
)

// ErrNoInput is returned when stdin closes before the operator answers.
var ErrNoInput = errors.New("no input on stdin; rerun interactively or pass the non-interactive flag")

// isTerminal reports whether r is an interactive terminal.
func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// readLine reads one answer from in. A final line without a newline counts;
// an empty stream is ErrNoInput. When in is not a terminal nothing echoes the
// answer, so it is written to out to keep the transcript readable.
func readLine(in io.Reader, out io.Writer) (string, error) {
	line, err := bufio.NewReader(in).ReadString('\n')
	answer := strings.TrimSpace(line)

	if !isTerminal(in) {
		log.Debugf("stdin is not a terminal, echoing answer %q", answer)
		fmt.Fprintln(out, answer)
	}

	switch {
	case err == nil:
		return answer, nil
	case errors.Is(err, io.EOF) && line != "":
		return answer, nil
	case errors.Is(err, io.EOF):
		return "", ErrNoInput
	default:
		return "", err
	}
}

// Confirm asks question and reports whether the operator answered yes, in
// any letter case.
func Confirm(in io.Reader, out io.Writer, question string) (bool, error) {
	fmt.Fprintf(out, "\n%s (type 'yes' to confirm): ", question)
	answer, err := readLine(in, out)
	if err != nil {
		return false, err
	}
	return strings.EqualFold(answer, "yes"), nil
}

// Pause prints msg and blocks until the operator presses Enter.
func Pause(in io.Reader, out io.Writer, msg string) error {
	fmt.Fprintf(out, "\n%s", msg)
	_, err := readLine(in, out)
	return err
}
