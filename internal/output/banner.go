// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
)

// Banner draws a bordered block with a bold title above numbered lines. It is
// used for the manual console step and the destructive cleanup warning.
func Banner(w io.Writer, title string, lines []string, opts Options) {
	if w == nil {
		w = os.Stdout
	}

	titleStyle := lipgloss.NewStyle().Bold(true)
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)

	if opts.Color {
		header, _, odd := getColors("colors")
		titleStyle = titleStyle.Foreground(header)
		box = box.BorderForeground(odd)
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(title))
	for i, l := range lines {
		fmt.Fprintf(&b, "\n%d. %s", i+1, l)
	}

	fmt.Fprintln(w, box.Render(b.String()))
}
