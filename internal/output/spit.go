// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"encoding/json"
	"fmt"
	"image/color"
	"io"
	"os"
	"reflect"
	"strconv"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/lipgloss/v2/table"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/aws-samples/sample-amazon-q-logging-stats/internal/config"
)

// Options control how results are rendered.
type Options struct {
	Format  string
	Color   bool
	Titles  bool
	Padding int
}

// OptionsFrom reads the rendering flags off cmd. Flags the command does not
// define keep their zero value.
func OptionsFrom(cmd *cli.Command) Options {
	opts := Options{Format: "text", Padding: 2, Titles: true}
	if cmd == nil {
		return opts
	}
	if f := cmd.String("output"); f != "" {
		opts.Format = f
	}
	opts.Color = cmd.Bool("color")
	if cmd.IsSet("titles") {
		opts.Titles = cmd.Bool("titles")
	}
	if cmd.IsSet("padding") {
		opts.Padding = int(cmd.Int("padding"))
	}
	return opts
}

// Table is a rendered text view of a result.
type Table struct {
	Header string
	Titles []string
	Rows   [][]string
	Footer string
}

// InterfaceToString converts supported primitive or composite values to a
// string. A custom empty value may be provided.
func InterfaceToString(value interface{}, emptyValue ...string) string {
	if len(emptyValue) == 0 {
		emptyValue = []string{""}
	}

	if value == nil || reflect.ValueOf(value).IsZero() {
		return emptyValue[0]
	}

	switch value := value.(type) {
	case string:
		return value
	case int:
		return strconv.Itoa(value)
	case float64:
		return fmt.Sprintf("%.0f", value)
	case bool:
		return strconv.FormatBool(value)
	case fmt.Stringer:
		return value.String()
	default:
		jsonBytes, err := json.Marshal(value)
		if err != nil {
			return fmt.Sprintf("%v", value)
		}
		return string(jsonBytes)
	}
}

// Spit writes doc in the format the command's --output flag selects. json and
// yaml marshal doc itself; text renders tbl.
func Spit(doc any, tbl Table, cmd *cli.Command, w io.Writer) error {
	return Write(doc, tbl, OptionsFrom(cmd), w)
}

// Write is Spit with explicit options. If w is nil, os.Stdout is used.
func Write(doc any, tbl Table, opts Options, w io.Writer) error {
	if w == nil {
		w = os.Stdout
	}

	switch opts.Format {
	case "json":
		b, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return fmt.Errorf("json marshal: %w", err)
		}
		_, err = fmt.Fprintln(w, string(b))
		return err
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("yaml marshal: %w", err)
		}
		return enc.Close()
	default:
		TableWriter(tbl, opts, w)
		return nil
	}
}

// TableWriter renders tbl honoring color, titles and padding options. If w
// is nil, os.Stdout is used.
func TableWriter(tbl Table, opts Options, w io.Writer) {
	if w == nil {
		w = os.Stdout
	}

	var (
		headerStyle  = lipgloss.NewStyle().Align(lipgloss.Left).Bold(true)
		cellStyle    = lipgloss.NewStyle().Padding(0, 0).Align(lipgloss.Left)
		evenRowStyle = cellStyle
		oddRowStyle  = cellStyle
	)

	if opts.Color {
		headerColor, evenColor, oddColor := getColors("colors")

		headerStyle = headerStyle.Foreground(headerColor)
		evenRowStyle = evenRowStyle.Foreground(evenColor)
		oddRowStyle = oddRowStyle.Foreground(oddColor)
	}

	if tbl.Header != "" {
		fmt.Fprintln(w, headerStyle.Render(tbl.Header))
	}

	if len(tbl.Rows) > 0 {
		pad := opts.Padding
		t := table.New().
			BorderBottom(false).
			BorderTop(false).
			BorderLeft(false).
			BorderRight(false).
			Border(lipgloss.HiddenBorder()).
			StyleFunc(func(row, col int) lipgloss.Style {
				var style lipgloss.Style
				switch {
				case row == table.HeaderRow:
					style = headerStyle
				case row%2 == 0:
					style = evenRowStyle
				default:
					style = oddRowStyle
				}

				if col > 0 {
					style = style.PaddingLeft(pad)
				}

				return style
			}).
			Headers().
			Rows(tbl.Rows...)

		if opts.Titles && len(tbl.Titles) > 0 {
			// https://github.com/charmbracelet/lipgloss/issues/261
			t = t.Headers(tbl.Titles...).BorderHeader(false)
		}
		fmt.Fprintln(w, t)
	}

	if tbl.Footer != "" {
		fmt.Fprintln(w, headerStyle.Render(tbl.Footer))
	}
}

// getColors returns configured color values for table rendering. Each color is
// selected based on terminal background color and brightness so that we can
// make sure output is reasonably visible for all(?) terminal themes.
func getColors(key string) (header, even, odd color.Color) {
	isDark := lipgloss.HasDarkBackground(os.Stdin, os.Stdout)

	// Use the explicit color if found in the config and leave it up to the user
	// to choose appropriate colors for their theme. If not found, pick a
	// reasonable default based on terminal background.
	resolveColor := func(key string, light string, dark string) color.Color {
		colorCfg, err := config.GetString(key)
		if err == nil {
			return lipgloss.Color(colorCfg)
		}

		if isDark {
			return lipgloss.Color(dark)
		}
		return lipgloss.Color(light)
	}

	header = resolveColor(key+".title", "#b08800", "#f6be00")
	even = resolveColor(key+".even", "#333333", "#ffffff")
	odd = resolveColor(key+".odd", "#0088a0", "#00c8f0")

	return
}
