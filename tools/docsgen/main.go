// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// docsgen renders the q3p command reference and tldr pages from
// docs/templates/q3p.yaml.
//
//	go run ./tools/docsgen docs
package main

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"text/template"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Subcommands []Subcommand `yaml:"subcommands"`
	Common      Common       `yaml:"common"`
}

type Common struct {
	Flags []Flag `yaml:"flags"`
}

type Subcommand struct {
	ID          string    `yaml:"id"`
	Short       string    `yaml:"short"`
	Description string    `yaml:"description"`
	Usage       string    `yaml:"usage"`
	Flags       []Flag    `yaml:"flags"`
	Examples    []Example `yaml:"examples"`
	Notes       []string  `yaml:"notes,omitempty"`
}

type Flag struct {
	ID          string `yaml:"id"`
	Syntax      string `yaml:"syntax"`
	Description string `yaml:"description"`
	Default     string `yaml:"default,omitempty"`
	Env         string `yaml:"env,omitempty"`
}

type Example struct {
	Command     string `yaml:"command"`
	Description string `yaml:"description"`
}

type TemplateData struct {
	Subcommand
	Date    string
	Version string
}

// Output is one rendered artifact per subcommand.
type Output struct {
	Template string
	Folder   string
	Prefix   string
	Suffix   string
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: docsgen DOCS_DIR")
		os.Exit(1)
	}
	if err := run(os.Args[1], getVersion(), time.Now()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(docs, version string, now time.Time) error {
	data, err := os.ReadFile(filepath.Join(docs, "templates", "q3p.yaml"))
	if err != nil {
		return err
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return fmt.Errorf("parse q3p.yaml: %w", err)
	}

	outputs := []Output{
		{Template: filepath.Join(docs, "templates", "q3p.md.tmpl"), Folder: filepath.Join(docs, "commands"), Suffix: ".md"},
		{Template: filepath.Join(docs, "templates", "q3p.tldr.tmpl"), Folder: filepath.Join(docs, "tldr"), Prefix: "q3p-", Suffix: ".md"},
	}

	for _, sub := range config.Subcommands {
		sub.Flags = mergeFlags(config.Common.Flags, sub.Flags)
		meta := TemplateData{
			Subcommand: sub,
			Date:       now.Format("January 2, 2006"),
			Version:    version,
		}

		for _, o := range outputs {
			if err := os.MkdirAll(o.Folder, 0o755); err != nil {
				return err
			}
			path := filepath.Join(o.Folder, o.Prefix+sub.ID+o.Suffix)
			fmt.Println("Generating", path)
			if err := renderFile(o.Template, path, meta); err != nil {
				return err
			}
		}
	}
	return nil
}

// mergeFlags returns the common flags plus the subcommand's own, sorted by ID.
// The common slice is never modified.
func mergeFlags(common, own []Flag) []Flag {
	merged := make([]Flag, 0, len(common)+len(own))
	merged = append(merged, common...)
	merged = append(merged, own...)
	sort.Slice(merged, func(i, j int) bool {
		return merged[i].ID < merged[j].ID
	})
	return merged
}

func renderFile(tmplPath, outPath string, data TemplateData) error {
	tmpl, err := template.ParseFiles(tmplPath)
	if err != nil {
		return err
	}

	file, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer file.Close()

	return render(tmpl, file, data)
}

func render(tmpl *template.Template, w io.Writer, data TemplateData) error {
	return tmpl.Execute(w, data)
}

// getVersion returns the version string from git tags, stripping the leading
// "v" prefix. Falls back to "dev" if git describe fails.
func getVersion() string {
	out, err := exec.Command("git", "describe", "--tags", "--abbrev=0").Output()
	if err != nil {
		return "dev"
	}

	version := strings.TrimSpace(string(out))
	return strings.TrimPrefix(version, "v")
}
