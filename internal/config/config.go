// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/apex/log"
	"gopkg.in/yaml.v3"
)

// Type is the loaded q3p.yaml. Source is the file read, Namespace the
// subcommand section preferred by lookups, Data the raw YAML tree.
type Type struct {
	Source    string
	Namespace string
	Data      map[string]any
}

// Config is the process-wide configuration. A missing file leaves it empty.
var Config Type

func init() {
	_, _ = Load()
}

// GetString returns the string at key. A single defaultValue is returned when
// the key is absent.
func GetString(key string, defaultValue ...string) (string, error) {
	return lookup(key, defaultValue, func(v any) (string, bool) {
		s, ok := v.(string)
		return s, ok
	})
}

// GetBool returns the boolean at key. Subcommands use it for switches the
// operator wants on by default, e.g. cleanup.confirm.
func GetBool(key string, defaultValue ...bool) (bool, error) {
	return lookup(key, defaultValue, func(v any) (bool, bool) {
		b, ok := v.(bool)
		return b, ok
	})
}

// GetStringSlice returns the list of strings at key. @set expansion reads
// its argument lists through it.
func GetStringSlice(key string, defaultValue ...[]string) ([]string, error) {
	return lookup(key, defaultValue, func(v any) ([]string, bool) {
		items, ok := v.([]any)
		if !ok {
			return nil, false
		}
		out := make([]string, 0, len(items))
		for _, item := range items {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	})
}

// lookup resolves key, preferring the namespaced section, and converts the
// value with as. A missing key yields the single default if one was given.
func lookup[T any](key string, defaultValue []T, as func(any) (T, bool)) (T, error) {
	var zero T

	if len(Config.Data) == 0 {
		_, _ = Load(Config.Namespace)
	}

	val, err := Config.get(key)
	if err != nil {
		if len(defaultValue) == 1 {
			return defaultValue[0], nil
		}
		return zero, err
	}

	v, ok := as(val)
	if !ok {
		return zero, fmt.Errorf("config key %s: unexpected type %T", key, val)
	}
	return v, nil
}

// Load reads the config file into Config. namespace, when given, selects the
// section lookups try first.
// A failed load leaves Config empty rather than holding an earlier file.
func Load(namespace ...string) (Type, error) {
	var ns string
	if len(namespace) > 0 {
		ns = namespace[0]
	}
	Config = Type{Namespace: ns}

	path, err := getConfigFile()
	if err != nil {
		return Type{}, err
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return Type{}, err
	}

	var data map[string]any
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return Type{}, fmt.Errorf("parse %s: %w", path, err)
	}

	Config = Type{Source: path, Namespace: ns, Data: data}
	return Config, nil
}

// get walks a dotted key, trying Namespace+"."+kspec before kspec.
func (cfg *Type) get(kspec string) (any, error) {
	candidates := []string{kspec}
	if cfg.Namespace != "" {
		candidates = []string{cfg.Namespace + "." + kspec, kspec}
	}

	for _, key := range candidates {
		if v, ok := walk(cfg.Data, strings.Split(key, ".")); ok {
			return v, nil
		}
	}

	return nil, fmt.Errorf("no valid path found among: %v", candidates)
}

func walk(node any, path []string) (any, bool) {
	for _, p := range path {
		m, ok := node.(map[string]any)
		if !ok {
			return nil, false
		}
		if node, ok = m[p]; !ok {
			return nil, false
		}
	}
	return node, true
}

// getConfigFile locates q3p.yaml. Q3P_CFG_FILE names the file outright;
// otherwise os.UserConfigDir()/q3p.yaml is used if it exists.
func getConfigFile() (string, error) {
	if cfgPath := os.Getenv("Q3P_CFG_FILE"); cfgPath != "" {
		fi, err := os.Stat(cfgPath)
		if err != nil {
			return "", fmt.Errorf("config file not found at Q3P_CFG_FILE path: %s", cfgPath)
		}
		if fi.IsDir() {
			return "", fmt.Errorf("Q3P_CFG_FILE points to a directory: %s", cfgPath)
		}
		log.Debugf("using config file from Q3P_CFG_FILE: %s", cfgPath)
		return cfgPath, nil
	}

	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}

	file := filepath.Join(dir, "q3p.yaml")
	if fi, err := os.Stat(file); err == nil && !fi.IsDir() {
		log.Debugf("using config file: %s", file)
		return file, nil
	}

	return "", fmt.Errorf("no config file found in standard locations")
}
