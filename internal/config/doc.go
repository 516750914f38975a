// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package config provides loading and typed accessors for q3p's user
// configuration. The configuration is expected to be a YAML document located
// in the user's configuration directory, typically:
//   - Linux/macOS: $XDG_CONFIG_HOME/q3p.yaml or $HOME/.config/q3p.yaml
//   - Windows: %APPDATA%/q3p.yaml
//
// Q3P_CFG_FILE overrides the location. Keys may be namespaced by subcommand,
// for example:
//
//	region: us-west-2
//	setup:
//	  bucket_name: my-q-export
//	  export_users: true
//
// Actual resolution relies on os.UserConfigDir which follows platform
// conventions.
package config
