// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/aws-samples/sample-amazon-q-logging-stats/internal/meta"
)

const bashCompletionScript = `# bash completion for q3p
# Fallback if bash-completion is not installed
if ! declare -F _get_comp_words_by_ref >/dev/null 2>&1; then
  _get_comp_words_by_ref() {
    cur=${COMP_WORDS[COMP_CWORD]}
    prev=${COMP_WORDS[COMP_CWORD-1]}
  }
fi

_q3p()
{
    local cur prev cmd
    COMPREPLY=()
    _get_comp_words_by_ref -n : cur prev

    if [[ ${COMP_CWORD} -eq 1 ]]; then
        COMPREPLY=( $(compgen -W "setup cleanup export-users completion --help --version" -- "$cur") )
        return 0
    fi

    cmd=${COMP_WORDS[1]}
    local common="--bucket-name -b --color -c --output -o --profile -p --region -r --titles -t --tldr"

    case "$cmd" in
        setup)
            local opts="$common --export-users --filter --output-file -f --trail-name --yes -y"
            ;;
        cleanup)
            local opts="$common --confirm --trail-name"
            ;;
        export-users)
            local opts="$common --filter --output-file -f"
            ;;
        completion)
            COMPREPLY=( $(compgen -W "bash zsh" -- "$cur") )
            return 0
            ;;
        *)
            local opts="$common"
            ;;
    esac

    case "$prev" in
        --output|-o)
            COMPREPLY=( $(compgen -W "text json yaml" -- "$cur") )
            return 0
            ;;
        --output-file|-f)
            COMPREPLY=( $(compgen -f -- "$cur") )
            return 0
            ;;
    esac

    COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
    return 0
}

complete -F _q3p q3p
`

const zshCompletionScript = `#compdef q3p

_q3p() {
  local -a cmds
  cmds=(
    'setup:provision the bucket and trail for Amazon Q Developer export'
    'cleanup:delete the export resources'
    'export-users:export IAM Identity Center users to the bucket as CSV'
    'completion:generate shell completion script'
  )

  local -a common
  common=(
  '(-b --bucket-name)'{-b,--bucket-name}'[S3 bucket name]:bucket'
  '(-c --color)'{-c,--color}'[enable colored text]'
  '(-o --output)'{-o,--output}'[output format]:format:(text json yaml)'
  '(-p --profile)'{-p,--profile}'[AWS profile]:profile'
  '(-r --region)'{-r,--region}'[AWS region]:region'
  '(-t --titles)'{-t,--titles}'[show titles]'
  '--tldr[show tldr page]'
  )

  if (( CURRENT == 2 )); then
    _describe -t commands 'q3p commands' cmds
    return
  fi

  local curcontext="$curcontext" state line
  case $words[2] in
    setup)
      _arguments -C \
        $common \
        '--export-users[export users after setup]' \
        '--filter[filters selecting exported users]:filters' \
        '(-f --output-file)'{-f,--output-file}'[CSV object name]:file:_files' \
        '--trail-name[trail to create]:trail' \
        '(-y --yes)'{-y,--yes}'[skip the manual step pause]'
      ;;
    cleanup)
      _arguments -C \
        $common \
        '--confirm[skip the confirmation prompt]' \
        '--trail-name[trail to delete]:trail'
      ;;
    export-users)
      _arguments -C \
        $common \
        '--filter[filters selecting exported users]:filters' \
        '(-f --output-file)'{-f,--output-file}'[CSV object name]:file:_files'
      ;;
    completion)
      _arguments '1: :((bash zsh))'
      ;;
    *)
      _arguments -C $common
      ;;
  esac
}

# If this file is sourced directly (not autoloaded via fpath), ensure compsys
# is initialized and register the completion
if ! typeset -f compdef >/dev/null 2>&1; then
  autoload -Uz compinit && compinit -i
fi
compdef _q3p q3p
`

func completionCommandAction(ctx context.Context, cmd *cli.Command) error {
	_, out := streams(GetMeta(cmd))

	shell := ""
	if args := cmd.Args().Slice(); len(args) > 0 {
		shell = args[0]
	}
	if shell == "" {
		// Try to detect from SHELL.
		sh := os.Getenv("SHELL")
		switch {
		case strings.HasSuffix(sh, "zsh"):
			shell = "zsh"
		case strings.HasSuffix(sh, "bash"):
			shell = "bash"
		}
	}

	switch shell {
	case "bash":
		fmt.Fprint(out, bashCompletionScript)
	case "zsh":
		fmt.Fprint(out, zshCompletionScript)
	default:
		fmt.Fprintln(os.Stderr, "usage: q3p completion [bash|zsh]")
	}
	return nil
}

func completionCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "completion",
		Usage:     "generate shell completion script",
		UsageText: "q3p completion [bash|zsh]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Action: completionCommandAction,
	}
}
