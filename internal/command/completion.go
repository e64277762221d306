package command

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/staranto/bldctlgo/internal/meta"
	"github.com/urfave/cli/v3"
)

const bashCompletionScript = `# bash completion for bldctl
# Fallback if bash-completion is not installed
if ! declare -F _get_comp_words_by_ref >/dev/null 2>&1; then
  _get_comp_words_by_ref() {
    cur=${COMP_WORDS[COMP_CWORD]}
    prev=${COMP_WORDS[COMP_CWORD-1]}
  }
fi

_bldctl()
{
    local cur prev cmd
    COMPREPLY=()
    _get_comp_words_by_ref -n : cur prev

    if [[ ${COMP_CWORD} -eq 1 ]]; then
        COMPREPLY=( $(compgen -W "resolve pkg run src cache completion --help --version" -- "$cur") )
        return 0
    fi

    cmd=${COMP_WORDS[1]}
  local common="--attrs -a --color -c --filter -f --output -o --sort -s --titles -t --tldr"

    case "$cmd" in
    resolve)
      local opts="$common --schema --all --cache --marker --toolchain"
            ;;
        pkg)
            if [[ ${COMP_CWORD} -eq 2 ]]; then
                COMPREPLY=( $(compgen -W "check root" -- "$cur") )
                return 0
            fi
      local opts="$common --schema --marker"
            ;;
        run)
      local opts="$common --stream --diag --header --mark-failed"
            ;;
        src)
            if [[ ${COMP_CWORD} -eq 2 ]]; then
                COMPREPLY=( $(compgen -W "encoding cat" -- "$cur") )
                return 0
            fi
            local opts="--tldr"
            ;;
        cache)
            if [[ ${COMP_CWORD} -eq 2 ]]; then
                COMPREPLY=( $(compgen -W "purge" -- "$cur") )
                return 0
            fi
            local opts="--hours"
            ;;
        completion)
            local opts="bash zsh"
            COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
            return 0
            ;;
        *)
            local opts="$common"
            ;;
    esac

    if [[ "$prev" == "--output" || "$prev" == "-o" ]]; then
        COMPREPLY=( $(compgen -W "text json raw yaml" -- "$cur") )
        return 0
    fi

  if [[ "$cur" == -* ]]; then
    COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
    return 0
  fi

  # Otherwise complete directories, the usual positional argument
  COMPREPLY=( $(compgen -o dirnames -- "$cur") )
  return 0
}

complete -F _bldctl bldctl
`

const zshCompletionScript = `#compdef bldctl

_bldctl() {
  local -a cmds
  cmds=(
    'resolve:resolve versioned companion files'
    'pkg:package directory queries'
    'run:run a tool with a stream captured'
    'src:inspect source modules'
    'cache:manage the on-disk scan cache'
    'completion:generate shell completion script'
  )

  local -a common
  common=(
  '(-a --attrs)'{-a,--attrs}'[attributes to include]:attrs'
  '(-c --color)'{-c,--color}'[enable colored text]'
  '(-f --filter)'{-f,--filter}'[filters to apply]:filters'
  '(-o --output)'{-o,--output}'[output format]:format:(text json raw yaml)'
  '(-s --sort)'{-s,--sort}'[sort attributes]:attrs'
  '(-t --titles)'{-t,--titles}'[show titles]'
  '--tldr[show tldr page]'
  )

  if (( CURRENT == 2 )); then
    _describe -t commands 'bldctl commands' cmds
    return
  fi

  local curcontext="$curcontext" state line
  case $words[2] in
    resolve)
      _arguments -C \
        $common \
        '--schema[dump schema]' \
        '--all[list every versioned companion]' \
        '--cache[use the on-disk cache]' \
        '--marker[version marker]:marker' \
        '--toolchain[toolchain version]:version' \
        '1:directory:_directories'
      ;;
    pkg)
      _arguments -C \
        '1: :((check root))' \
        $common \
        '--schema[dump schema]' \
        '--marker[version marker]:marker' \
        '*:directory:_directories'
      ;;
    run)
      _arguments -C \
        $common \
        '--stream[stream to capture]:stream:(1 2)' \
        '--diag[parse JSON diagnostics]' \
        '--header[banner line to print before the stream]:text' \
        '--mark-failed[output file to poison on failure]:file:_files' \
        '*:tool:_command_names'
      ;;
    src)
      _arguments '1: :((encoding cat))' '*:file:_files'
      ;;
    cache)
      _arguments '1: :((purge))' '--hours[cutoff in hours]:hours'
      ;;
    completion)
      _arguments '1: :((bash zsh))'
      ;;
    *)
      _arguments -C $common '*:directory:_directories'
      ;;
  esac
}

# If this file is sourced directly (not autoloaded via fpath), ensure compsys is initialized and register the completion
if ! typeset -f compdef >/dev/null 2>&1; then
  autoload -Uz compinit && compinit -i
fi
compdef _bldctl bldctl bldctlgo
`

func CompletionCommandAction(ctx context.Context, cmd *cli.Command) error {
	shell := ""
	if args := cmd.Args().Slice(); len(args) > 0 {
		shell = args[0]
	}
	switch shell {
	case "bash":
		fmt.Fprint(os.Stdout, bashCompletionScript)
	case "zsh":
		fmt.Fprint(os.Stdout, zshCompletionScript)
	default:
		// Try to detect from SHELL or print help
		sh := os.Getenv("SHELL")
		if strings.HasSuffix(sh, "zsh") {
			fmt.Fprint(os.Stdout, zshCompletionScript)
		} else if strings.HasSuffix(sh, "bash") {
			fmt.Fprint(os.Stdout, bashCompletionScript)
		} else {
			fmt.Fprintln(os.Stderr, "usage: bldctl completion [bash|zsh]")
			return nil
		}
	}
	return nil
}

func CompletionCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "completion",
		Usage:     "generate shell completion script",
		UsageText: "bldctl completion [bash|zsh]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Action: CompletionCommandAction,
	}
}
