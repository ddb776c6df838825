package cmd

import (
	"fmt"

	"github.com/AfiaBakr/todo-app-phase1/internal/config"
)

const bashCompletion = `# todo bash completion
_todo_completions() {
    local cur prev commands
    cur="${COMP_WORDS[COMP_CWORD]}"
    prev="${COMP_WORDS[COMP_CWORD-1]}"
    commands="add list view update delete complete incomplete tui doctor schema config completion version help"

    if [ "$COMP_CWORD" -eq 1 ]; then
        COMPREPLY=($(compgen -W "$commands" -- "$cur"))
        return
    fi

    case "$prev" in
        -f|--filter)
            COMPREPLY=($(compgen -W "all pending completed" -- "$cur"))
            return
            ;;
        completion)
            COMPREPLY=($(compgen -W "bash zsh fish powershell" -- "$cur"))
            return
            ;;
    esac

    COMPREPLY=($(compgen -W "--help --version --no-color --log-level --log-format" -- "$cur"))
}
complete -F _todo_completions todo
`

const zshCompletion = `#compdef todo
_todo() {
    local -a commands
    commands=(
        'add:Create a new task'
        'list:Show all tasks'
        'view:View task details'
        'update:Update a task title or description'
        'delete:Delete a task'
        'complete:Mark a task as done'
        'incomplete:Reopen a completed task'
        'tui:Browse and edit tasks interactively'
        'doctor:Check configuration and environment'
        'schema:Print the task JSON Schema'
        'config:Print an example configuration file'
        'completion:Print a shell completion script'
        'version:Show version information'
        'help:Show the command guide'
    )

    if (( CURRENT == 2 )); then
        _describe 'command' commands
        return
    fi

    case "$words[2]" in
        list)
            _arguments '-f[Filter tasks]:filter:(all pending completed)' \
                '--filter[Filter tasks]:filter:(all pending completed)'
            ;;
        completion)
            _arguments '2:shell:(bash zsh fish powershell)'
            ;;
    esac
}
_todo "$@"
`

const fishCompletion = `# todo fish completion
complete -c todo -f
complete -c todo -n __fish_use_subcommand -a add -d 'Create a new task'
complete -c todo -n __fish_use_subcommand -a list -d 'Show all tasks'
complete -c todo -n __fish_use_subcommand -a view -d 'View task details'
complete -c todo -n __fish_use_subcommand -a update -d 'Update a task title or description'
complete -c todo -n __fish_use_subcommand -a delete -d 'Delete a task'
complete -c todo -n __fish_use_subcommand -a complete -d 'Mark a task as done'
complete -c todo -n __fish_use_subcommand -a incomplete -d 'Reopen a completed task'
complete -c todo -n __fish_use_subcommand -a tui -d 'Browse and edit tasks interactively'
complete -c todo -n __fish_use_subcommand -a doctor -d 'Check configuration and environment'
complete -c todo -n __fish_use_subcommand -a schema -d 'Print the task JSON Schema'
complete -c todo -n __fish_use_subcommand -a config -d 'Print an example configuration file'
complete -c todo -n __fish_use_subcommand -a completion -d 'Print a shell completion script'
complete -c todo -n __fish_use_subcommand -a version -d 'Show version information'
complete -c todo -n __fish_use_subcommand -a help -d 'Show the command guide'
complete -c todo -n '__fish_seen_subcommand_from list' -s f -l filter -a 'all pending completed' -d 'Filter tasks'
complete -c todo -n '__fish_seen_subcommand_from list' -s V -l verbose -d 'Show descriptions and creation times'
complete -c todo -n '__fish_seen_subcommand_from completion' -a 'bash zsh fish powershell'
`

const powershellCompletion = `# todo PowerShell completion
Register-ArgumentCompleter -Native -CommandName todo -ScriptBlock {
    param($wordToComplete, $commandAst, $cursorPosition)
    $commands = @('add', 'list', 'view', 'update', 'delete', 'complete', 'incomplete', 'tui', 'doctor', 'schema', 'config', 'completion', 'version', 'help')
    $commands | Where-Object { $_ -like "$wordToComplete*" } | ForEach-Object {
        [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_)
    }
}
`

// completionCommand prints a completion script for the requested shell.
func completionCommand(cfg *config.Config, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing shell (expected bash, zsh, fish, or powershell)")
	}
	if len(args) > 1 {
		return fmt.Errorf("unexpected arguments: %v", args[1:])
	}

	switch args[0] {
	case "bash":
		fmt.Print(bashCompletion)
	case "zsh":
		fmt.Print(zshCompletion)
	case "fish":
		fmt.Print(fishCompletion)
	case "powershell", "pwsh":
		fmt.Print(powershellCompletion)
	default:
		return fmt.Errorf("unsupported shell %q (expected bash, zsh, fish, or powershell)", args[0])
	}
	return nil
}
