// Package completion generates shell completion scripts for the actcal CLI.
package completion

import (
	"fmt"
	"strings"

	"actcal/internal/ui"
)

// Command handles the `actcal completion <shell>` command.
func Command(args []string) error {
	if len(args) < 2 {
		ui.PrintInfo("Usage: actcal completion <shell>")
		fmt.Println("Supported shells: bash, zsh, fish, powershell")
		fmt.Println("")
		fmt.Println("Installation examples:")
		fmt.Println("  Bash:       actcal completion bash > /etc/bash_completion.d/actcal")
		fmt.Println("  Zsh:        actcal completion zsh > ~/.zsh/completion/_actcal")
		fmt.Println("  oh-my-zsh:  actcal completion zsh > ~/.oh-my-zsh/custom/completions/_actcal")
		fmt.Println("  Fish:       actcal completion fish > ~/.config/fish/completions/actcal.fish")
		fmt.Println("  PowerShell: actcal completion powershell >> $PROFILE")
		return nil
	}

	shell := strings.ToLower(args[1])
	switch shell {
	case "bash":
		fmt.Print(BashCompletion)
	case "zsh":
		fmt.Print(ZshCompletion)
	case "fish":
		fmt.Print(FishCompletion)
	case "powershell", "pwsh":
		fmt.Print(PowershellCompletion)
	default:
		return fmt.Errorf("unsupported shell: %s (supported: bash, zsh, fish, powershell)", shell)
	}

	return nil
}

// BashCompletion is the bash completion script.
const BashCompletion = `# actcal bash completion script
# Installation: actcal completion bash > /etc/bash_completion.d/actcal
# Or: actcal completion bash > ~/.bash_completion.d/actcal

_actcal_completion() {
    local cur prev words cword
    _init_completion || return

    # Top-level commands
    local commands="games events version snapshot export watch config completion help"

    # Commands that take a game argument
    local games="genshin gi arknights ak wutheringwaves wuwa ww bluearchive ba azurlane al toweroffantasy tof"

    # Flags
    local flags="--json -j -o --ttl --help"

    # Handle flag completions
    case "$prev" in
        -o)
            COMPREPLY=($(compgen -f -- "$cur"))
            return
            ;;
        --ttl)
            COMPREPLY=($(compgen -W "0 5 10 30 60" -- "$cur"))
            return
            ;;
    esac

    if [[ $cword -eq 1 ]]; then
        COMPREPLY=($(compgen -W "$commands $flags" -- "$cur"))
        return
    fi

    case "${words[1]}" in
        events|version|snapshot|export)
            if [[ $cword -eq 2 ]]; then
                COMPREPLY=($(compgen -W "$games" -- "$cur"))
            else
                COMPREPLY=($(compgen -W "$flags" -- "$cur"))
            fi
            ;;
        config)
            if [[ $cword -eq 2 ]]; then
                COMPREPLY=($(compgen -W "show init" -- "$cur"))
            fi
            ;;
        completion)
            if [[ $cword -eq 2 ]]; then
                COMPREPLY=($(compgen -W "bash zsh fish powershell" -- "$cur"))
            fi
            ;;
    esac
}

complete -F _actcal_completion actcal
`

// ZshCompletion is the zsh completion script.
const ZshCompletion = `#compdef actcal
# actcal zsh completion script
# Installation: actcal completion zsh > ~/.zsh/completion/_actcal
# Then add to ~/.zshrc: fpath=(~/.zsh/completion $fpath)

_actcal() {
    local -a commands games config_cmds
    commands=(
        'games:List supported games'
        'events:Current activities for a game'
        'version:Resolved version window'
        'snapshot:Full snapshot with fetch metadata'
        'export:Write an iCalendar file'
        'watch:Warm snapshots on a schedule'
        'config:Inspect or create the config file'
        'help:Display help'
        'completion:Generate shell completion scripts'
    )

    games=(
        'genshin:Genshin Impact'
        'arknights:Arknights'
        'wutheringwaves:Wuthering Waves'
        'bluearchive:Blue Archive'
        'azurlane:Azur Lane'
        'toweroffantasy:Tower of Fantasy'
    )

    config_cmds=(
        'show:Print the effective configuration'
        'init:Write a starter config file'
    )

    _arguments -C \
        '--json[Print raw JSON instead of formatted tables]' \
        '-o[Output file for export]:file:_files' \
        '--ttl[Cache TTL override in minutes]:minutes:' \
        '--help[Show help]' \
        '1: :->cmds' \
        '*:: :->args'

    case $state in
        cmds)
            _describe -t commands 'actcal commands' commands
            ;;
        args)
            case $words[1] in
                events|version|snapshot|export)
                    if [[ $CURRENT -eq 2 ]]; then
                        _describe -t games 'games' games
                    fi
                    ;;
                config)
                    if [[ $CURRENT -eq 2 ]]; then
                        _describe -t config_cmds 'config commands' config_cmds
                    fi
                    ;;
                completion)
                    if [[ $CURRENT -eq 2 ]]; then
                        _values 'shells' 'bash' 'zsh' 'fish' 'powershell'
                    fi
                    ;;
            esac
            ;;
    esac
}

_actcal "$@"
`

// FishCompletion is the fish completion script.
const FishCompletion = `# actcal fish completion script
# Installation: actcal completion fish > ~/.config/fish/completions/actcal.fish

# Disable file completion by default
complete -c actcal -f

# Top-level commands
complete -c actcal -n "__fish_use_subcommand" -a "games" -d "List supported games"
complete -c actcal -n "__fish_use_subcommand" -a "events" -d "Current activities for a game"
complete -c actcal -n "__fish_use_subcommand" -a "version" -d "Resolved version window"
complete -c actcal -n "__fish_use_subcommand" -a "snapshot" -d "Full snapshot with fetch metadata"
complete -c actcal -n "__fish_use_subcommand" -a "export" -d "Write an iCalendar file"
complete -c actcal -n "__fish_use_subcommand" -a "watch" -d "Warm snapshots on a schedule"
complete -c actcal -n "__fish_use_subcommand" -a "config" -d "Inspect or create the config file"
complete -c actcal -n "__fish_use_subcommand" -a "help" -d "Display help"
complete -c actcal -n "__fish_use_subcommand" -a "completion" -d "Generate shell completions"

# Global flags
complete -c actcal -l json -s j -d "Print raw JSON"
complete -c actcal -s o -d "Output file for export" -r
complete -c actcal -l ttl -d "Cache TTL override in minutes" -x
complete -c actcal -l help -d "Show help"

# Commands that take a game argument
set -l game_cmds events version snapshot export
complete -c actcal -n "__fish_seen_subcommand_from $game_cmds" -n "test (count (commandline -opc)) -eq 2" -a "genshin" -d "Genshin Impact"
complete -c actcal -n "__fish_seen_subcommand_from $game_cmds" -n "test (count (commandline -opc)) -eq 2" -a "arknights" -d "Arknights"
complete -c actcal -n "__fish_seen_subcommand_from $game_cmds" -n "test (count (commandline -opc)) -eq 2" -a "wutheringwaves" -d "Wuthering Waves"
complete -c actcal -n "__fish_seen_subcommand_from $game_cmds" -n "test (count (commandline -opc)) -eq 2" -a "bluearchive" -d "Blue Archive"
complete -c actcal -n "__fish_seen_subcommand_from $game_cmds" -n "test (count (commandline -opc)) -eq 2" -a "azurlane" -d "Azur Lane"
complete -c actcal -n "__fish_seen_subcommand_from $game_cmds" -n "test (count (commandline -opc)) -eq 2" -a "toweroffantasy" -d "Tower of Fantasy"

# config command
complete -c actcal -n "__fish_seen_subcommand_from config" -n "test (count (commandline -opc)) -eq 2" -a "show" -d "Print the effective configuration"
complete -c actcal -n "__fish_seen_subcommand_from config" -n "test (count (commandline -opc)) -eq 2" -a "init" -d "Write a starter config file"

# completion command
complete -c actcal -n "__fish_seen_subcommand_from completion" -n "test (count (commandline -opc)) -eq 2" -a "bash" -d "Bash completion"
complete -c actcal -n "__fish_seen_subcommand_from completion" -n "test (count (commandline -opc)) -eq 2" -a "zsh" -d "Zsh completion"
complete -c actcal -n "__fish_seen_subcommand_from completion" -n "test (count (commandline -opc)) -eq 2" -a "fish" -d "Fish completion"
complete -c actcal -n "__fish_seen_subcommand_from completion" -n "test (count (commandline -opc)) -eq 2" -a "powershell" -d "PowerShell completion"
`

// PowershellCompletion is the PowerShell completion script.
const PowershellCompletion = `# actcal PowerShell completion script
# Installation: actcal completion powershell >> $PROFILE

Register-ArgumentCompleter -Native -CommandName actcal -ScriptBlock {
    param($wordToComplete, $commandAst, $cursorPosition)

    $commands = @{
        'games' = 'List supported games'
        'events' = 'Current activities for a game'
        'version' = 'Resolved version window'
        'snapshot' = 'Full snapshot with fetch metadata'
        'export' = 'Write an iCalendar file'
        'watch' = 'Warm snapshots on a schedule'
        'config' = 'Inspect or create the config file'
        'help' = 'Display help'
        'completion' = 'Generate shell completion scripts'
    }

    $games = @('genshin', 'arknights', 'wutheringwaves', 'bluearchive', 'azurlane', 'toweroffantasy')
    $configCommands = @('show', 'init')
    $shells = @('bash', 'zsh', 'fish', 'powershell')

    $tokens = $commandAst.ToString() -split '\s+'
    $position = $tokens.Count - 1

    if ($wordToComplete -match '^-') {
        $flags = @(
            [System.Management.Automation.CompletionResult]::new('--json', '--json', 'ParameterName', 'Print raw JSON')
            [System.Management.Automation.CompletionResult]::new('-o', '-o', 'ParameterName', 'Output file for export')
            [System.Management.Automation.CompletionResult]::new('--ttl', '--ttl', 'ParameterName', 'Cache TTL override in minutes')
            [System.Management.Automation.CompletionResult]::new('--help', '--help', 'ParameterName', 'Show help')
        )
        return $flags | Where-Object { $_.CompletionText -like "$wordToComplete*" }
    }

    if ($position -eq 1) {
        return $commands.GetEnumerator() | ForEach-Object {
            [System.Management.Automation.CompletionResult]::new($_.Key, $_.Key, 'ParameterValue', $_.Value)
        } | Where-Object { $_.CompletionText -like "$wordToComplete*" }
    }

    $cmd = $tokens[1]
    switch ($cmd) {
        { $_ -in 'events', 'version', 'snapshot', 'export' } {
            if ($position -eq 2) {
                return $games | ForEach-Object {
                    [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_)
                } | Where-Object { $_.CompletionText -like "$wordToComplete*" }
            }
        }
        'config' {
            if ($position -eq 2) {
                return $configCommands | ForEach-Object {
                    [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_)
                } | Where-Object { $_.CompletionText -like "$wordToComplete*" }
            }
        }
        'completion' {
            if ($position -eq 2) {
                return $shells | ForEach-Object {
                    [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', "$_ shell completion")
                } | Where-Object { $_.CompletionText -like "$wordToComplete*" }
            }
        }
    }
}
`
