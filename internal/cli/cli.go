// Package cli implements the stronger-llama command table.
package cli

import (
	"fmt"
	"io"
)

// Exit codes returned by Run.
const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

// Command is one entry in the command table.
type Command struct {
	Name    string
	Summary string
	Usage   []string
	Run     func(args []string, stdout, stderr io.Writer) int
}

// Run dispatches args to a command and returns its exit code.
func Run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		printUsage(stdout)
		return ExitUsage
	}
	if isHelpArg(args[0]) {
		printUsage(stdout)
		return ExitOK
	}

	cmd := findCommand(args[0])
	if cmd == nil {
		fmt.Fprintf(stderr, "Unknown command: %s\n\n", args[0])
		printUsage(stderr)
		return ExitUsage
	}

	return cmd.Run(args[1:], stdout, stderr)
}

func findCommand(name string) *Command {
	for _, cmd := range commands {
		if cmd.Name == name {
			return cmd
		}
	}
	return nil
}

func isHelpArg(arg string) bool {
	switch arg {
	case "-h", "--help", "help":
		return true
	default:
		return false
	}
}

func wantsHelp(args []string) bool {
	for _, arg := range args {
		switch arg {
		case "-h", "--help":
			return true
		}
	}
	return false
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  stronger-llama <command> [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	for _, cmd := range commands {
		fmt.Fprintf(w, "  %-8s %s\n", cmd.Name, cmd.Summary)
	}
	fmt.Fprintln(w, "\nUse \"stronger-llama <command> --help\" for more information.")
}

func printCommandUsage(cmd *Command, w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	for _, line := range cmd.Usage {
		fmt.Fprintf(w, "  %s\n", line)
	}
	if cmd.Summary != "" {
		fmt.Fprintf(w, "\n%s\n", cmd.Summary)
	}
}

func command(name, summary string, usage []string, runner func(cmd *Command) func(args []string, stdout, stderr io.Writer) int) *Command {
	cmd := &Command{
		Name:    name,
		Summary: summary,
		Usage:   usage,
	}
	cmd.Run = runner(cmd)
	return cmd
}

var commands = []*Command{
	command("init", "Scaffold .stronger-llama/config.yml", []string{
		"stronger-llama init [--spec <path>] [--yes]",
	}, runInit),
	command("validate", "Validate .stronger-llama/config.yml", []string{
		"stronger-llama validate [--spec <path>]",
	}, runValidate),
	command("ask", "Run the enhancement pipeline on one question", []string{
		"stronger-llama ask [--spec <path>] [--model <name>] [--host <url>] [--strategy none|cot|cot+reflection] [--no-reasoning] <question>",
		"stronger-llama ask [options] -f <file>",
	}, runAsk),
	command("bench", "Benchmark prompting strategies over a question set", []string{
		"stronger-llama bench [--spec <path>] [--questions <file>] [--output-dir <dir>] [--continue-on-error]",
		"                     [--no-plot] [--duckdb] [--ui auto|live|plain] [--verbose] [--log <file>]",
	}, runBench),
	command("report", "Summarize benchmark results per strategy", []string{
		"stronger-llama report [<results.json>|<run-dir>] [--run <run-id|latest>] [--plot <out.png>]",
		"stronger-llama report --db <results.duckdb> [--run <run-id|latest>] [--plot <out.png>]",
	}, runReport),
	command("compare", "Compare mean response times between two runs", []string{
		"stronger-llama compare --base <run-id> [--head <run-id|latest>] [--input <dir>]",
	}, runCompare),
}
