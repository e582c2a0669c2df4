// Command kuksa-log views and analyzes databroker call logs.
//
// Call logs are written by the client channel when a call logger is
// configured, for example with kuksa-shell -calllog.
//
// Usage:
//
//	kuksa-log <command> [flags] <file>
//
// Commands:
//
//	view     View log file in human-readable format
//	export   Export log file to JSONL or CSV format
//	filter   Filter log file and write to new file
//	stats    Show per-method and per-connection statistics
//
// Examples:
//
//	# View failed calls only
//	kuksa-log view -failed calls.cbor
//
//	# View kuksa.val.v1 traffic
//	kuksa-log view -method kuksa.val.v1 calls.cbor
//
//	# Export to CSV
//	kuksa-log export -format csv -o calls.csv calls.cbor
//
//	# Keep one connection
//	kuksa-log filter -conn 3f2a9c1e-... -o conn.cbor calls.cbor
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/kuksa-sdk/kuksa-go/cmd/kuksa-log/commands"
)

const usage = `kuksa-log - Databroker Call Log Analyzer

Usage:
  kuksa-log <command> [flags] <file>

Commands:
  view     View log file in human-readable format
  export   Export log file to JSONL or CSV format
  filter   Filter log file and write to new file
  stats    Show per-method and per-connection statistics

Use "kuksa-log <command> -help" for more information about a command.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "view":
		runView(args)
	case "export":
		runExport(args)
	case "filter":
		runFilter(args)
	case "stats":
		runStats(args)
	case "-h", "-help", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}
}

// filterFlags registers the filter flags shared by every command.
func filterFlags(fs *flag.FlagSet) *commands.FilterOptions {
	var o commands.FilterOptions
	fs.StringVar(&o.ConnID, "conn", "", "Filter by connection ID")
	fs.StringVar(&o.Method, "method", "", "Filter by RPC method substring")
	fs.StringVar(&o.Direction, "direction", "", "Filter by direction (in, out)")
	fs.StringVar(&o.Category, "category", "", "Filter by category (call, stream, state, error)")
	fs.BoolVar(&o.Failed, "failed", false, "Only failed calls and errors")
	fs.StringVar(&o.TimeStart, "time-start", "", "Filter by start time (RFC3339)")
	fs.StringVar(&o.TimeEnd, "time-end", "", "Filter by end time (RFC3339)")
	return &o
}

func newFlagSet(name, help string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprint(os.Stderr, help)
		fs.PrintDefaults()
	}
	return fs
}

// logPath returns the single positional argument or exits.
func logPath(fs *flag.FlagSet, args []string) string {
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: log file path required")
		fs.Usage()
		os.Exit(1)
	}
	return fs.Arg(0)
}

func fail(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runView(args []string) {
	fs := newFlagSet("view", `kuksa-log view - View log file in human-readable format

Usage:
  kuksa-log view [flags] <file>

Flags:
`)
	opts := filterFlags(fs)
	path := logPath(fs, args)
	fail(commands.RunView(path, *opts, os.Stdout))
}

func runExport(args []string) {
	fs := newFlagSet("export", `kuksa-log export - Export log file to JSONL or CSV format

Usage:
  kuksa-log export [flags] <file>

Flags:
`)
	format := fs.String("format", "jsonl", "Output format (jsonl, csv)")
	output := fs.String("o", "", "Output file (default: stdout)")
	opts := filterFlags(fs)
	path := logPath(fs, args)
	fail(commands.RunExport(path, *format, *output, *opts, os.Stdout))
}

func runFilter(args []string) {
	fs := newFlagSet("filter", `kuksa-log filter - Filter log file and write to new file

Usage:
  kuksa-log filter [flags] <file>

Flags:
`)
	output := fs.String("o", "", "Output file (required)")
	opts := filterFlags(fs)
	path := logPath(fs, args)
	if *output == "" {
		fmt.Fprintln(os.Stderr, "Error: output file (-o) required")
		fs.Usage()
		os.Exit(1)
	}
	fail(commands.RunFilter(path, *output, *opts, os.Stdout))
}

func runStats(args []string) {
	fs := newFlagSet("stats", `kuksa-log stats - Show per-method and per-connection statistics

Usage:
  kuksa-log stats [flags] <file>

Flags:
`)
	opts := filterFlags(fs)
	path := logPath(fs, args)
	fail(commands.RunStats(path, *opts, os.Stdout))
}
