package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/etnz/stockbook"
	"github.com/google/subcommands"
)

type exportCmd struct {
	output string
	format string
	report string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "export the stockbook or a report as JSON or XLSX" }
func (*exportCmd) Usage() string {
	return `sbk export [-o <file>] [-format json|xlsx] [-r snapshot|summary|lots|items]

  Writes the stockbook, or one of its reports, as indented JSON. The xlsx
  format writes a workbook with the summary, lots, items and expenses sheets.
  The format defaults to the extension of the output file, json otherwise.

Usage Examples:
$ sbk export -o stockbook.xlsx
$ sbk export -r lots
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.output, "o", "", "Output file, defaults to the standard output")
	f.StringVar(&c.format, "format", "", "Output format: json or xlsx")
	f.StringVar(&c.report, "r", "snapshot", "What to export with the json format: snapshot, summary, lots or items")
}

func (c *exportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	format := c.format
	if format == "" {
		format = strings.TrimPrefix(filepath.Ext(c.output), ".")
		if format != "xlsx" {
			format = "json"
		}
	}
	if format != "json" && format != "xlsx" {
		fmt.Fprintf(os.Stderr, "unknown format %q\n", format)
		return subcommands.ExitUsageError
	}

	s, err := openBook()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	var payload any
	switch c.report {
	case "snapshot":
		payload = s
	case "summary":
		payload = s.Insights()
	case "lots":
		payload = s.LotLines()
	case "items":
		payload = s.ItemLines()
	default:
		fmt.Fprintf(os.Stderr, "unknown report %q\n", c.report)
		return subcommands.ExitUsageError
	}

	w := out
	if c.output != "" {
		file, err := os.Create(c.output)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating %q: %v\n", c.output, err)
			return subcommands.ExitFailure
		}
		defer file.Close()
		w = file
	}

	if err := export(w, format, s, payload); err != nil {
		fmt.Fprintf(os.Stderr, "Error exporting: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

func export(w io.Writer, format string, s *stockbook.Snapshot, payload any) error {
	if format == "xlsx" {
		return stockbook.ExportWorkbook(w, s)
	}
	if err := stockbook.ExportJSON(w, payload); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w)
	return err
}
