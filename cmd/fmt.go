package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/stockbook"
	"github.com/google/subcommands"
)

type fmtCmd struct{}

func (*fmtCmd) Name() string { return "fmt" }
func (*fmtCmd) Synopsis() string {
	return "normalizes the stockbook file into its canonical form"
}
func (*fmtCmd) Usage() string {
	return `sbk fmt

  Loads the stockbook, fills in missing ids and defaults, migrates fields
  written by older versions, and writes it back in its canonical form.
  Every command does it, fmt only reports whether the file could be written.
`
}

func (*fmtCmd) SetFlags(f *flag.FlagSet) {}

func (*fmtCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	st := bookStore()
	s, err := stockbook.Open(st)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error formatting %q: %v\n", st.Path(), err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(os.Stderr, "Formatted %q: %d lots, %d items, %d expenses.\n", st.Path(), len(s.Lots), len(s.Items), len(s.Expenses))
	return subcommands.ExitSuccess
}
