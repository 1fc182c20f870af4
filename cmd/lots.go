package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/stockbook/renderer"
	"github.com/google/subcommands"
)

type lotsCmd struct{}

func (*lotsCmd) Name() string     { return "lots" }
func (*lotsCmd) Synopsis() string { return "display the investment and recovery of each lot" }
func (*lotsCmd) Usage() string {
	return `sbk lots

  Displays one line per lot: its items, how many were sold, the investment
  (purchase converted to the sale currency plus customs) and the recovery.
`
}

func (*lotsCmd) SetFlags(f *flag.FlagSet) {}

func (*lotsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := openBook()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.LotsMarkdown(s.LotLines()))
	return subcommands.ExitSuccess
}
