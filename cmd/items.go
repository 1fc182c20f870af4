package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/stockbook"
	"github.com/etnz/stockbook/renderer"
	"github.com/google/subcommands"
)

type itemsCmd struct {
	status string
	lot    string
}

func (*itemsCmd) Name() string     { return "items" }
func (*itemsCmd) Synopsis() string { return "display the cost and profit of items" }
func (*itemsCmd) Usage() string {
	return `sbk items [-s <status>] [-l <lot>]

  Displays one line per item with its cost in the sale currency, its revenue
  and its profit. Profit is only computed for collected or deposited items.

Usage Examples:
# Items waiting for a pickup.
$ sbk items -s reserved
`
}

func (c *itemsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.status, "s", "", "Only list items in this status.")
	f.StringVar(&c.lot, "l", "", "Only list items of this lot.")
}

func (c *itemsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	var filters []stockbook.ItemFilter
	if c.status != "" {
		st, err := stockbook.ParseStatus(c.status)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitUsageError
		}
		filters = append(filters, stockbook.ByStatus(st))
	}
	if c.lot != "" {
		filters = append(filters, stockbook.ByLot(c.lot))
	}

	s, err := openBook()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.ItemsMarkdown(s.ItemLines(filters...)))
	return subcommands.ExitSuccess
}
