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

type configCmd struct {
	rate           float64
	fixedPenalty   float64
	customPenalty  float64
	helperFee      float64
	saleCurrency   string
	sourceCurrency string
}

func (*configCmd) Name() string     { return "config" }
func (*configCmd) Synopsis() string { return "display or change the configuration" }
func (*configCmd) Usage() string {
	return `sbk config [-rate <rate>] [-fixed-penalty <amount>] [-custom-penalty <amount>] [-helper-fee <amount>] [-sale <currency>] [-source <currency>]

  Without flags, displays the configuration. Each flag changes one setting.
  Lots keep the exchange rate they were recorded with.

Usage Examples:
$ sbk config -rate 7.8
`
}

func (c *configCmd) SetFlags(f *flag.FlagSet) {
	f.Float64Var(&c.rate, "rate", 0, "Default exchange rate, source currency units per sale currency unit")
	f.Float64Var(&c.fixedPenalty, "fixed-penalty", 0, "No-show penalty for a fixed destination, in sale currency")
	f.Float64Var(&c.customPenalty, "custom-penalty", 0, "No-show penalty for a custom destination, in sale currency")
	f.Float64Var(&c.helperFee, "helper-fee", 0, "Helper fee charged to each sale, in sale currency")
	f.StringVar(&c.saleCurrency, "sale", "", "Sale currency (ISO 4217 code)")
	f.StringVar(&c.sourceCurrency, "source", "", "Source currency (ISO 4217 code)")
}

// input returns the changes for the flags actually set on the command line.
func (c *configCmd) input(f *flag.FlagSet) (in stockbook.ConfigInput, changed bool) {
	f.Visit(func(fl *flag.Flag) {
		changed = true
		switch fl.Name {
		case "rate":
			in.ExchangeRate = &c.rate
		case "fixed-penalty":
			in.NoShowFixedPenalty = &c.fixedPenalty
		case "custom-penalty":
			in.NoShowCustomPenalty = &c.customPenalty
		case "helper-fee":
			in.HelperFixedFee = &c.helperFee
		case "sale":
			in.SaleCurrency = &c.saleCurrency
		case "source":
			in.SourceCurrency = &c.sourceCurrency
		}
	})
	return in, changed
}

func (c *configCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	in, changed := c.input(f)
	if !changed {
		s, err := openBook()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
		printMarkdown(renderer.ConfigMarkdown(s.Config))
		return subcommands.ExitSuccess
	}
	return edit(func(s *stockbook.Snapshot) error {
		cfg, err := s.SetConfig(in)
		if err != nil {
			return err
		}
		printMarkdown(renderer.ConfigMarkdown(cfg))
		return nil
	})
}
