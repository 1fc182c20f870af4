// Package cmd implements the sbk command line application to keep a stockbook.
package cmd

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/stockbook"
	"github.com/etnz/stockbook/date"
	"github.com/google/subcommands"
	"github.com/sirupsen/logrus"
)

const (
	EnvDir  = "SBK_DIR"
	EnvSlot = "SBK_SLOT"
)

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var storeDir = flag.String("dir", envOr(EnvDir, "."), "Folder holding the stockbook files.")
var storeSlot = flag.String("slot", envOr(EnvSlot, stockbook.DefaultSlot), "Name of the stockbook, stored in <dir>/<slot>.json.")
var plain = flag.Bool("plain", false, "Print reports as markdown source instead of rendering them.")

// Verbose enables debug logs.
var Verbose = flag.Bool("v", false, "Log debug information.")

// out is where reports are printed.
var out io.Writer = os.Stdout

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// group is a set of related subcommands, as listed by 'sbk help'.
type group struct {
	name     string
	commands []subcommands.Command
}

var groups = []group{
	{"reports", []subcommands.Command{&summaryCmd{}, &lotsCmd{}, &itemsCmd{}}},
	{"entry", []subcommands.Command{&addLotCmd{}, &addItemCmd{}, &addExpenseCmd{}, &sellCmd{}, &statusCmd{}}},
	{"settings", []subcommands.Command{&configCmd{}}},
	{"data", []subcommands.Command{&exportCmd{}, &queryCmd{}, &fmtCmd{}}},
	{"help", []subcommands.Command{&topicCmd{}}},
}

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	for _, g := range groups {
		for _, cmd := range g.commands {
			c.Register(cmd, g.name)
		}
	}
}

// SetupLogging configures logrus from the global flags.
func SetupLogging() {
	logrus.SetOutput(os.Stderr)
	if *Verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}
}

func bookStore() *stockbook.FileStore {
	return stockbook.NewFileStore(*storeDir, *storeSlot)
}

// openBook loads the stockbook. A stockbook that cannot be saved back can
// still be read, so the write failure is only logged.
func openBook() (*stockbook.Snapshot, error) {
	st := bookStore()
	s, err := stockbook.Open(st)
	if err != nil {
		if s == nil {
			return nil, fmt.Errorf("cannot open stockbook %q: %w", st.Path(), err)
		}
		logrus.WithError(err).WithField("path", st.Path()).Warn("stockbook cannot be saved")
	}
	return s, nil
}

// saveBook saves the stockbook.
func saveBook(s *stockbook.Snapshot) error {
	return bookStore().Save(s)
}

// parseDate parses an optional date flag, the zero Date when empty.
func parseDate(str string) (date.Date, error) {
	if str == "" {
		return date.Date{}, nil
	}
	return date.Parse(str)
}

// printMarkdown renders md for the terminal, or prints it as is when it cannot.
func printMarkdown(md string) {
	if *plain {
		fmt.Fprint(out, md)
		return
	}
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(120))
	if err != nil {
		logrus.WithError(err).Debug("cannot create markdown renderer")
		fmt.Fprint(out, md)
		return
	}
	rendered, err := r.Render(md)
	if err != nil {
		logrus.WithError(err).Debug("cannot render markdown")
		fmt.Fprint(out, md)
		return
	}
	fmt.Fprint(out, rendered)
}
