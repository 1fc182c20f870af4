package cmd

import (
	"flag"
	"os"

	"github.com/etnz/stockbook"
	"github.com/etnz/stockbook/docs"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// flagValues predicts the values of some flags, per subcommand.
var flagValues = map[string]map[string]complete.Predictor{
	"items":  {"s": statuses()},
	"export": {"o": predict.Files("*"), "format": predict.Set{"json", "xlsx"}, "r": predict.Set{"snapshot", "summary", "lots", "items"}},
	"sell":   {"noshow": predict.Set{string(stockbook.FixedDestination), string(stockbook.Custom)}},
}

// argValues predicts the positional arguments, per subcommand.
var argValues = map[string]complete.Predictor{
	"sell":   complete.PredictFunc(itemIDs),
	"status": predict.Or(complete.PredictFunc(itemIDs), statuses()),
	"topic":  complete.PredictFunc(topics),
}

func topics(prefix string) []string {
	all, _ := docs.GetAllTopics()
	return all
}

func statuses() predict.Set {
	var set predict.Set
	for _, st := range stockbook.Statuses {
		set = append(set, string(st))
	}
	return set
}

// itemIDs predicts the ids of the items in the stockbook. It only reads the
// file: a corrupt file is left in place.
func itemIDs(prefix string) []string {
	b, err := os.ReadFile(bookStore().Path())
	if err != nil {
		return nil
	}
	var ids []string
	for _, it := range stockbook.Normalize(b).Items {
		ids = append(ids, it.ID)
	}
	return ids
}

// flagPredictors returns a predictor per flag in f. Boolean flags have a nil
// predictor as they take no value.
func flagPredictors(f *flag.FlagSet, values map[string]complete.Predictor) map[string]complete.Predictor {
	flags := make(map[string]complete.Predictor)
	f.VisitAll(func(fl *flag.Flag) {
		if b, ok := fl.Value.(interface{ IsBoolFlag() bool }); ok && b.IsBoolFlag() {
			flags[fl.Name] = nil
			return
		}
		if p, ok := values[fl.Name]; ok {
			flags[fl.Name] = p
			return
		}
		flags[fl.Name] = predict.Something
	})
	return flags
}

// Completion returns the shell completion of the command line, global flags
// taken from global.
//
// The main package calls Completion().Complete("sbk") before parsing flags:
// it completes and exits when the shell asks for a completion, and installs
// the completion with COMP_INSTALL=1.
func Completion(global *flag.FlagSet) *complete.Command {
	values := map[string]complete.Predictor{"dir": predict.Dirs("*")}
	root := &complete.Command{
		Sub:   make(map[string]*complete.Command),
		Flags: flagPredictors(global, values),
	}
	var names predict.Set
	for _, g := range groups {
		for _, c := range g.commands {
			f := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
			c.SetFlags(f)
			root.Sub[c.Name()] = &complete.Command{
				Flags: flagPredictors(f, flagValues[c.Name()]),
				Args:  argValues[c.Name()],
			}
			names = append(names, c.Name())
		}
	}
	root.Sub["help"] = &complete.Command{Args: names}
	return root
}
