package cmd

import (
	"flag"
	"os"
	"slices"
	"testing"
)

func TestCompletion(t *testing.T) {
	global := flag.NewFlagSet("sbk", flag.ContinueOnError)
	global.String("dir", ".", "")
	global.Bool("v", false, "")

	c := Completion(global)
	if _, ok := c.Flags["dir"]; !ok {
		t.Errorf("global flags = %v, want dir", c.Flags)
	}
	if p, ok := c.Flags["v"]; !ok || p != nil {
		t.Errorf("flag -v predictor = %v, want a boolean flag", p)
	}

	for _, g := range groups {
		for _, cmd := range g.commands {
			if _, ok := c.Sub[cmd.Name()]; !ok {
				t.Errorf("no completion for %q", cmd.Name())
			}
		}
	}

	items := c.Sub["items"]
	got := items.Flags["s"].Predict("")
	if want := []string{"in_stock", "reserved", "not_collected", "reshipped", "collected", "deposited"}; !slices.Equal(got, want) {
		t.Errorf("items -s predicts %v, want %v", got, want)
	}
	if got := c.Sub["export"].Flags["format"].Predict(""); !slices.Equal(got, []string{"json", "xlsx"}) {
		t.Errorf("export -format predicts %v", got)
	}
}

func TestCompletionItemIDs(t *testing.T) {
	out := useTempBook(t)
	_, items := seed(t, out)

	if got := itemIDs(""); !slices.Equal(got, items) {
		t.Errorf("itemIDs() = %v, want %v", got, items)
	}
}

func TestCompletionItemIDs_CorruptFile(t *testing.T) {
	useTempBook(t)
	path := bookStore().Path()
	if err := os.WriteFile(path, []byte("{oops"), 0644); err != nil {
		t.Fatal(err)
	}

	if got := itemIDs(""); len(got) != 0 {
		t.Errorf("itemIDs() = %v, want none", got)
	}
	if b, err := os.ReadFile(path); err != nil || string(b) != "{oops" {
		t.Errorf("stockbook file = %q, %v, want it untouched", b, err)
	}
	if _, err := os.Stat(path + ".corrupt"); err == nil {
		t.Error("completion moved the stockbook file aside")
	}
}
