package stockbook

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestOpen_MemoryStore(t *testing.T) {
	st := &MemoryStore{Data: []byte(`{"lots": [{"purchaseTotalSourceCurrency": 75}]}`)}
	s, err := Open(st)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if len(s.Lots) != 1 {
		t.Fatalf("Open() = %d lots, want 1", len(s.Lots))
	}

	// The generated id is persisted: opening again gives the same snapshot.
	again, err := Open(st)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if diff := cmp.Diff(s, again); diff != "" {
		t.Errorf("second Open() mismatch (-first +second):\n%s", diff)
	}
}

func TestOpen_Unparsable(t *testing.T) {
	for _, data := range []string{"", "{", "null", "[1,2]"} {
		st := &MemoryStore{Data: []byte(data)}
		s, err := Open(st)
		if err != nil {
			t.Fatalf("Open(%q) error = %v", data, err)
		}
		if diff := cmp.Diff(NewSnapshot(), s); diff != "" {
			t.Errorf("Open(%q) mismatch (-want +got):\n%s", data, diff)
		}
	}
}

func TestOpen_SaveFailure(t *testing.T) {
	st := &MemoryStore{Err: errors.New("quota exceeded")}
	s, err := Open(st)
	if !errors.Is(err, ErrStoreWrite) {
		t.Fatalf("Open() error = %v, want ErrStoreWrite", err)
	}
	if s == nil {
		t.Error("Open() must still return the normalized snapshot")
	}
	if !strings.Contains(err.Error(), "quota exceeded") {
		t.Errorf("Open() error = %v, want the cause", err)
	}
}

func TestFileStore(t *testing.T) {
	dir := t.TempDir()
	st := NewFileStore(filepath.Join(dir, "data"), "")
	if got, want := st.Path(), filepath.Join(dir, "data", "stockbook.json"); got != want {
		t.Errorf("Path() = %q, want %q", got, want)
	}

	t.Run("missing file loads as absent", func(t *testing.T) {
		raw, err := st.Load()
		if err != nil || raw != nil {
			t.Errorf("Load() = %v, %v, want nil, nil", raw, err)
		}
	})

	t.Run("round trip", func(t *testing.T) {
		s := Normalize(example())
		if err := st.Save(s); err != nil {
			t.Fatalf("Save() error = %v", err)
		}
		got, err := Open(st)
		if err != nil {
			t.Fatalf("Open() error = %v", err)
		}
		if diff := cmp.Diff(s, got); diff != "" {
			t.Errorf("Open() mismatch (-saved +loaded):\n%s", diff)
		}
		b, err := os.ReadFile(st.Path())
		if err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(string(b), `"costSourceCurrency": 75,`) {
			t.Errorf("numbers must be stored as JSON numbers, got:\n%s", b)
		}
	})

	t.Run("corrupt file is moved aside", func(t *testing.T) {
		if err := os.WriteFile(st.Path(), []byte("{oops"), 0644); err != nil {
			t.Fatal(err)
		}
		raw, err := st.Load()
		if err != nil || raw != nil {
			t.Errorf("Load() = %v, %v, want nil, nil", raw, err)
		}
		if _, err := os.Stat(st.Path() + ".corrupt"); err != nil {
			t.Errorf("corrupt copy missing: %v", err)
		}
	})
}

func TestFileStore_SaveFailure(t *testing.T) {
	dir := t.TempDir()
	// a file where the directory should be
	blocker := filepath.Join(dir, "blocker")
	if err := os.WriteFile(blocker, nil, 0644); err != nil {
		t.Fatal(err)
	}
	st := NewFileStore(filepath.Join(blocker, "sub"), "slot")
	if err := st.Save(NewSnapshot()); !errors.Is(err, ErrStoreWrite) {
		t.Errorf("Save() error = %v, want ErrStoreWrite", err)
	}
}
