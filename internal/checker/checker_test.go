package checker

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/libredomains/ldcheck/internal/report"
	"github.com/libredomains/ldcheck/internal/resolve"
	"github.com/libredomains/ldcheck/internal/validator"
)

// fakeValidator is a test double for Validator.
type fakeValidator struct {
	allValid bool
	results  *report.ResultSet
	err      error
	panicMsg string

	called    bool
	gotFiles  []string
	gotConfig *validator.Config
}

func (f *fakeValidator) ValidatePullRequest(files []string, cfg *validator.Config) (bool, *report.ResultSet, error) {
	f.called = true
	f.gotFiles = files
	f.gotConfig = cfg
	if f.panicMsg != "" {
		panic(f.panicMsg)
	}
	return f.allValid, f.results, f.err
}

func TestCheck_AllResolvedAllValid(t *testing.T) {
	results := report.NewResultSet()
	results.Add("/repo/domains/example.com/app.json")
	fake := &fakeValidator{allValid: true, results: results}
	c := &Checker{Validator: fake}

	outcome := c.Check(resolve.PathSet{Resolved: []string{"/repo/domains/example.com/app.json"}}, nil)

	if !outcome.AllValid {
		t.Error("AllValid = false, want true")
	}
	if outcome.NoneResolved {
		t.Error("NoneResolved = true, want false")
	}
	if !fake.called {
		t.Error("validator was not invoked")
	}
}

func TestCheck_NoneResolvedShortCircuits(t *testing.T) {
	fake := &fakeValidator{allValid: true, results: report.NewResultSet()}
	c := &Checker{Validator: fake}

	outcome := c.Check(resolve.PathSet{Missing: []string{"a.json", "b.json"}}, nil)

	if fake.called {
		t.Error("validator must not be invoked when nothing resolved")
	}
	if !outcome.NoneResolved {
		t.Error("NoneResolved = false, want true")
	}
	if outcome.AllValid {
		t.Error("AllValid = true, want false")
	}
	want := []string{"a.json", "b.json"}
	if got := outcome.Results.Paths(); !reflect.DeepEqual(got, want) {
		t.Errorf("Paths() = %v, want %v", got, want)
	}
	for _, e := range outcome.Results.Entries() {
		if len(e.Errors) != 1 || !strings.HasPrefix(e.Errors[0], "文件不存在: ") {
			t.Errorf("entry %q = %v, want single missing-file error", e.Path, e.Errors)
		}
	}
}

func TestCheck_MissingPathsGetSyntheticEntries(t *testing.T) {
	results := report.NewResultSet()
	results.Add("/repo/a.json")
	fake := &fakeValidator{allValid: true, results: results}
	c := &Checker{Validator: fake}

	outcome := c.Check(resolve.PathSet{
		Resolved: []string{"/repo/a.json"},
		Missing:  []string{"gone.json"},
	}, nil)

	if outcome.AllValid {
		t.Error("a missing path must force overall failure")
	}
	entries := outcome.Results.Entries()
	if len(entries) != 2 {
		t.Fatalf("len(entries) = %d, want 2", len(entries))
	}
	// Resolved results first, then missing paths in input order.
	if entries[0].Path != "/repo/a.json" {
		t.Errorf("entries[0].Path = %q, want resolved path first", entries[0].Path)
	}
	if entries[1].Path != "gone.json" {
		t.Errorf("entries[1].Path = %q, want missing path last", entries[1].Path)
	}
	if want := []string{"文件不存在: gone.json"}; !reflect.DeepEqual(entries[1].Errors, want) {
		t.Errorf("synthetic entry = %v, want %v", entries[1].Errors, want)
	}
}

func TestCheck_ValidatorErrorAbsorbed(t *testing.T) {
	fake := &fakeValidator{err: errors.New("registry exploded")}
	c := &Checker{Validator: fake}

	outcome := c.Check(resolve.PathSet{Resolved: []string{"/repo/a.json", "/repo/b.json"}}, nil)

	if outcome.AllValid {
		t.Error("AllValid = true, want false after validator error")
	}
	entries := outcome.Results.Entries()
	if len(entries) != 2 {
		t.Fatalf("len(entries) = %d, want one entry per resolved path", len(entries))
	}
	for _, e := range entries {
		if len(e.Errors) != 1 || !strings.Contains(e.Errors[0], "验证过程中发生错误: registry exploded") {
			t.Errorf("entry %q = %v, want embedded error message", e.Path, e.Errors)
		}
	}
}

func TestCheck_ValidatorPanicRecovered(t *testing.T) {
	fake := &fakeValidator{panicMsg: "nil map write"}
	c := &Checker{Validator: fake}

	outcome := c.Check(resolve.PathSet{
		Resolved: []string{"/repo/a.json"},
		Missing:  []string{"gone.json"},
	}, nil)

	if outcome.AllValid {
		t.Error("AllValid = true, want false after panic")
	}
	entries := outcome.Results.Entries()
	if len(entries) != 2 {
		t.Fatalf("len(entries) = %d, want 2", len(entries))
	}
	if !strings.Contains(entries[0].Errors[0], "nil map write") {
		t.Errorf("entry = %v, want panic message embedded", entries[0].Errors)
	}
	if !strings.HasPrefix(entries[1].Errors[0], "文件不存在: ") {
		t.Errorf("missing entry = %v, want synthetic error", entries[1].Errors)
	}
}

func TestCheck_ConfigPassedThrough(t *testing.T) {
	cfg := &validator.Config{RecordTypes: []string{"A"}}
	fake := &fakeValidator{allValid: true, results: report.NewResultSet()}
	c := &Checker{Validator: fake}

	c.Check(resolve.PathSet{Resolved: []string{"/repo/a.json"}}, cfg)

	if fake.gotConfig != cfg {
		t.Error("config was not passed through unmodified")
	}
}
