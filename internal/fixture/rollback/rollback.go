// Package rollback is a disposable fixture for validating the
// rollback-to-prior-state feature: it applies a fixed series of edits
// to a small document, rolls them all back, and verifies the document
// fingerprint returns to its original value.
package rollback

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"maps"
	"sort"
	"strings"
)

// Document is the unit under edit: function name to source line.
type Document map[string]string

// originalDocument is the fixed starting state. The expected
// fingerprints recorded for this fixture depend on it; do not edit.
func originalDocument() Document {
	return Document{
		"func1": "def greet(): return 'Hello'",
		"func2": "def add(a, b): return a + b",
		"func3": "def multiply(a, b): return a * b",
		"func4": "def is_even(n): return n % 2 == 0",
		"func5": "def uppercase(s): return s.upper()",
	}
}

// Change is one scripted edit.
type Change struct {
	FuncName string
	NewCode  string
}

// scriptedChanges are the five fixed edits the fixture applies.
func scriptedChanges() []Change {
	return []Change{
		{"func1", "def greet(): return 'Bonjour!'"},
		{"func2", "def add(a, b): return a + b + 100"},
		{"func3", "def multiply(a, b): return a * b * 2"},
		{"func4", "def is_even(n): return n % 2 != 0"},
		{"func5", "def uppercase(s): return s.lower()"},
	}
}

// Fixture holds the working document and its undo history.
type Fixture struct {
	doc     Document
	history []Document
}

// New creates a fixture at the original document state.
func New() *Fixture {
	return &Fixture{doc: originalDocument()}
}

// Fingerprint returns the MD5 hex digest of the document's sorted
// key/value pairs. MD5 is a state fingerprint here, not a security
// boundary.
func (f *Fixture) Fingerprint() string {
	keys := make([]string, 0, len(f.doc))
	for k := range f.doc {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, "%s=%s\n", k, f.doc[k])
	}
	sum := md5.Sum([]byte(b.String()))
	return hex.EncodeToString(sum[:])
}

// Apply saves the current state to history, then applies the change.
func (f *Fixture) Apply(c Change) {
	snapshot := make(Document, len(f.doc))
	maps.Copy(snapshot, f.doc)
	f.history = append(f.history, snapshot)
	f.doc[c.FuncName] = c.NewCode
}

// Rollback restores the most recently saved state. Rolling back with
// an empty history leaves the document unchanged.
func (f *Fixture) Rollback() {
	if len(f.history) == 0 {
		return
	}
	f.doc = f.history[len(f.history)-1]
	f.history = f.history[:len(f.history)-1]
}

// HistoryDepth returns the number of undoable states.
func (f *Fixture) HistoryDepth() int {
	return len(f.history)
}

// Report is the outcome of one fixture run.
type Report struct {
	OriginalHash string
	ChangedHash  string
	FinalHash    string
	Changes      int
	Rollbacks    int
	Restored     bool
}

// Run applies the five scripted changes, rolls all of them back, and
// reports whether the final fingerprint equals the original.
func Run() Report {
	f := New()
	report := Report{OriginalHash: f.Fingerprint()}

	changes := scriptedChanges()
	for _, c := range changes {
		f.Apply(c)
	}
	report.Changes = len(changes)
	report.ChangedHash = f.Fingerprint()

	for f.HistoryDepth() > 0 {
		f.Rollback()
		report.Rollbacks++
	}

	report.FinalHash = f.Fingerprint()
	report.Restored = report.FinalHash == report.OriginalHash
	return report
}
