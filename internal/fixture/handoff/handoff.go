// Package handoff is a disposable fixture for validating session
// handoff context transfer: session one completes the first half of a
// fixed task list and hands off; session two must receive exactly the
// remaining work plus the parent session reference, then finish it.
package handoff

import "fmt"

// fixtureFile is the file the scripted refactoring touches.
const fixtureFile = "docs/handoff_test_template.py"

// handoffPoint is the task index after which session one hands off.
const handoffPoint = 4

// tasks is the fixed refactoring checklist. Order matters: the
// handoff happens after the first four.
var tasks = []string{
	"Add type hints and docstring to calculate_area",
	"Add type hints and docstring to calculate_perimeter",
	"Add type hints and docstring to is_prime",
	"Add type hints and docstring to factorial",
	"Add type hints and docstring to fibonacci",
	"Add type hints and docstring to reverse_string",
	"Add type hints and docstring to count_vowels",
	"Add type hints and docstring to find_max",
}

// Context is the payload transferred between sessions.
type Context struct {
	ParentSessionID string   `json:"parentSessionId"`
	CompletedWork   string   `json:"completedWork"`
	ModifiedFiles   []string `json:"modifiedFiles"`
	CompletedTodos  []string `json:"completedTodos"`
	PendingTodos    []string `json:"pendingTodos"`
}

// Session simulates one assistant session working through the list.
type Session struct {
	ID        string
	completed []string
	pending   []string
	files     map[string]struct{}
}

// NewSession starts a session with the full task list pending.
func NewSession(id string) *Session {
	return &Session{
		ID:      id,
		pending: append([]string(nil), tasks...),
		files:   make(map[string]struct{}),
	}
}

// CompleteNext marks the next pending task done and records the file
// touch. Returns false once nothing is pending.
func (s *Session) CompleteNext() bool {
	if len(s.pending) == 0 {
		return false
	}
	s.completed = append(s.completed, s.pending[0])
	s.pending = s.pending[1:]
	s.files[fixtureFile] = struct{}{}
	return true
}

// Completed returns the tasks finished so far.
func (s *Session) Completed() []string {
	return append([]string(nil), s.completed...)
}

// Pending returns the tasks not yet finished.
func (s *Session) Pending() []string {
	return append([]string(nil), s.pending...)
}

// CreateHandoff builds the context a successor session starts from.
func (s *Session) CreateHandoff() Context {
	files := make([]string, 0, len(s.files))
	for f := range s.files {
		files = append(files, f)
	}
	return Context{
		ParentSessionID: s.ID,
		CompletedWork:   fmt.Sprintf("Refactored %d of %d functions in %s", len(s.completed), len(s.completed)+len(s.pending), fixtureFile),
		ModifiedFiles:   files,
		CompletedTodos:  s.Completed(),
		PendingTodos:    s.Pending(),
	}
}

// Resume starts a new session seeded from a handoff context: only the
// pending work remains, the completed list is carried for reference.
func Resume(id string, ctx Context) *Session {
	s := &Session{
		ID:        id,
		completed: append([]string(nil), ctx.CompletedTodos...),
		pending:   append([]string(nil), ctx.PendingTodos...),
		files:     make(map[string]struct{}),
	}
	for _, f := range ctx.ModifiedFiles {
		s.files[f] = struct{}{}
	}
	return s
}

// Check is one verified expectation of the scenario.
type Check struct {
	Name string
	OK   bool
}

// Report is the outcome of one fixture run.
type Report struct {
	Context Context
	Checks  []Check
}

// Passed reports whether every check held.
func (r Report) Passed() bool {
	for _, c := range r.Checks {
		if !c.OK {
			return false
		}
	}
	return true
}

// Run executes the scripted scenario: session one completes tasks
// one through four, hands off, and session two finishes the rest.
func Run() Report {
	first := NewSession("session-1")
	for i := 0; i < handoffPoint; i++ {
		first.CompleteNext()
	}

	ctx := first.CreateHandoff()
	second := Resume("session-2", ctx)
	for second.CompleteNext() {
	}

	report := Report{Context: ctx}
	report.Checks = []Check{
		{"handoff context carries the parent session id", ctx.ParentSessionID == first.ID},
		{"completed todos list exactly the first four tasks", equalStrings(ctx.CompletedTodos, tasks[:handoffPoint])},
		{"pending todos list exactly the remaining tasks", equalStrings(ctx.PendingTodos, tasks[handoffPoint:])},
		{"modified files include the fixture file", len(ctx.ModifiedFiles) == 1 && ctx.ModifiedFiles[0] == fixtureFile},
		{"completed work summary is present", ctx.CompletedWork != ""},
		{"resumed session finishes all tasks", len(second.Pending()) == 0 && len(second.Completed()) == len(tasks)},
	}
	return report
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
