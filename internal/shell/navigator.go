package shell

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/klytics/olivar/internal/editor"
	"github.com/klytics/olivar/internal/store"
)

// AdvisorView is the navigation entry for the advisory query.
const AdvisorView = "Asesor"

// Navigator is the view selector: one state per table plus AdvisorView.
// Leaving a table view drops its unsaved form.
type Navigator struct {
	tables  []string
	current string
	draft   *editor.Form
}

// NewNavigator starts on the first table of set.
func NewNavigator(set *store.TableSet) *Navigator {
	n := &Navigator{}
	n.Refresh(set)
	return n
}

// Refresh picks up the table names of a freshly loaded set. The current
// view is kept while it still exists.
func (n *Navigator) Refresh(set *store.TableSet) {
	n.tables = set.Names()
	if n.current == AdvisorView || n.has(n.current) {
		return
	}
	n.draft = nil
	if len(n.tables) > 0 {
		n.current = n.tables[0]
	} else {
		n.current = AdvisorView
	}
}

// Options returns every selectable view in menu order.
func (n *Navigator) Options() []string {
	return append(append([]string(nil), n.tables...), AdvisorView)
}

// Current returns the active view.
func (n *Navigator) Current() string {
	return n.current
}

// IsAdvisor reports whether the advisory view is active.
func (n *Navigator) IsAdvisor() bool {
	return n.current == AdvisorView
}

// Select switches to the view named by choice, given as a name (case
// insensitive) or a 1-based menu position. Any unsaved form is discarded,
// including when the same view is selected again.
func (n *Navigator) Select(choice string) error {
	choice = strings.TrimSpace(choice)
	opts := n.Options()

	target := ""
	if i, err := strconv.Atoi(choice); err == nil {
		if i < 1 || i > len(opts) {
			return fmt.Errorf("no view %d — choose 1-%d", i, len(opts))
		}
		target = opts[i-1]
	} else {
		for _, o := range opts {
			if strings.EqualFold(o, choice) {
				target = o
				break
			}
		}
	}
	if target == "" {
		return fmt.Errorf("unknown view %q — available: %s", choice, strings.Join(opts, ", "))
	}

	n.current = target
	n.draft = nil
	return nil
}

// Draft returns the "add record" form of the current table view, creating
// an empty one on first use. It returns nil in the advisory view.
func (n *Navigator) Draft(set *store.TableSet) (*editor.Form, error) {
	if n.IsAdvisor() {
		return nil, nil
	}
	if n.draft != nil {
		return n.draft, nil
	}
	t, err := set.Get(n.current)
	if err != nil {
		return nil, err
	}
	n.draft = editor.NewForm(t)
	return n.draft, nil
}

func (n *Navigator) has(name string) bool {
	for _, t := range n.tables {
		if t == name {
			return true
		}
	}
	return false
}
