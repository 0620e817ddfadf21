// Package selector lets the user pick one package out of an aggregated result
// list.
package selector

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fyntora/fyn/internal/models"
	"github.com/sahilm/fuzzy"
)

// PageSize is the number of packages listed per page
const PageSize = 10

const maxSuggestions = 3

// State of a selection
type State int

const (
	StatePagedList State = iota
	StateExactMatch
	StateSelected
	StateCancelled
)

// String returns the string representation of State
func (s State) String() string {
	switch s {
	case StatePagedList:
		return "PagedList"
	case StateExactMatch:
		return "ExactMatch"
	case StateSelected:
		return "Selected"
	case StateCancelled:
		return "Cancelled"
	default:
		return "Unknown"
	}
}

// Transition is the result of handling one line of input
type Transition struct {
	State State
	// Index of the selected package, valid in StateSelected
	Index int
	// Notice is shown before re-prompting
	Notice string
	// PageChanged is set when the listing has to be redrawn
	PageChanged bool
}

// Session is the paging state over one result list
type Session struct {
	query    string
	packages []models.Package
	page     int
	pageSize int
}

// NewSession starts on the first page
func NewSession(query string, packages []models.Package) *Session {
	return &Session{query: query, packages: packages, pageSize: PageSize}
}

// ExactMatch returns the index of the first package named exactly like the
// query
func (s *Session) ExactMatch() (int, bool) {
	return s.indexOf(s.query)
}

func (s *Session) indexOf(name string) (int, bool) {
	for i, p := range s.packages {
		if p.Name == name {
			return i, true
		}
	}
	return 0, false
}

// Bounds returns the current page as a half-open range of 0-based indices
func (s *Session) Bounds() (start, end int) {
	start = s.page * s.pageSize
	end = start + s.pageSize
	if end > len(s.packages) {
		end = len(s.packages)
	}
	return start, end
}

// HasMore reports whether a further page exists
func (s *Session) HasMore() bool {
	_, end := s.Bounds()
	return end < len(s.packages)
}

// Prompt returns the input prompt for the current page
func (s *Session) Prompt() string {
	if !s.HasMore() {
		return "Enter number or package name to install (or 'q' to quit): "
	}
	start, end := s.Bounds()
	return fmt.Sprintf("Showing %d-%d of %d. Enter number/name, 'more' for next page, or 'q' to quit: ",
		start+1, end, len(s.packages))
}

// Handle applies one line of user input
func (s *Session) Handle(input string) Transition {
	input = strings.TrimSpace(input)
	lower := strings.ToLower(input)

	if input == "" || lower == "q" {
		return Transition{State: StateCancelled}
	}

	if lower == "more" || lower == "m" {
		if !s.HasMore() {
			return Transition{State: StatePagedList, Notice: "No more packages to show."}
		}
		s.page++
		return Transition{State: StatePagedList, PageChanged: true}
	}

	if n, err := strconv.Atoi(input); err == nil {
		if n < 1 || n > len(s.packages) {
			return Transition{
				State:  StatePagedList,
				Notice: fmt.Sprintf("Invalid number. Please enter 1-%d.", len(s.packages)),
			}
		}
		return Transition{State: StateSelected, Index: n - 1}
	}

	// Names are matched against the whole list, not only the visible page
	if i, ok := s.indexOf(input); ok {
		return Transition{State: StateSelected, Index: i}
	}

	notice := fmt.Sprintf("Package '%s' not found in results. Try again.", input)
	if suggestions := s.suggest(input); len(suggestions) > 0 {
		notice += " Did you mean: " + strings.Join(suggestions, ", ") + "?"
	}
	return Transition{State: StatePagedList, Notice: notice}
}

// suggest returns the closest package names to input
func (s *Session) suggest(input string) []string {
	names := make([]string, len(s.packages))
	for i, p := range s.packages {
		names[i] = p.Name
	}

	seen := make(map[string]bool)
	var out []string
	for _, m := range fuzzy.Find(input, names) {
		if seen[m.Str] {
			continue
		}
		seen[m.Str] = true
		out = append(out, m.Str)
		if len(out) == maxSuggestions {
			break
		}
	}
	return out
}
