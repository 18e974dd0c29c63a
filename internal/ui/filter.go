package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/Innocent9712/much-to-do/Server/TodoList/internal/todo"
)

// Filter selects which todos are shown.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterActive    Filter = "active"
	FilterCompleted Filter = "completed"
)

var filters = []Filter{FilterAll, FilterActive, FilterCompleted}

// ParseFilter accepts all, active or completed (case-insensitive).
func ParseFilter(s string) (Filter, error) {
	f := Filter(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range filters {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown filter %q (want all, active or completed)", s)
}

// Next cycles all -> active -> completed -> all.
func (f Filter) Next() Filter {
	for i, known := range filters {
		if f == known {
			return filters[(i+1)%len(filters)]
		}
	}
	return FilterAll
}

// Apply returns the todos matching f, in their original order.
func (f Filter) Apply(todos []todo.Todo) []todo.Todo {
	out := make([]todo.Todo, 0, len(todos))
	for _, t := range todos {
		switch f {
		case FilterActive:
			if t.Completed {
				continue
			}
		case FilterCompleted:
			if !t.Completed {
				continue
			}
		}
		out = append(out, t)
	}
	return out
}

// Stats counts the fetched collection regardless of the filter.
type Stats struct {
	Total     int
	Active    int
	Completed int
}

func ComputeStats(todos []todo.Todo) Stats {
	s := Stats{Total: len(todos)}
	for _, t := range todos {
		if t.Completed {
			s.Completed++
		}
	}
	s.Active = s.Total - s.Completed
	return s
}

var whitespace = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ", "\t", " ")

// Sanitize makes record text safe to print on one line: escape sequences
// are removed and any remaining control characters become spaces.
func Sanitize(s string) string {
	s = ansi.Strip(whitespace.Replace(s))
	return strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f || (r >= 0x80 && r < 0xa0) {
			return ' '
		}
		return r
	}, s)
}
