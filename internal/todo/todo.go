// Package todo defines the todo record, the store contract and the error
// taxonomy shared by the handler and the clients.
package todo

import (
	"context"
	"strings"
	"time"
	"unicode"
)

// Todo is a single task record.
type Todo struct {
	ID        string     `json:"id"`
	Text      string     `json:"text"`
	Completed bool       `json:"completed"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// Patch is a partial update. Nil fields are left untouched.
type Patch struct {
	Text      *string
	Completed *bool
}

// Store owns the todo collection.
type Store interface {
	// List returns the full collection in insertion order.
	List(ctx context.Context) ([]Todo, error)

	// Get returns the record with the given id or ErrNotFound.
	Get(ctx context.Context, id string) (Todo, error)

	// Create trims text, appends a new record and returns it.
	Create(ctx context.Context, text string) (Todo, error)

	// Update applies the present fields of p and stamps UpdatedAt.
	Update(ctx context.Context, id string, p Patch) (Todo, error)

	// Delete removes the record with the given id.
	Delete(ctx context.Context, id string) error
}

// NormalizeText trims text and rejects blank values. A byte order mark
// counts as whitespace.
func NormalizeText(text string) (string, error) {
	text = strings.TrimFunc(text, isSpace)
	if text == "" {
		return "", &ValidationError{Field: "text", Msg: "Text is required"}
	}
	return text, nil
}

func isSpace(r rune) bool {
	return unicode.IsSpace(r) || r == '\uFEFF'
}

// Clone returns a copy that shares no pointers with t.
func (t Todo) Clone() Todo {
	out := t
	if t.CreatedAt != nil {
		c := *t.CreatedAt
		out.CreatedAt = &c
	}
	if t.UpdatedAt != nil {
		u := *t.UpdatedAt
		out.UpdatedAt = &u
	}
	return out
}
