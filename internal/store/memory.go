// Package store holds the in-memory todo collection.
package store

import (
	"context"
	"sync"
	"time"

	"github.com/Innocent9712/much-to-do/Server/TodoList/internal/todo"
)

// SeedTodos returns the fixed sample records a fresh store starts with.
func SeedTodos() []todo.Todo {
	return []todo.Todo{
		{ID: "1", Text: "Learn how to build an API", Completed: false},
		{ID: "2", Text: "Build the Todo app", Completed: true},
		{ID: "3", Text: "Deploy to Netlify", Completed: false},
	}
}

// Memory is a todo.Store backed by a slice. The mutex only keeps the slice
// consistent; concurrent updates to the same record are last-write-wins.
type Memory struct {
	mu    sync.RWMutex
	todos []todo.Todo
	ids   todo.IDGenerator
	now   func() time.Time
}

// Option configures a Memory store.
type Option func(*Memory)

// WithIDGenerator overrides the default UUID generator.
func WithIDGenerator(g todo.IDGenerator) Option {
	return func(m *Memory) { m.ids = g }
}

// WithClock overrides time.Now for timestamps.
func WithClock(now func() time.Time) Option {
	return func(m *Memory) { m.now = now }
}

// WithSeed replaces the initial collection.
func WithSeed(todos []todo.Todo) Option {
	return func(m *Memory) {
		m.todos = make([]todo.Todo, 0, len(todos))
		for _, t := range todos {
			m.todos = append(m.todos, t.Clone())
		}
	}
}

// NewMemory returns a store seeded with SeedTodos unless WithSeed says otherwise.
func NewMemory(opts ...Option) *Memory {
	m := &Memory{
		ids: todo.UUIDs{},
		now: time.Now,
	}
	WithSeed(SeedTodos())(m)
	for _, opt := range opts {
		opt(m)
	}
	return m
}

var _ todo.Store = (*Memory)(nil)

func (m *Memory) List(ctx context.Context) ([]todo.Todo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]todo.Todo, len(m.todos))
	for i, t := range m.todos {
		out[i] = t.Clone()
	}
	return out, nil
}

func (m *Memory) Get(ctx context.Context, id string) (todo.Todo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	i := m.indexOf(id)
	if i < 0 {
		return todo.Todo{}, todo.ErrNotFound
	}
	return m.todos[i].Clone(), nil
}

func (m *Memory) Create(ctx context.Context, text string) (todo.Todo, error) {
	text, err := todo.NormalizeText(text)
	if err != nil {
		return todo.Todo{}, err
	}
	created := m.now().UTC()
	t := todo.Todo{
		ID:        m.ids.NewID(),
		Text:      text,
		Completed: false,
		CreatedAt: &created,
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.todos = append(m.todos, t)
	return t.Clone(), nil
}

func (m *Memory) Update(ctx context.Context, id string, p todo.Patch) (todo.Todo, error) {
	var text string
	if p.Text != nil {
		var err error
		if text, err = todo.NormalizeText(*p.Text); err != nil {
			return todo.Todo{}, err
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.indexOf(id)
	if i < 0 {
		return todo.Todo{}, todo.ErrNotFound
	}
	t := &m.todos[i]
	if p.Text != nil {
		t.Text = text
	}
	if p.Completed != nil {
		t.Completed = *p.Completed
	}
	updated := m.now().UTC()
	t.UpdatedAt = &updated
	return t.Clone(), nil
}

func (m *Memory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.indexOf(id)
	if i < 0 {
		return todo.ErrNotFound
	}
	m.todos = append(m.todos[:i], m.todos[i+1:]...)
	return nil
}

// indexOf is a linear scan; callers hold mu.
func (m *Memory) indexOf(id string) int {
	for i := range m.todos {
		if m.todos[i].ID == id {
			return i
		}
	}
	return -1
}
