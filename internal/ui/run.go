package ui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// RunOptions control the interactive session.
type RunOptions struct {
	Filter   Filter
	Endpoint string
	NoColor  bool
	// LogFile receives failures; empty disables logging.
	LogFile string
}

// Run starts the terminal controller and blocks until the user quits or
// ctx is cancelled.
func Run(ctx context.Context, api API, opts RunOptions) error {
	if opts.NoColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
	if opts.LogFile != "" {
		f, err := tea.LogToFile(opts.LogFile, "todolist")
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
	}

	m := New(ctx, api, Options{Filter: opts.Filter, Endpoint: opts.Endpoint})
	if _, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run(); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return err
	}
	return nil
}
