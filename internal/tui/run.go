package tui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jmturner/pocketwatch/internal/model"
	"github.com/jmturner/pocketwatch/internal/store"
)

// Run starts the interactive dashboard and blocks until the user quits
// or the context is cancelled. Store mutations made while the dashboard
// is open are pushed into the UI through a store subscription.
func Run(ctx context.Context, s *store.Store) error {
	program := tea.NewProgram(
		newModel(s, time.Now),
		tea.WithContext(ctx),
		tea.WithAltScreen(),
	)

	s.Subscribe(func(snap model.Snapshot) {
		program.Send(snapshotMsg{snapshot: snap})
	})

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("running dashboard: %w", err)
	}
	return nil
}
