package tui

import (
	"github.com/jmturner/pocketwatch/internal/model"
)

// snapshotMsg carries a fresh store snapshot into the UI. Sent on startup
// and by the store observer after every mutation.
type snapshotMsg struct {
	snapshot model.Snapshot
}

// statusMsg shows a transient message in the footer.
type statusMsg struct {
	text  string
	isErr bool
}
