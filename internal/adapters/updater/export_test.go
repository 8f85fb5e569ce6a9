package updater

import "time"

// SetTTY overrides TTY detection for tests.
func (n *Nag) SetTTY(tty bool) {
	n.isTTY = func() bool { return tty }
}

// SetNow overrides the clock for tests.
func (n *Nag) SetNow(now func() time.Time) {
	n.now = now
}

// UpgradeSuggestion exposes the method table for tests.
var UpgradeSuggestion = upgradeSuggestion
