// Package updater implements the opportunistic self-update check. It is
// best-effort: any failure is swallowed and never affects the install.
package updater

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
	"go.trai.ch/pakt/internal/adapters/config"
	"go.trai.ch/pakt/internal/build"
	"go.trai.ch/pakt/internal/core/ports"
	"golang.org/x/term"
)

// checkInterval is the minimum time between two update checks.
const checkInterval = 24 * time.Hour

// Hint is an armed upgrade suggestion, printed once at pipeline
// completion.
type Hint struct {
	Version string
	Command string
	URL     string
}

// Print emits the upgrade suggestion through the reporter.
func (h *Hint) Print(reporter ports.Reporter) {
	if reporter == nil {
		return
	}
	reporter.Info("a newer version " + h.Version + " is available")
	switch {
	case h.Command != "":
		reporter.Command(h.Command)
	case h.URL != "":
		reporter.Info("download it from " + h.URL)
	}
}

// Nag performs the self-update check.
type Nag struct {
	cfg    *config.Config
	logger ports.Logger

	isTTY func() bool
	now   func() time.Time
}

// NewNag creates a Nag bound to the shared config.
func NewNag(cfg *config.Config, logger ports.Logger) *Nag {
	return &Nag{
		cfg:    cfg,
		logger: logger,
		isTTY: func() bool {
			return term.IsTerminal(int(os.Stdout.Fd()))
		},
		now: time.Now,
	}
}

// Check fetches the latest released version and arms a hint when it is
// strictly newer than the running one. It returns nil in every other
// case, including every error.
func (n *Nag) Check(ctx context.Context) *Hint {
	if !n.isTTY() {
		return nil
	}
	if os.Getenv("CI") != "" {
		return nil
	}
	if n.cfg.BoolOption("disable-self-update-check") {
		return nil
	}
	if !n.dueForCheck() {
		return nil
	}
	if strings.Contains(build.Version, "-") {
		// Pre-release builds never nag.
		return nil
	}

	url := config.SelfUpdateURL
	if override, ok := n.cfg.GetOption("self-update-url").(string); ok && override != "" {
		url = override
	}
	body, err := n.cfg.Requests.Request(ctx, url)
	if err != nil {
		return nil
	}
	latest, err := semver.NewVersion(strings.TrimSpace(string(body)))
	if err != nil {
		return nil
	}

	n.recordCheck()

	running, err := semver.NewVersion(build.Version)
	if err != nil {
		return nil
	}
	if !latest.GreaterThan(running) {
		return nil
	}

	hint := &Hint{Version: latest.Original()}
	hint.Command, hint.URL = upgradeSuggestion(build.InstallMethod)
	return hint
}

func (n *Nag) stampPath() string {
	return filepath.Join(n.cfg.CacheFolder(), ".update-check")
}

func (n *Nag) dueForCheck() bool {
	data, err := os.ReadFile(n.stampPath()) //nolint:gosec // stamp lives in the cache folder
	if err != nil {
		return true
	}
	last, err := strconv.ParseInt(strings.TrimSpace(string(data)), 10, 64)
	if err != nil {
		return true
	}
	return n.now().Sub(time.Unix(last, 0)) >= checkInterval
}

func (n *Nag) recordCheck() {
	if err := os.MkdirAll(n.cfg.CacheFolder(), 0o750); err != nil {
		return
	}
	stamp := strconv.FormatInt(n.now().Unix(), 10)
	_ = os.WriteFile(n.stampPath(), []byte(stamp), 0o644) //nolint:gosec // stamp is throwaway state
}

// upgradeSuggestion picks the upgrade command for the install method, or
// an installer URL for msi, or nothing when the method is unknown.
func upgradeSuggestion(method string) (command, url string) {
	switch method {
	case "tar":
		return "curl -L https://pakt.trai.ch/install.sh | sh", ""
	case "homebrew":
		return "brew upgrade pakt", ""
	case "deb":
		return "sudo apt-get update && sudo apt-get install pakt", ""
	case "rpm":
		return "sudo yum install pakt", ""
	case "npm":
		return "npm install -g pakt", ""
	case "chocolatey":
		return "choco upgrade pakt", ""
	case "apk":
		return "apk add -u pakt", ""
	case "msi":
		return "", "https://pakt.trai.ch/latest.msi"
	default:
		return "", ""
	}
}
