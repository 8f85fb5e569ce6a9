package install

import (
	"sync"

	"go.trai.ch/pakt/internal/core/ports"
)

// recordingReporter is a test double capturing reporter output.
type recordingReporter struct {
	mu        sync.Mutex
	steps     []string
	successes []string
	warnings  []string
	infos     []string
	commands  []string

	selectValue string
	selectErr   error
	selectCalls int
}

func (r *recordingReporter) Step(_, _ int, msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.steps = append(r.steps, msg)
}

func (r *recordingReporter) Success(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.successes = append(r.successes, msg)
}

func (r *recordingReporter) Warn(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.warnings = append(r.warnings, msg)
}

func (r *recordingReporter) Info(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.infos = append(r.infos, msg)
}

func (r *recordingReporter) Command(cmd string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.commands = append(r.commands, cmd)
}

func (r *recordingReporter) Select(_, _ string, _ []ports.SelectOption) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.selectCalls++
	return r.selectValue, r.selectErr
}
