package telemetry

import (
	"context"
	"os"

	"github.com/grindlemire/graft"
	"go.trai.ch/pakt/internal/adapters/telemetry/progrock"
	"go.trai.ch/pakt/internal/core/ports"
	"golang.org/x/term"
)

const NodeID graft.ID = "adapter.telemetry"

func init() {
	graft.Register(graft.Node[ports.Telemetry]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Telemetry, error) {
			// The progrock tape renders terminal progress; off a TTY the
			// recording would never be seen, so fall back to the noop.
			if term.IsTerminal(int(os.Stderr.Fd())) {
				return progrock.New(), nil
			}
			return NewNoOp(), nil
		},
	})
}
