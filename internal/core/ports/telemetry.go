package ports

import (
	"context"
	"io"
)

// Telemetry records units of work for progress display.
type Telemetry interface {
	// Record starts recording a new vertex.
	Record(ctx context.Context, name string) (context.Context, Vertex)
	// Close flushes and closes the recording session.
	Close() error
}

// Vertex represents one recorded unit of work.
type Vertex interface {
	io.Writer
	// Done completes the vertex, recording err when non-nil.
	Done(err error)
}
