package progrock

import (
	"github.com/vito/progrock"
)

// Vertex implements ports.Vertex wrapping *progrock.VertexRecorder.
type Vertex struct {
	vertex *progrock.VertexRecorder
}

// Write captures output for the vertex.
func (v *Vertex) Write(p []byte) (int, error) {
	return v.vertex.Stdout().Write(p)
}

// Done marks the vertex as finished, recording err when non-nil.
func (v *Vertex) Done(err error) {
	v.vertex.Done(err)
}
