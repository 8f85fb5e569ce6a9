package progrock_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	vito "github.com/vito/progrock"
	"go.trai.ch/pakt/internal/adapters/telemetry/progrock"
)

func TestRecorder_RecordsVertex(t *testing.T) {
	tape := vito.NewTape()
	rec := progrock.NewRecorder(tape)

	_, vertex := rec.Record(context.Background(), "Resolving packages")
	_, err := vertex.Write([]byte("resolved 3 packages\n"))
	require.NoError(t, err)
	vertex.Done(nil)

	require.NoError(t, rec.Close())
}

func TestRecorder_RecordsFailure(t *testing.T) {
	rec := progrock.NewRecorder(vito.NewTape())

	_, vertex := rec.Record(context.Background(), "Fetching packages")
	vertex.Done(assert.AnError)

	require.NoError(t, rec.Close())
}

func TestNew_UsesDefaultTape(t *testing.T) {
	rec := progrock.New()
	_, vertex := rec.Record(context.Background(), "Linking dependencies")
	vertex.Done(nil)
	require.NoError(t, rec.Close())
}
