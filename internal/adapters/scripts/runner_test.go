package scripts_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pakt/internal/adapters/config"
	"go.trai.ch/pakt/internal/adapters/scripts"
	"go.trai.ch/pakt/internal/core/domain"
	"go.trai.ch/pakt/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func setup(t *testing.T, manifests []*domain.Manifest, refs []*domain.PackageReference) (*scripts.Runner, string) {
	t.Helper()
	dir := t.TempDir()
	cfg, err := config.Load(dir, nil)
	require.NoError(t, err)

	ctrl := gomock.NewController(t)
	resolver := mocks.NewMockResolver(ctrl)
	resolver.EXPECT().Manifests().Return(manifests).AnyTimes()
	resolver.EXPECT().Reference(gomock.Any()).DoAndReturn(func(ref int) *domain.PackageReference {
		return refs[ref]
	}).AnyTimes()

	folder := filepath.Join(dir, "pakt_modules")
	return scripts.NewRunner(cfg, resolver, folder, nil), folder
}

func TestInit_RunsPhasesInOrder(t *testing.T) {
	manifests := []*domain.Manifest{{
		Name: "a", Version: "1.0.0", Ref: 0,
		Scripts: map[string]string{
			"postinstall": "echo post >> order.txt",
			"install":     "echo install >> order.txt",
			"preinstall":  "echo pre >> order.txt",
		},
	}}
	refs := []*domain.PackageReference{{Name: "a"}}
	runner, folder := setup(t, manifests, refs)
	require.NoError(t, os.MkdirAll(filepath.Join(folder, "a"), 0o750))

	require.NoError(t, runner.Init(context.Background(), nil))

	data, err := os.ReadFile(filepath.Join(folder, "a", "order.txt"))
	require.NoError(t, err)
	assert.Equal(t, "pre\ninstall\npost\n", string(data))
}

func TestInit_FailingScriptAborts(t *testing.T) {
	manifests := []*domain.Manifest{
		{Name: "a", Version: "1.0.0", Ref: 0, Scripts: map[string]string{"install": "exit 3"}},
		{Name: "b", Version: "1.0.0", Ref: 1, Scripts: map[string]string{"install": "touch b.txt"}},
	}
	refs := []*domain.PackageReference{{Name: "a"}, {Name: "b"}}
	runner, folder := setup(t, manifests, refs)
	require.NoError(t, os.MkdirAll(filepath.Join(folder, "a"), 0o750))
	require.NoError(t, os.MkdirAll(filepath.Join(folder, "b"), 0o750))

	err := runner.Init(context.Background(), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrLifecycleScriptFailed)

	// b never ran.
	_, statErr := os.Stat(filepath.Join(folder, "b", "b.txt"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestInit_IgnoredPackagesSkipScripts(t *testing.T) {
	manifests := []*domain.Manifest{{
		Name: "a", Version: "1.0.0", Ref: 0,
		Scripts: map[string]string{"install": "exit 1"},
	}}
	refs := []*domain.PackageReference{{Name: "a", Ignore: true}}
	runner, _ := setup(t, manifests, refs)

	assert.NoError(t, runner.Init(context.Background(), nil))
}
