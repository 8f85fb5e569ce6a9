package install

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pakt/internal/adapters/config"
	"go.trai.ch/pakt/internal/adapters/lockfile"
	"go.trai.ch/pakt/internal/core/domain"
	"go.trai.ch/pakt/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

const persistLock = `a@^1.0.0:
  version: 1.2.3
  resolved: https://host/a-1.2.3.tgz#cafe01
`

// persistResolver mocks a resolver whose pattern set matches persistLock.
func persistResolver(t *testing.T) *mocks.MockResolver {
	t.Helper()
	ctrl := gomock.NewController(t)
	resolver := mocks.NewMockResolver(ctrl)
	resolver.EXPECT().Patterns().Return(map[string]*domain.Manifest{
		"a@^1.0.0": {
			Name:    "a",
			Version: "1.2.3",
			Dist:    domain.Dist{Tarball: "https://host/a-1.2.3.tgz", Integrity: "cafe01"},
		},
	}).AnyTimes()
	resolver.EXPECT().UsedRegistries().Return([]string{"pakt"}).AnyTimes()
	return resolver
}

func persistInstaller(t *testing.T, dir string, flags domain.EffectiveFlags) (*Installer, *mocks.MockIntegrityChecker) {
	t.Helper()
	cfg, err := config.Load(dir, nil)
	require.NoError(t, err)
	lock, err := lockfile.FromDirectory(dir, nil)
	require.NoError(t, err)

	ctrl := gomock.NewController(t)
	checker := mocks.NewMockIntegrityChecker(ctrl)

	inst := New(cfg, &recordingReporter{}, lock, flags, Engines{
		Resolver:  persistResolver(t),
		Integrity: checker,
	})
	return inst, checker
}

func TestSave_SkipsWhenLockfileWritesDisabled(t *testing.T) {
	inst, _ := persistInstaller(t, t.TempDir(), domain.EffectiveFlags{Lockfile: false})
	// No Save expectation on the checker: nothing may be touched.
	require.NoError(t, inst.saveLockfileAndIntegrity([]string{"a@^1.0.0"}))
}

func TestSave_PureLockfileSkips(t *testing.T) {
	inst, _ := persistInstaller(t, t.TempDir(), domain.EffectiveFlags{Lockfile: true, PureLockfile: true})
	require.NoError(t, inst.saveLockfileAndIntegrity([]string{"a@^1.0.0"}))
}

func TestSave_WritesLockfileAndIntegrity(t *testing.T) {
	dir := t.TempDir()
	inst, checker := persistInstaller(t, dir, domain.EffectiveFlags{Lockfile: true})
	checker.EXPECT().Save([]string{"a@^1.0.0"}, gomock.Any(), gomock.Any(), []string{"pakt"}).Return(nil)

	require.NoError(t, inst.saveLockfileAndIntegrity([]string{"a@^1.0.0"}))

	data, err := os.ReadFile(filepath.Join(dir, config.LockfileFilename))
	require.NoError(t, err)
	assert.Contains(t, string(data), "a@^1.0.0")
	assert.Contains(t, string(data), "https://host/a-1.2.3.tgz#cafe01")
}

func TestSave_SkipWriteWhenUnchanged(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.LockfileFilename), []byte(persistLock), 0o600))

	inst, checker := persistInstaller(t, dir, domain.EffectiveFlags{Lockfile: true})
	// The witness is still always rewritten.
	checker.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

	require.NoError(t, inst.saveLockfileAndIntegrity([]string{"a@^1.0.0"}))

	// The lockfile kept its handwritten form: no rewrite happened.
	data, err := os.ReadFile(filepath.Join(dir, config.LockfileFilename))
	require.NoError(t, err)
	assert.Equal(t, persistLock, string(data))
}

func TestSave_ForceRewrites(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.LockfileFilename), []byte(persistLock), 0o600))

	inst, checker := persistInstaller(t, dir, domain.EffectiveFlags{Lockfile: true, Force: true})
	checker.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

	require.NoError(t, inst.saveLockfileAndIntegrity([]string{"a@^1.0.0"}))

	data, err := os.ReadFile(filepath.Join(dir, config.LockfileFilename))
	require.NoError(t, err)
	assert.NotEqual(t, persistLock, string(data))
	assert.Contains(t, string(data), "# pakt lockfile v1")
}

func TestSave_PrunesMirror(t *testing.T) {
	dir := t.TempDir()
	mirror := filepath.Join(dir, "mirror")
	require.NoError(t, os.MkdirAll(mirror, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(mirror, "a-1.2.3.tgz"), []byte("tar"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(mirror, "z-old.tgz"), []byte("tar"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.RcFilename), []byte("offline-mirror: ./mirror\n"), 0o600))

	inst, checker := persistInstaller(t, dir, domain.EffectiveFlags{Lockfile: true})
	checker.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

	require.NoError(t, inst.saveLockfileAndIntegrity([]string{"a@^1.0.0"}))

	entries, err := os.ReadDir(mirror)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "a-1.2.3.tgz", entries[0].Name())
}
