package install

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pakt/internal/core/domain"
	"go.trai.ch/pakt/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func bailoutInstaller(t *testing.T, flags domain.EffectiveFlags) (*Installer, *mocks.MockLockfile, *mocks.MockIntegrityChecker, *recordingReporter) {
	t.Helper()
	ctrl := gomock.NewController(t)
	lock := mocks.NewMockLockfile(ctrl)
	checker := mocks.NewMockIntegrityChecker(ctrl)
	reporter := &recordingReporter{}

	inst := newTestInstaller(t, t.TempDir(), flags)
	inst.reporter = reporter
	inst.lockfile = lock
	inst.engines.Integrity = checker
	return inst, lock, checker, reporter
}

func TestBailout_ForceDisables(t *testing.T) {
	inst, _, _, _ := bailoutInstaller(t, domain.EffectiveFlags{Force: true})

	bail, err := inst.bailout([]string{"a@^1.0.0"})
	require.NoError(t, err)
	assert.False(t, bail)
}

func TestBailout_SkipIntegrityCheckDisables(t *testing.T) {
	inst, _, _, _ := bailoutInstaller(t, domain.EffectiveFlags{SkipIntegrityCheck: true})

	bail, err := inst.bailout([]string{"a@^1.0.0"})
	require.NoError(t, err)
	assert.False(t, bail)
}

func TestBailout_EmptyLockfileCacheDisables(t *testing.T) {
	inst, lock, _, _ := bailoutInstaller(t, domain.EffectiveFlags{})
	lock.EXPECT().Cache().Return(domain.LockfileImage{}).AnyTimes()

	bail, err := inst.bailout([]string{"a@^1.0.0"})
	require.NoError(t, err)
	assert.False(t, bail)
}

func TestBailout_FrozenLockfileViolation(t *testing.T) {
	inst, lock, checker, _ := bailoutInstaller(t, domain.EffectiveFlags{FrozenLockfile: true})
	cache := domain.LockfileImage{"a@^1.0.0": {Version: "1.0.0"}}
	lock.EXPECT().Cache().Return(cache).AnyTimes()
	checker.EXPECT().Check([]string{"a@^1.0.0", "b@^2.0.0"}, cache, gomock.Any()).
		Return(domain.IntegrityStatus{MissingPatterns: []string{"b@^2.0.0"}}, nil)

	_, err := inst.bailout([]string{"a@^1.0.0", "b@^2.0.0"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrFrozenLockfile)
}

func TestBailout_UpToDate(t *testing.T) {
	inst, lock, checker, reporter := bailoutInstaller(t, domain.EffectiveFlags{})
	cache := domain.LockfileImage{"a@^1.0.0": {Version: "1.0.0"}}
	lock.EXPECT().Cache().Return(cache).AnyTimes()
	lock.EXPECT().Exists().Return(true)
	checker.EXPECT().Check(gomock.Any(), cache, gomock.Any()).
		Return(domain.IntegrityStatus{IntegrityMatches: true}, nil)

	bail, err := inst.bailout([]string{"a@^1.0.0"})
	require.NoError(t, err)
	assert.True(t, bail)
	assert.Contains(t, reporter.successes, "Already up to date.")
}

func TestBailout_MatchWithoutLockfileOnDiskContinues(t *testing.T) {
	inst, lock, checker, _ := bailoutInstaller(t, domain.EffectiveFlags{})
	cache := domain.LockfileImage{"a@^1.0.0": {Version: "1.0.0"}}
	lock.EXPECT().Cache().Return(cache).AnyTimes()
	lock.EXPECT().Exists().Return(false)
	checker.EXPECT().Check(gomock.Any(), cache, gomock.Any()).
		Return(domain.IntegrityStatus{IntegrityMatches: true}, nil)

	bail, err := inst.bailout([]string{"a@^1.0.0"})
	require.NoError(t, err)
	assert.False(t, bail)
}

func TestBailout_NothingToInstall(t *testing.T) {
	ctrl := gomock.NewController(t)
	resolver := mocks.NewMockResolver(ctrl)
	resolver.EXPECT().Patterns().Return(map[string]*domain.Manifest{}).AnyTimes()
	resolver.EXPECT().UsedRegistries().Return([]string{"pakt"}).AnyTimes()

	inst, lock, checker, reporter := bailoutInstaller(t, domain.EffectiveFlags{Lockfile: true})
	inst.engines.Resolver = resolver
	inst.registryName = "pakt"

	cache := domain.LockfileImage{"stale@^1.0.0": {Version: "1.0.0"}}
	lock.EXPECT().Cache().Return(cache).AnyTimes()
	checker.EXPECT().Check(gomock.Any(), cache, gomock.Any()).
		Return(domain.IntegrityStatus{IntegrityFileMissing: false}, nil)
	lock.EXPECT().Image(gomock.Any()).Return(domain.LockfileImage{})
	checker.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), []string{"pakt"}).Return(nil)
	lock.EXPECT().Write(gomock.Any(), gomock.Any()).Return(nil)

	bail, err := inst.bailout(nil)
	require.NoError(t, err)
	assert.True(t, bail)
	assert.Contains(t, reporter.successes, "Nothing to install.")
}

func TestBailout_IntegrityMismatchContinues(t *testing.T) {
	inst, lock, checker, _ := bailoutInstaller(t, domain.EffectiveFlags{})
	cache := domain.LockfileImage{"a@^1.0.0": {Version: "1.0.0"}}
	lock.EXPECT().Cache().Return(cache).AnyTimes()
	checker.EXPECT().Check(gomock.Any(), cache, gomock.Any()).
		Return(domain.IntegrityStatus{IntegrityFileMissing: true}, nil)

	bail, err := inst.bailout([]string{"a@^1.0.0"})
	require.NoError(t, err)
	assert.False(t, bail)
}
