package integrity_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pakt/internal/adapters/integrity"
	"go.trai.ch/pakt/internal/core/domain"
)

func newChecker(t *testing.T) (*integrity.Checker, string) {
	t.Helper()
	folder := filepath.Join(t.TempDir(), "pakt_modules")
	return integrity.NewChecker(folder, false), folder
}

func sampleImage() domain.LockfileImage {
	return domain.LockfileImage{
		"a@^1.0.0": {Version: "1.2.3", Resolved: "https://host/a-1.2.3.tgz#cafe01"},
	}
}

func TestCheck_MissingFile(t *testing.T) {
	checker, _ := newChecker(t)

	status, err := checker.Check([]string{"a@^1.0.0"}, sampleImage(), domain.EffectiveFlags{})
	require.NoError(t, err)
	assert.True(t, status.IntegrityFileMissing)
	assert.False(t, status.IntegrityMatches)
	assert.Empty(t, status.MissingPatterns)
}

func TestCheck_MissingPatterns(t *testing.T) {
	checker, _ := newChecker(t)

	status, err := checker.Check([]string{"a@^1.0.0", "b@^2.0.0", "a"}, sampleImage(), domain.EffectiveFlags{})
	require.NoError(t, err)
	// a@^1.0.0 is covered exactly, bare a by name, b not at all.
	assert.Equal(t, []string{"b@^2.0.0"}, status.MissingPatterns)
}

func TestSaveThenCheck_Matches(t *testing.T) {
	checker, _ := newChecker(t)
	patterns := []string{"a@^1.0.0"}
	flags := domain.EffectiveFlags{Lockfile: true}

	require.NoError(t, checker.Save(patterns, sampleImage(), flags, []string{"pakt"}))

	status, err := checker.Check(patterns, sampleImage(), flags)
	require.NoError(t, err)
	assert.True(t, status.IntegrityMatches)
	assert.False(t, status.IntegrityFileMissing)
}

func TestCheck_LockfileChangeBreaksMatch(t *testing.T) {
	checker, _ := newChecker(t)
	patterns := []string{"a@^1.0.0"}
	flags := domain.EffectiveFlags{}

	require.NoError(t, checker.Save(patterns, sampleImage(), flags, []string{"pakt"}))

	changed := domain.LockfileImage{
		"a@^1.0.0": {Version: "1.3.0", Resolved: "https://host/a-1.3.0.tgz#beef02"},
	}
	status, err := checker.Check(patterns, changed, flags)
	require.NoError(t, err)
	assert.False(t, status.IntegrityMatches)
}

func TestCheck_FlagChangeBreaksMatch(t *testing.T) {
	checker, _ := newChecker(t)
	patterns := []string{"a@^1.0.0"}

	require.NoError(t, checker.Save(patterns, sampleImage(), domain.EffectiveFlags{}, nil))

	status, err := checker.Check(patterns, sampleImage(), domain.EffectiveFlags{Flat: true})
	require.NoError(t, err)
	assert.False(t, status.IntegrityMatches)
}

func TestCheck_CheckFilesWantsContent(t *testing.T) {
	checker, folder := newChecker(t)
	patterns := []string{"a@^1.0.0"}
	flags := domain.EffectiveFlags{CheckFiles: true}

	require.NoError(t, checker.Save(patterns, sampleImage(), flags, nil))

	// Only the witness itself lives in the folder: not a real install.
	status, err := checker.Check(patterns, sampleImage(), flags)
	require.NoError(t, err)
	assert.False(t, status.IntegrityMatches)

	require.NoError(t, os.MkdirAll(filepath.Join(folder, "a"), 0o750))
	status, err = checker.Check(patterns, sampleImage(), flags)
	require.NoError(t, err)
	assert.True(t, status.IntegrityMatches)
}

func TestRemoveIntegrityFile(t *testing.T) {
	checker, folder := newChecker(t)
	require.NoError(t, checker.Save([]string{"a@^1.0.0"}, sampleImage(), domain.EffectiveFlags{}, nil))

	require.NoError(t, checker.RemoveIntegrityFile())
	_, err := os.Stat(filepath.Join(folder, integrity.Filename))
	assert.True(t, os.IsNotExist(err))

	// Removing twice is fine.
	require.NoError(t, checker.RemoveIntegrityFile())
}

func TestCheck_CorruptWitnessCountsAsMissing(t *testing.T) {
	checker, folder := newChecker(t)
	require.NoError(t, os.MkdirAll(folder, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(folder, integrity.Filename), []byte("{not yaml"), 0o600))

	status, err := checker.Check([]string{"a@^1.0.0"}, sampleImage(), domain.EffectiveFlags{})
	require.NoError(t, err)
	assert.True(t, status.IntegrityFileMissing)
	assert.False(t, status.IntegrityMatches)
}
