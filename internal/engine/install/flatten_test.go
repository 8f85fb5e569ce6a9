package install

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pakt/internal/core/domain"
	"go.trai.ch/pakt/internal/core/ports"
	"go.trai.ch/pakt/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

// failingDisambiguator fails the test when a prompt happens.
type failingDisambiguator struct{ t *testing.T }

func (d *failingDisambiguator) Choose(name string, _ []ports.SelectOption) (string, error) {
	d.t.Fatalf("unexpected prompt for %s", name)
	return "", nil
}

// presetDisambiguator answers every prompt with a fixed version.
type presetDisambiguator struct {
	version string
	calls   int
}

func (d *presetDisambiguator) Choose(_ string, _ []ports.SelectOption) (string, error) {
	d.calls++
	return d.version, nil
}

// twoVersionResolver wires a mock resolver with two versions of b and one
// of a.
func twoVersionResolver(t *testing.T) *mocks.MockResolver {
	t.Helper()
	ctrl := gomock.NewController(t)
	resolver := mocks.NewMockResolver(ctrl)

	manifestA := &domain.Manifest{Name: "a", Version: "1.0.0", Ref: 0}
	manifestB1 := &domain.Manifest{Name: "b", Version: "1.0.0", Ref: 1}
	manifestB2 := &domain.Manifest{Name: "b", Version: "2.0.0", Ref: 2}
	refs := []*domain.PackageReference{
		{Name: "a", Requesters: []string{domain.RootRequester}},
		{Name: "b", Requesters: []string{"a@^1.0.0"}},
		{Name: "b", Requesters: []string{domain.RootRequester}},
	}

	resolver.EXPECT().DependencyNamesByLevelOrder(gomock.Any()).Return([]string{"a", "b"}).AnyTimes()
	resolver.EXPECT().InfoForPackageName("a").Return([]*domain.Manifest{manifestA}).AnyTimes()
	resolver.EXPECT().InfoForPackageName("b").Return([]*domain.Manifest{manifestB1, manifestB2}).AnyTimes()
	resolver.EXPECT().PatternsByPackage("a").Return([]string{"a@^1.0.0"}).AnyTimes()
	resolver.EXPECT().PatternsByPackage("b").Return([]string{"b@^1.0.0", "b@^2.0.0"}).AnyTimes()
	resolver.EXPECT().Reference(gomock.Any()).DoAndReturn(func(ref int) *domain.PackageReference {
		return refs[ref]
	}).AnyTimes()
	return resolver
}

func TestFlatten_OffModeIsIdentity(t *testing.T) {
	inst := newTestInstaller(t, t.TempDir(), domain.EffectiveFlags{})
	inst.disambiguator = &failingDisambiguator{t: t}

	patterns := []string{"a@^1.0.0", "b@^2.0.0"}
	flattened, err := inst.flatten(context.Background(), patterns)
	require.NoError(t, err)
	assert.Equal(t, patterns, flattened)
}

func TestFlatten_PresetResolutionAvoidsPrompt(t *testing.T) {
	resolver := twoVersionResolver(t)
	resolver.EXPECT().CollapseAllVersionsOfPackage("b", "2.0.0").Return("b@^2.0.0", nil)

	inst := newTestInstaller(t, t.TempDir(), domain.EffectiveFlags{Flat: true})
	inst.engines.Resolver = resolver
	inst.disambiguator = &failingDisambiguator{t: t}
	inst.resolutions["b"] = "2.0.0"

	flattened, err := inst.flatten(context.Background(), []string{"a@^1.0.0", "b@^2.0.0"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a@^1.0.0", "b@^2.0.0"}, flattened)
}

func TestFlatten_PresetMismatchPrompts(t *testing.T) {
	resolver := twoVersionResolver(t)
	resolver.EXPECT().CollapseAllVersionsOfPackage("b", "2.0.0").Return("b@^2.0.0", nil)

	dir := t.TempDir()
	writeFile(t, dir, "pakt.json", `{"flat": true, "dependencies": {"a": "^1.0.0", "b": "^2.0.0"}}`)
	inst := newTestInstaller(t, dir, domain.EffectiveFlags{Flat: true})
	_, err := inst.CollectRequests(nil, false)
	require.NoError(t, err)

	inst.engines.Resolver = resolver
	chooser := &presetDisambiguator{version: "2.0.0"}
	inst.disambiguator = chooser
	// The preset names a version that is not among the candidates.
	inst.resolutions["b"] = "9.9.9"

	_, err = inst.flatten(context.Background(), []string{"a@^1.0.0", "b@^2.0.0"})
	require.NoError(t, err)
	assert.Equal(t, 1, chooser.calls)
	assert.Equal(t, "2.0.0", inst.resolutions["b"])
}

func TestFlatten_PromptPersistsResolutions(t *testing.T) {
	resolver := twoVersionResolver(t)
	resolver.EXPECT().CollapseAllVersionsOfPackage("b", "2.0.0").Return("b@^2.0.0", nil)

	dir := t.TempDir()
	writeFile(t, dir, "pakt.json", `{"flat": true, "dependencies": {"a": "^1.0.0", "b": "^2.0.0"}}`)
	inst := newTestInstaller(t, dir, domain.EffectiveFlags{Flat: true})
	_, err := inst.CollectRequests(nil, false)
	require.NoError(t, err)

	inst.engines.Resolver = resolver
	inst.disambiguator = &presetDisambiguator{version: "2.0.0"}

	_, err = inst.flatten(context.Background(), []string{"a@^1.0.0", "b@^2.0.0"})
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "pakt.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"resolutions"`)
	assert.Contains(t, string(data), `"2.0.0"`)
}

func TestFlatten_DryRunDoesNotPersist(t *testing.T) {
	resolver := twoVersionResolver(t)
	resolver.EXPECT().CollapseAllVersionsOfPackage("b", "2.0.0").Return("b@^2.0.0", nil)

	dir := t.TempDir()
	manifest := `{"flat": true, "dependencies": {"a": "^1.0.0", "b": "^2.0.0"}}`
	writeFile(t, dir, "pakt.json", manifest)
	inst := newTestInstaller(t, dir, domain.EffectiveFlags{Flat: true})
	_, err := inst.CollectRequests(nil, false)
	require.NoError(t, err)

	inst.engines.Resolver = resolver
	inst.disambiguator = &presetDisambiguator{version: "2.0.0"}
	inst.dryRun = true

	_, err = inst.flatten(context.Background(), []string{"a@^1.0.0", "b@^2.0.0"})
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "pakt.json"))
	require.NoError(t, err)
	assert.Equal(t, manifest, string(data))
}

func TestFlatten_SkipsFullyIgnoredNames(t *testing.T) {
	ctrl := gomock.NewController(t)
	resolver := mocks.NewMockResolver(ctrl)
	manifest := &domain.Manifest{Name: "a", Version: "1.0.0", Ref: 0}
	resolver.EXPECT().DependencyNamesByLevelOrder(gomock.Any()).Return([]string{"a"}).AnyTimes()
	resolver.EXPECT().InfoForPackageName("a").Return([]*domain.Manifest{manifest}).AnyTimes()
	resolver.EXPECT().Reference(0).Return(&domain.PackageReference{Name: "a", Ignore: true}).AnyTimes()

	inst := newTestInstaller(t, t.TempDir(), domain.EffectiveFlags{Flat: true})
	inst.engines.Resolver = resolver
	inst.disambiguator = &failingDisambiguator{t: t}

	flattened, err := inst.flatten(context.Background(), []string{"a@^1.0.0"})
	require.NoError(t, err)
	assert.Empty(t, flattened)
}
