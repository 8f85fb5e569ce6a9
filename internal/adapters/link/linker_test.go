package link_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pakt/internal/adapters/config"
	"go.trai.ch/pakt/internal/adapters/fetch"
	"go.trai.ch/pakt/internal/adapters/link"
	"go.trai.ch/pakt/internal/core/domain"
	"go.trai.ch/pakt/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	cfg, err := config.Load(dir, nil)
	require.NoError(t, err)
	cfg.SetOption("cache-folder", filepath.Join(dir, "cache"))
	return cfg
}

func seedCache(t *testing.T, cfg *config.Config, manifest *domain.Manifest, files map[string]string) {
	t.Helper()
	dir := fetch.CachePath(cfg, manifest)
	require.NoError(t, os.MkdirAll(dir, 0o750))
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	}
}

func mockResolver(t *testing.T, manifests []*domain.Manifest, refs []*domain.PackageReference, patterns map[string]*domain.Manifest) *mocks.MockResolver {
	t.Helper()
	ctrl := gomock.NewController(t)
	resolver := mocks.NewMockResolver(ctrl)
	resolver.EXPECT().Manifests().Return(manifests).AnyTimes()
	resolver.EXPECT().Reference(gomock.Any()).DoAndReturn(func(ref int) *domain.PackageReference {
		return refs[ref]
	}).AnyTimes()
	resolver.EXPECT().ResolvedPattern(gomock.Any()).DoAndReturn(func(pattern string) *domain.Manifest {
		return patterns[pattern]
	}).AnyTimes()
	return resolver
}

func TestInit_CopiesPackages(t *testing.T) {
	cfg := testConfig(t)
	manifest := &domain.Manifest{Name: "a", Version: "1.0.0", Ref: 0}
	seedCache(t, cfg, manifest, map[string]string{
		"package.json": `{"name": "a"}`,
		"lib/index.js": "1",
	})

	folder := filepath.Join(cfg.Cwd, "pakt_modules")
	resolver := mockResolver(t,
		[]*domain.Manifest{manifest},
		[]*domain.PackageReference{{Name: "a"}},
		map[string]*domain.Manifest{"a@^1.0.0": manifest},
	)

	l := link.NewLinker(cfg, resolver, folder, nil)
	require.NoError(t, l.Init(context.Background(), []string{"a@^1.0.0"}, false))

	data, err := os.ReadFile(filepath.Join(folder, "a", "lib", "index.js"))
	require.NoError(t, err)
	assert.Equal(t, "1", string(data))
}

func TestInit_IgnoredPackagesAreNotLinked(t *testing.T) {
	cfg := testConfig(t)
	manifest := &domain.Manifest{Name: "a", Version: "1.0.0", Ref: 0}
	seedCache(t, cfg, manifest, map[string]string{"package.json": `{"name": "a"}`})

	folder := filepath.Join(cfg.Cwd, "pakt_modules")
	resolver := mockResolver(t,
		[]*domain.Manifest{manifest},
		[]*domain.PackageReference{{Name: "a", Ignore: true}},
		map[string]*domain.Manifest{},
	)

	l := link.NewLinker(cfg, resolver, folder, nil)
	require.NoError(t, l.Init(context.Background(), nil, false))

	_, err := os.Stat(filepath.Join(folder, "a"))
	assert.True(t, os.IsNotExist(err))
}

func TestInit_TopLevelVersionClaimsPlainSlot(t *testing.T) {
	cfg := testConfig(t)
	older := &domain.Manifest{Name: "b", Version: "1.0.0", Ref: 0}
	newer := &domain.Manifest{Name: "b", Version: "2.0.0", Ref: 1}
	seedCache(t, cfg, older, map[string]string{"package.json": `{"version": "1.0.0"}`})
	seedCache(t, cfg, newer, map[string]string{"package.json": `{"version": "2.0.0"}`})

	folder := filepath.Join(cfg.Cwd, "pakt_modules")
	resolver := mockResolver(t,
		[]*domain.Manifest{older, newer},
		[]*domain.PackageReference{{Name: "b"}, {Name: "b"}},
		map[string]*domain.Manifest{"b@^2.0.0": newer},
	)

	l := link.NewLinker(cfg, resolver, folder, nil)
	require.NoError(t, l.Init(context.Background(), []string{"b@^2.0.0"}, false))

	data, err := os.ReadFile(filepath.Join(folder, "b", "package.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "2.0.0")

	_, err = os.Stat(filepath.Join(folder, "b-1.0.0"))
	assert.NoError(t, err)
}

func TestInit_LinkDuplicatesHardlinks(t *testing.T) {
	cfg := testConfig(t)
	manifest := &domain.Manifest{Name: "a", Version: "1.0.0", Ref: 0}
	seedCache(t, cfg, manifest, map[string]string{"package.json": `{"name": "a"}`})

	folder := filepath.Join(cfg.Cwd, "pakt_modules")
	resolver := mockResolver(t,
		[]*domain.Manifest{manifest},
		[]*domain.PackageReference{{Name: "a"}},
		map[string]*domain.Manifest{"a@^1.0.0": manifest},
	)

	l := link.NewLinker(cfg, resolver, folder, nil)
	require.NoError(t, l.Init(context.Background(), []string{"a@^1.0.0"}, true))

	cached, err := os.Stat(filepath.Join(fetch.CachePath(cfg, manifest), "package.json"))
	require.NoError(t, err)
	linked, err := os.Stat(filepath.Join(folder, "a", "package.json"))
	require.NoError(t, err)
	assert.True(t, os.SameFile(cached, linked))
}
