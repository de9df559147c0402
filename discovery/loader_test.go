package discovery

import (
	"context"
	"log/slog"
	"sync/atomic"
	"testing"

	"github.com/poiesic/charkeep/core"
	"github.com/poiesic/charkeep/fetch"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLoader(t *testing.T, files map[string]string, opts ...Option) *Loader {
	t.Helper()
	fsys := afero.NewMemMapFs()
	for name, content := range files {
		require.NoError(t, afero.WriteFile(fsys, name, []byte(content), 0o644))
	}
	loader, err := NewLoader(fetch.NewLocal(fsys), opts...)
	require.NoError(t, err)
	t.Cleanup(loader.Release)
	return loader
}

func TestNewLoader(t *testing.T) {
	content := fetch.NewLocal(afero.NewMemMapFs())

	t.Run("valid configuration", func(t *testing.T) {
		loader, err := NewLoader(content)
		require.NoError(t, err)
		defer loader.Release()
		assert.NotNil(t, loader)
	})

	t.Run("with options", func(t *testing.T) {
		loader, err := NewLoader(content, WithPoolSize(2), WithLogger(slog.Default()))
		require.NoError(t, err)
		defer loader.Release()
		assert.Equal(t, 2, loader.pool.Cap())
	})

	t.Run("nil logger falls back to default", func(t *testing.T) {
		loader, err := NewLoader(content, WithLogger(nil))
		require.NoError(t, err)
		defer loader.Release()
		assert.NotNil(t, loader.logger)
	})

	t.Run("nil fetcher", func(t *testing.T) {
		_, err := NewLoader(nil)
		assert.Equal(t, ErrFetcherRequired, err)
	})
}

func TestBuildIndex_Empty(t *testing.T) {
	loader := newLoader(t, nil)

	for _, category := range core.Categories {
		assert.Empty(t, loader.BuildIndex(context.Background(), category))
	}
}

func TestBuildIndex_FailingFetcherNeverPanics(t *testing.T) {
	var calls atomic.Int64
	failing := fetch.FetcherFunc(func(ctx context.Context, path string) ([]byte, error) {
		calls.Add(1)
		return nil, core.ErrUnreachable
	})
	loader, err := NewLoader(failing)
	require.NoError(t, err)
	defer loader.Release()

	entries := loader.BuildIndex(context.Background(), core.CategorySpells)
	assert.Empty(t, entries)
	// index.json plus every candidate
	assert.Equal(t, int64(1+len(Candidates(core.CategorySpells))), calls.Load())
}

func TestBuildIndex_StaticIndex(t *testing.T) {
	loader := newLoader(t, map[string]string{
		"index.json": `{
			"spells": [
				{"name": "Greater Fireball", "filename": "greater-fireball.json", "description": "Bigger boom"},
				{"name": "Nameless", "filename": "nameless.json"},
				{"name": "Missing", "filename": "missing.json"},
				{"name": "Broken", "filename": "broken.json"}
			]
		}`,
		"spells/greater-fireball.json": `{"name": "Greater Fireball of Doom", "level": 5}`,
		"spells/nameless.json":         `{"level": 1}`,
		"spells/broken.json":           `{"name": `,
	})

	entries := loader.BuildIndex(context.Background(), core.CategorySpells)
	require.Len(t, entries, 2)

	assert.Equal(t, core.IndexEntry{
		Name:        "Greater Fireball of Doom",
		Filename:    "greater-fireball.json",
		Description: "Bigger boom",
		Source:      core.SourceIndex,
	}, entries[0])
	assert.Equal(t, core.IndexEntry{
		Name:        "Nameless",
		Filename:    "nameless.json",
		Description: "Custom spell",
		Source:      core.SourceIndex,
	}, entries[1])
}

func TestBuildIndex_AutoDetected(t *testing.T) {
	loader := newLoader(t, map[string]string{
		"classes/bloodhunter.json":    `{"name": "Blood Hunter"}`,
		"classes/custom-bard.json":    `{"name": "College of Jest"}`,
		"classes/wizard.json":         `{"level": 1}`,
		"classes/monk.json":           `not json`,
		"classes/unlisted-class.json": `{"name": "Never Probed"}`,
	})

	entries := loader.BuildIndex(context.Background(), core.CategoryClasses)
	require.Len(t, entries, 2)

	assert.Equal(t, core.IndexEntry{
		Name:        "Blood Hunter",
		Filename:    "bloodhunter.json",
		Description: "Auto-detected custom class",
		Source:      core.SourceAutoDetected,
	}, entries[0])
	assert.Equal(t, "College of Jest", entries[1].Name)
	assert.Equal(t, "custom-bard.json", entries[1].Filename)
}

func TestBuildIndex_IndexedFilesAreNotProbedAgain(t *testing.T) {
	loader := newLoader(t, map[string]string{
		"index.json":        `{"races": [{"name": "Elf", "filename": "elf.json"}]}`,
		"races/elf.json":    `{"name": "Elf"}`,
		"races/tabaxi.json": `{"name": "Tabaxi"}`,
	})

	entries := loader.BuildIndex(context.Background(), core.CategoryRaces)
	require.Len(t, entries, 2)
	assert.Equal(t, core.SourceIndex, entries[0].Source)
	assert.Equal(t, "elf.json", entries[0].Filename)
	assert.Equal(t, core.SourceAutoDetected, entries[1].Source)
	assert.Equal(t, "tabaxi.json", entries[1].Filename)
}

// The same name reachable through two filenames is reported twice.
// This is a known limitation of probing, not something to collapse.
func TestBuildIndex_DuplicateNamesAcrossSourcesAreKept(t *testing.T) {
	loader := newLoader(t, map[string]string{
		"index.json":                  `{"spells": [{"name": "Fireball", "filename": "fireball-v2.json"}]}`,
		"spells/fireball-v2.json":     `{"name": "Fireball"}`,
		"spells/fireball.json":        `{"name": "Fireball"}`,
		"spells/homebrew-shield.json": `{"name": "Shield"}`,
		"spells/shield.json":          `{"name": "Shield"}`,
	})

	entries := loader.BuildIndex(context.Background(), core.CategorySpells)
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name
	}
	assert.Equal(t, []string{"Fireball", "Fireball", "Shield", "Shield"}, names)
}

func TestBuildIndex_MalformedIndex(t *testing.T) {
	t.Run("not JSON", func(t *testing.T) {
		loader := newLoader(t, map[string]string{
			"index.json":      `{{{`,
			"races/elf.json": `{"name": "Elf"}`,
		})
		entries := loader.BuildIndex(context.Background(), core.CategoryRaces)
		require.Len(t, entries, 1)
		assert.Equal(t, core.SourceAutoDetected, entries[0].Source)
	})

	t.Run("malformed section only empties that category", func(t *testing.T) {
		loader := newLoader(t, map[string]string{
			"index.json":          `{"spells": "oops", "races": [{"name": "Owlin", "filename": "owlin.json"}]}`,
			"races/owlin.json":    `{"name": "Owlin"}`,
			"spells/decoy.json":   `{"name": "Decoy"}`,
		})
		assert.Empty(t, loader.BuildIndex(context.Background(), core.CategorySpells))

		races := loader.BuildIndex(context.Background(), core.CategoryRaces)
		require.Len(t, races, 1)
		assert.Equal(t, "Owlin", races[0].Name)
	})

	t.Run("array at top level", func(t *testing.T) {
		loader := newLoader(t, map[string]string{"index.json": `[]`})
		assert.Empty(t, loader.BuildIndex(context.Background(), core.CategorySpells))
	})
}

func TestBuildAll(t *testing.T) {
	loader := newLoader(t, map[string]string{
		"index.json":               `{"backgrounds": [{"name": "Chef", "filename": "chef.json"}]}`,
		"backgrounds/chef.json":    `{"name": "Chef"}`,
		"classes/artificer.json":   `{"name": "Artificer"}`,
		"spells/cure_wounds.json":  `{"name": "Cure Wounds"}`,
		"spells/my-fireball.json":  `{"name": "My Fireball"}`,
	})

	idx := loader.BuildAll(context.Background())

	require.Len(t, idx, 4)
	assert.Len(t, idx[core.CategoryBackgrounds], 1)
	assert.Len(t, idx[core.CategoryClasses], 1)
	assert.NotNil(t, idx[core.CategoryRaces])
	assert.Empty(t, idx[core.CategoryRaces])
	assert.Len(t, idx[core.CategorySpells], 2)
	assert.Equal(t, 4, idx.Total())
}

func TestBuildAll_NothingFound(t *testing.T) {
	loader := newLoader(t, nil, WithPoolSize(1))

	idx := loader.BuildAll(context.Background())
	require.Len(t, idx, 4)
	for _, category := range core.Categories {
		assert.Empty(t, idx[category])
	}
	assert.Equal(t, 0, idx.Total())
}

func TestBuildAll_AfterRelease(t *testing.T) {
	loader, err := NewLoader(fetch.NewLocal(afero.NewMemMapFs()))
	require.NoError(t, err)
	loader.Release()

	// Scans run inline once the pool is gone.
	idx := loader.BuildAll(context.Background())
	assert.Len(t, idx, 4)
}
