package fetch

import (
	"context"
	"testing"

	"github.com/poiesic/charkeep/core"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newContentFs(t *testing.T, files map[string]string) afero.Fs {
	t.Helper()
	fsys := afero.NewMemMapFs()
	for name, content := range files {
		require.NoError(t, afero.WriteFile(fsys, name, []byte(content), 0o644))
	}
	return fsys
}

func TestLocal_Fetch(t *testing.T) {
	fsys := newContentFs(t, map[string]string{
		"spells/fireball.json": `{"name":"Fireball"}`,
	})
	local := NewLocal(fsys)
	ctx := context.Background()

	t.Run("existing file", func(t *testing.T) {
		data, err := local.Fetch(ctx, "spells/fireball.json")
		require.NoError(t, err)
		assert.Equal(t, `{"name":"Fireball"}`, string(data))
	})

	t.Run("leading slash", func(t *testing.T) {
		data, err := local.Fetch(ctx, "/spells/fireball.json")
		require.NoError(t, err)
		assert.NotEmpty(t, data)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := local.Fetch(ctx, "spells/shield.json")
		assert.ErrorIs(t, err, core.ErrNotFound)
	})

	t.Run("cancelled context", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, err := local.Fetch(cctx, "spells/fireball.json")
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestLocalDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, afero.WriteFile(afero.NewOsFs(), dir+"/index.json", []byte(`{}`), 0o644))

	data, err := NewLocalDir(dir).Fetch(context.Background(), "index.json")
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(data))
}

func TestDocument(t *testing.T) {
	fsys := newContentFs(t, map[string]string{
		"races/elf.json":    "{\n  \"name\": \"Elf\",\n  \"speed\": 30\n}",
		"races/broken.json": `{"name": "Orc"`,
	})
	local := NewLocal(fsys)
	ctx := context.Background()

	t.Run("valid JSON is compacted", func(t *testing.T) {
		doc, err := Document(ctx, local, "races/elf.json")
		require.NoError(t, err)
		assert.Equal(t, `{"name":"Elf","speed":30}`, string(doc))
		assert.Equal(t, "Elf", doc.Name())
	})

	t.Run("malformed JSON", func(t *testing.T) {
		_, err := Document(ctx, local, "races/broken.json")
		assert.ErrorIs(t, err, core.ErrParse)
	})

	t.Run("missing propagates not found", func(t *testing.T) {
		_, err := Document(ctx, local, "races/dwarf.json")
		assert.ErrorIs(t, err, core.ErrNotFound)
	})
}

func TestFetcherFunc(t *testing.T) {
	var got string
	f := FetcherFunc(func(ctx context.Context, path string) ([]byte, error) {
		got = path
		return []byte(`{"name":"Shield"}`), nil
	})

	doc, err := Document(context.Background(), f, "spells/shield")
	require.NoError(t, err)
	assert.Equal(t, "spells/shield", got)
	assert.Equal(t, "Shield", doc.Name())
}
