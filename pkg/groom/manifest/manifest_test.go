package manifest

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

const samplePackage = `{
  "name": "a",
  "displayName": "B",
  "description": "d",
  "author": {"name": "x", "url": "u"},
  "license": "MIT",
  "version": "1.0",
  "dependencies": {"left-pad": "^1.3.0"}
}`

func setupTestSync(t *testing.T, files map[string]string) (*Synchronizer, afero.Fs) {
	t.Helper()
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/ext", 0o755))
	for name, content := range files {
		require.NoError(t, afero.WriteFile(fs, filepath.Join("/ext", name), []byte(content), 0o644))
	}
	return New(DefaultPaths("/ext"), fs), fs
}

func readFile(t *testing.T, fs afero.Fs, name string) string {
	t.Helper()
	data, err := afero.ReadFile(fs, filepath.Join("/ext", name))
	require.NoError(t, err)
	return string(data)
}

func TestBuild(t *testing.T) {
	out, err := Build([]byte(samplePackage))
	require.NoError(t, err)

	want := `{
  "id": "a",
  "name": "B",
  "description": "d",
  "author": "x",
  "authorUrl": "u",
  "license": "MIT",
  "version": "1.0"
}
`
	assert.Equal(t, want, string(out))
}

func TestBuild_OmitsAbsentFields(t *testing.T) {
	out, err := Build([]byte(`{"name": "solo", "version": "2.0.0"}`))
	require.NoError(t, err)

	assert.Equal(t, "solo", gjson.GetBytes(out, "id").String())
	assert.Equal(t, "2.0.0", gjson.GetBytes(out, "version").String())
	assert.False(t, gjson.GetBytes(out, "author").Exists())
	assert.False(t, gjson.GetBytes(out, "authorUrl").Exists())
}

func TestCompare(t *testing.T) {
	tests := []struct {
		name     string
		pkg      string
		manifest string
		want     []string
	}{
		{
			name:     "empty manifest",
			pkg:      `{"name":"a","license":"MIT"}`,
			manifest: `{}`,
			want:     []string{"id", "license"},
		},
		{
			name:     "equal",
			pkg:      `{"name":"a","author":{"name":"x"}}`,
			manifest: `{"id":"a","author":"x","extra":true}`,
			want:     nil,
		},
		{
			name:     "both absent",
			pkg:      `{}`,
			manifest: `{}`,
			want:     nil,
		},
		{
			name:     "type mismatch",
			pkg:      `{"version":"1"}`,
			manifest: `{"version":1}`,
			want:     []string{"version"},
		},
		{
			name:     "value mismatch",
			pkg:      `{"displayName":"New"}`,
			manifest: `{"name":"Old"}`,
			want:     []string{"name"},
		},
		{
			name:     "present only in manifest",
			pkg:      `{}`,
			manifest: `{"license":"MIT"}`,
			want:     []string{"license"},
		},
		{
			name:     "structured values compare by content",
			pkg:      `{"description":{"en": "hi", "fr": "salut"}}`,
			manifest: `{"description":{"en":"hi","fr":"salut"}}`,
			want:     nil,
		},
		{
			name:     "numbers compare by value",
			pkg:      `{"version":1.0}`,
			manifest: `{"version":1}`,
			want:     nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diffs := Compare([]byte(tt.pkg), []byte(tt.manifest))
			var got []string
			for _, d := range diffs {
				got = append(got, d.Field)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReconcile_InvalidJSON(t *testing.T) {
	_, _, err := Reconcile([]byte(`{"name":`), []byte(`{}`))
	assert.ErrorIs(t, err, ErrInvalidJSON)

	_, _, err = Reconcile([]byte(`{}`), []byte(`not json`))
	assert.ErrorIs(t, err, ErrInvalidJSON)
}

func TestSetup_CreatesMissingFiles(t *testing.T) {
	s, fs := setupTestSync(t, nil)

	created, err := s.Setup(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"/ext/.env", "/ext/manifest.json"}, created)
	assert.Equal(t, EnvTemplate, readFile(t, fs, ".env"))
	assert.Equal(t, "{}", readFile(t, fs, "manifest.json"))
}

func TestSetup_LeavesExistingFilesUntouched(t *testing.T) {
	s, fs := setupTestSync(t, map[string]string{
		".env":          "API_KEY=secret\n",
		"manifest.json": `{"id":"kept"}`,
	})

	created, err := s.Setup(context.Background())
	require.NoError(t, err)

	assert.Empty(t, created)
	assert.Equal(t, "API_KEY=secret\n", readFile(t, fs, ".env"))
	assert.Equal(t, `{"id":"kept"}`, readFile(t, fs, "manifest.json"))
}

func TestRun_SyncsEmptyManifest(t *testing.T) {
	s, fs := setupTestSync(t, map[string]string{
		"package.json": samplePackage,
	})

	outcome, err := s.Run(context.Background(), true)
	require.NoError(t, err)

	assert.Equal(t, ActionRewritten, outcome.Action)
	assert.Len(t, outcome.Diffs, 7)
	assert.Equal(t, []string{"/ext/.env", "/ext/manifest.json"}, outcome.Created)
	assert.Equal(t, "/ext/manifest-backup.json", outcome.BackupPath)

	manifest := readFile(t, fs, "manifest.json")
	assert.JSONEq(t, `{"id":"a","name":"B","description":"d","author":"x","authorUrl":"u","license":"MIT","version":"1.0"}`, manifest)
	assert.Equal(t, "{}", readFile(t, fs, "manifest-backup.json"))

	exists, err := afero.Exists(fs, "/ext/manifest.json.tmp")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestSync_NoWriteWhenInSync(t *testing.T) {
	synced := `{"id":"a","name":"B","description":"d","author":"x","authorUrl":"u","license":"MIT","version":"1.0","publisher":"me"}`
	s, fs := setupTestSync(t, map[string]string{
		"package.json":  samplePackage,
		"manifest.json": synced,
	})

	outcome, err := s.Sync(context.Background())
	require.NoError(t, err)

	assert.Equal(t, ActionInSync, outcome.Action)
	assert.Empty(t, outcome.Diffs)
	assert.Equal(t, synced, readFile(t, fs, "manifest.json"))

	exists, err := afero.Exists(fs, "/ext/manifest-backup.json")
	require.NoError(t, err)
	assert.False(t, exists, "no backup should be written")
}

func TestSync_Idempotent(t *testing.T) {
	s, fs := setupTestSync(t, map[string]string{
		"package.json":  samplePackage,
		"manifest.json": `{"id":"old","publisher":"dropped"}`,
	})

	first, err := s.Sync(context.Background())
	require.NoError(t, err)
	assert.Equal(t, ActionRewritten, first.Action)
	assert.Equal(t, `{"id":"old","publisher":"dropped"}`, readFile(t, fs, "manifest-backup.json"))

	afterFirst := readFile(t, fs, "manifest.json")
	assert.NotContains(t, afterFirst, "publisher")

	second, err := s.Sync(context.Background())
	require.NoError(t, err)
	assert.Equal(t, ActionInSync, second.Action)
	assert.Equal(t, afterFirst, readFile(t, fs, "manifest.json"))
	assert.Equal(t, `{"id":"old","publisher":"dropped"}`, readFile(t, fs, "manifest-backup.json"))
}

func TestSync_BackupOverwritesPrevious(t *testing.T) {
	s, fs := setupTestSync(t, map[string]string{
		"package.json":         samplePackage,
		"manifest.json":        `{"id":"stale"}`,
		"manifest-backup.json": "older backup",
	})

	_, err := s.Sync(context.Background())
	require.NoError(t, err)
	assert.Equal(t, `{"id":"stale"}`, readFile(t, fs, "manifest-backup.json"))
}

func TestSync_Errors(t *testing.T) {
	t.Run("missing package", func(t *testing.T) {
		s, _ := setupTestSync(t, map[string]string{"manifest.json": "{}"})
		_, err := s.Sync(context.Background())
		require.Error(t, err)
		assert.True(t, errors.Is(err, os.ErrNotExist))
	})

	t.Run("invalid package", func(t *testing.T) {
		s, _ := setupTestSync(t, map[string]string{
			"package.json":  "{",
			"manifest.json": "{}",
		})
		_, err := s.Sync(context.Background())
		require.ErrorIs(t, err, ErrInvalidJSON)
		assert.Contains(t, err.Error(), "/ext/package.json")
	})

	t.Run("invalid manifest", func(t *testing.T) {
		s, fs := setupTestSync(t, map[string]string{
			"package.json":  samplePackage,
			"manifest.json": "{,}",
		})
		_, err := s.Sync(context.Background())
		require.ErrorIs(t, err, ErrInvalidJSON)
		assert.Equal(t, "{,}", readFile(t, fs, "manifest.json"))
	})

	t.Run("cancelled", func(t *testing.T) {
		s, _ := setupTestSync(t, nil)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := s.Run(ctx, true)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestRun_SetupOnly(t *testing.T) {
	s, fs := setupTestSync(t, map[string]string{"package.json": samplePackage})

	outcome, err := s.Run(context.Background(), false)
	require.NoError(t, err)

	assert.Equal(t, ActionNone, outcome.Action)
	assert.Equal(t, "{}", readFile(t, fs, "manifest.json"))
}

func TestPaths(t *testing.T) {
	s := New(Paths{Dir: "/work", Manifest: "ext/manifest.json", Backup: "/backups/m.json"}, afero.NewMemMapFs())
	p := s.Paths()

	assert.Equal(t, "/work/.env", p.EnvFilePath())
	assert.Equal(t, "/work/ext/manifest.json", p.ManifestPath())
	assert.Equal(t, "/work/package.json", p.PackagePath())
	assert.Equal(t, "/backups/m.json", p.BackupPath())

	assert.Equal(t, "manifest.json", New(Paths{}, nil).Paths().ManifestPath())
}

func TestAction(t *testing.T) {
	assert.Equal(t, "Manifest is synced with package, keep everything as it was.", ActionInSync.Message())
	assert.Equal(t, "Manifest is not synced with package's information, rewriting it.", ActionRewritten.Message())

	text, err := ActionRewritten.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "rewritten", string(text))
}
