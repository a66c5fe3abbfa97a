package server

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolvePath(t *testing.T) {
	root := "/srv/www"

	tests := []struct {
		name    string
		path    string
		want    string
		wantErr bool
	}{
		{"default document", "/", filepath.Join(root, "index.html"), false},
		{"plain file", "/a.txt", filepath.Join(root, "a.txt"), false},
		{"nested file", "/css/site.css", filepath.Join(root, "css", "site.css"), false},
		{"parent segment", "/../secret", "", true},
		{"nested parent segments", "/a/../../secret", "", true},
		{"trailing parent segment", "/a/..", "", true},
		{"dots inside a name are fine", "/notes..txt", filepath.Join(root, "notes..txt"), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := resolvePath(root, "index.html", tc.path)
			if tc.wantErr {
				assert.ErrorIs(t, err, errTraversal)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()

	t.Run("regular file", func(t *testing.T) {
		path := filepath.Join(dir, "f.txt")
		require.NoError(t, os.WriteFile(path, []byte("contents"), 0o644))

		data, err := loadFile(path)
		require.NoError(t, err)
		assert.Equal(t, []byte("contents"), data)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := loadFile(filepath.Join(dir, "absent.txt"))
		assert.ErrorIs(t, err, errNotFound)
	})

	t.Run("directory is not served", func(t *testing.T) {
		_, err := loadFile(dir)
		assert.ErrorIs(t, err, errNotFound)
	})
}
