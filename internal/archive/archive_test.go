package archive

import (
	"archive/tar"
	"archive/zip"
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pack = map[string]string{
	"default.jpg":            "jpeg bytes",
	"wallpaper_t7.png":       "png bytes",
	"extra/wallpaper_t8.png": "more png bytes",
}

func writeTar(t *testing.T, w io.Writer, files map[string]string) {
	t.Helper()
	tw := tar.NewWriter(w)
	for name, body := range files {
		require.NoError(t, tw.WriteHeader(&tar.Header{Name: name, Mode: 0644, Size: int64(len(body)), Typeflag: tar.TypeReg}))
		_, err := tw.Write([]byte(body))
		require.NoError(t, err)
	}
	require.NoError(t, tw.Close())
}

func makeTar(t *testing.T, path string, files map[string]string) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	writeTar(t, f, files)
}

func makeTarGz(t *testing.T, path string, files map[string]string) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	gw := gzip.NewWriter(f)
	writeTar(t, gw, files)
	require.NoError(t, gw.Close())
}

func makeZip(t *testing.T, path string, files map[string]string) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	zw := zip.NewWriter(f)
	for name, body := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(body))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
}

func assertUnpacked(t *testing.T, dest string, written []string) {
	t.Helper()
	var want []string
	for name, body := range pack {
		p := filepath.Join(dest, name)
		want = append(want, p)
		raw, err := os.ReadFile(p)
		require.NoError(t, err)
		assert.Equal(t, body, string(raw))
	}
	sort.Strings(want)
	sort.Strings(written)
	assert.Equal(t, want, written)
}

func TestExtract(t *testing.T) {
	cases := []struct {
		name string
		make func(*testing.T, string, map[string]string)
	}{
		{"wallpaper.tar", makeTar},
		{"wallpaper.tar.gz", makeTarGz},
		{"wallpaper.tgz", makeTarGz},
		{"wallpaper.zip", makeZip},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			src := filepath.Join(dir, tc.name)
			tc.make(t, src, pack)
			dest := filepath.Join(dir, "wallpaper")

			written, err := Extract(src, dest)
			require.NoError(t, err)
			assertUnpacked(t, dest, written)
		})
	}
}

func TestExtract_RejectsEscapingEntries(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "evil.zip")
	makeZip(t, src, map[string]string{"../outside.txt": "nope"})

	_, err := Extract(src, filepath.Join(dir, "dest"))
	assert.Error(t, err)
	assert.NoFileExists(t, filepath.Join(dir, "outside.txt"))
}

func TestExtract_Unsupported(t *testing.T) {
	_, err := Extract("/tmp/wallpaper.rar", t.TempDir())
	assert.ErrorContains(t, err, "unsupported archive format")
}

func TestSupported(t *testing.T) {
	assert.True(t, Supported("walls.7z"))
	assert.True(t, Supported("walls.tar.xz"))
	assert.True(t, Supported("walls.tar.bz2"))
	assert.False(t, Supported("walls.rar"))
}
