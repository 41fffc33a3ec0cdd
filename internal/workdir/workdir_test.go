package workdir

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Not parallel: these tests move the process working directory.

func getwd(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	// TempDir may sit behind a symlink (macOS /var -> /private/var).
	resolved, err := filepath.EvalSymlinks(wd)
	require.NoError(t, err)
	return resolved
}

func TestRun(t *testing.T) {
	start := getwd(t)
	target, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)

	t.Run("fn runs inside dir and cwd is restored", func(t *testing.T) {
		var inside string
		err := Run(target, func() error {
			inside = getwd(t)
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, target, inside)
		assert.Equal(t, start, getwd(t))
	})

	t.Run("fn error is returned and cwd is restored", func(t *testing.T) {
		boom := errors.New("git fetch failed")
		err := Run(target, func() error { return boom })
		assert.ErrorIs(t, err, boom)
		assert.Equal(t, start, getwd(t))
	})

	t.Run("panic inside fn still restores cwd", func(t *testing.T) {
		func() {
			defer func() {
				assert.Equal(t, "kaboom", recover())
			}()
			_ = Run(target, func() error { panic("kaboom") })
		}()
		assert.Equal(t, start, getwd(t))
	})

	t.Run("nested failures unwind to the original directory", func(t *testing.T) {
		inner := filepath.Join(target, "inner")
		require.NoError(t, os.Mkdir(inner, 0755))

		err := Run(target, func() error {
			return Run("inner", func() error {
				assert.Equal(t, inner, getwd(t))
				return errors.New("pull failed")
			})
		})
		assert.Error(t, err)
		assert.Equal(t, start, getwd(t))
	})

	t.Run("missing dir fails without moving", func(t *testing.T) {
		called := false
		err := Run(filepath.Join(target, "does-not-exist"), func() error {
			called = true
			return nil
		})
		assert.Error(t, err)
		assert.False(t, called)
		assert.Equal(t, start, getwd(t))
	})
}
