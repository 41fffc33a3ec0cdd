package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunLog(t *testing.T) {
	t.Run("lines are timestamp | level | message", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "logs", "hm_git.log")

		l, err := NewRunLog(path)
		require.NoError(t, err)
		l.Infof("Backing up royal repos...")
		l.Errorf("Error backing up: %s", "chancery")
		require.NoError(t, l.Close())

		raw, err := os.ReadFile(path)
		require.NoError(t, err)
		lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
		require.Len(t, lines, 2)

		parts := strings.Split(lines[0], Separator)
		require.Len(t, parts, 3)
		assert.Len(t, parts[0], len(TimeLayout))
		assert.Equal(t, "INFO", parts[1])
		assert.Equal(t, "Backing up royal repos...", parts[2])

		assert.True(t, strings.HasSuffix(lines[1], " | ERROR | Error backing up: chancery"))
	})

	t.Run("existing content is appended to, never truncated", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "hm_git.log")
		require.NoError(t, os.WriteFile(path, []byte("earlier line\n"), 0644))

		l, err := NewRunLog(path)
		require.NoError(t, err)
		l.Warnf("second")
		require.NoError(t, l.Close())

		raw, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(string(raw), "earlier line\n"))
		assert.Contains(t, string(raw), " | WARN | second")
	})
}
