package runner

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newTestExec(testRun, showOutput bool) (*Exec, *bytes.Buffer) {
	var out bytes.Buffer
	e := NewExec(testRun, showOutput)
	e.stdout = &out
	e.stderr = &bytes.Buffer{}
	return e, &out
}

func TestExec_Run(t *testing.T) {
	ctx := context.Background()

	t.Run("zero exit succeeds", func(t *testing.T) {
		e, _ := newTestExec(false, true)
		res := e.Run(ctx, "true")
		assert.Equal(t, Succeeded, res.Status)
		assert.True(t, res.OK())
		assert.NoError(t, res.Err)
	})

	t.Run("nonzero exit is reported with its code, not raised", func(t *testing.T) {
		e, _ := newTestExec(false, true)
		res := e.Run(ctx, "sh", "-c", "exit 3")
		assert.Equal(t, FailedNonzero, res.Status)
		assert.Equal(t, 3, res.ExitCode)
		assert.False(t, res.OK())
	})

	t.Run("missing binary is distinguished from a refusal", func(t *testing.T) {
		e, _ := newTestExec(false, true)
		res := e.Run(ctx, "hmss-no-such-binary-anywhere")
		assert.Equal(t, FailedToStart, res.Status)
		assert.Error(t, res.Err)
		assert.False(t, res.OK())
	})

	t.Run("test run never executes", func(t *testing.T) {
		e, out := newTestExec(true, true)
		res := e.Run(ctx, "sh", "-c", "echo should-not-appear; exit 1")
		assert.True(t, res.OK())
		assert.Empty(t, out.String())
	})

	t.Run("stdout is passed through when shown", func(t *testing.T) {
		e, out := newTestExec(false, true)
		res := e.Run(ctx, "echo", "hello")
		assert.True(t, res.OK())
		assert.Equal(t, "hello\n", out.String())
	})

	t.Run("stdout is suppressed when hidden", func(t *testing.T) {
		e, out := newTestExec(false, false)
		res := e.Run(ctx, "echo", "hello")
		assert.True(t, res.OK())
		assert.Empty(t, out.String())
	})
}

func TestExec_Exists(t *testing.T) {
	e := NewExec(false, false)
	assert.True(t, e.Exists("sh"))
	assert.False(t, e.Exists("hmss-no-such-binary-anywhere"))
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "succeeded", Succeeded.String())
	assert.Equal(t, "failed-nonzero", Nonzero(2).Status.String())
	assert.Equal(t, "failed-to-start", FailedToStart.String())
}
