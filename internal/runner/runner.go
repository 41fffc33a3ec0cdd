//go:generate mockgen -source=$GOFILE -destination=runner_mock.go -package=$GOPACKAGE

// Package runner invokes external commands and reports how they ended.
package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"hmss/internal/logger"
)

// Status is the outcome of a command invocation.
type Status int

const (
	// Succeeded means the process ran and exited zero.
	Succeeded Status = iota
	// FailedNonzero means the process ran and exited with a nonzero code.
	FailedNonzero
	// FailedToStart means the process never ran (binary missing, permission denied, ...).
	FailedToStart
)

func (s Status) String() string {
	switch s {
	case Succeeded:
		return "succeeded"
	case FailedNonzero:
		return "failed-nonzero"
	case FailedToStart:
		return "failed-to-start"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Result describes one finished invocation.
type Result struct {
	Status   Status
	ExitCode int   // meaningful for FailedNonzero
	Err      error // nil on success
}

// OK collapses the result to the success flag used by installer steps.
func (r Result) OK() bool { return r.Status == Succeeded }

// Success is the result of a command that exited zero.
func Success() Result { return Result{Status: Succeeded} }

// Nonzero is the result of a command that exited with code.
func Nonzero(code int) Result {
	return Result{Status: FailedNonzero, ExitCode: code, Err: fmt.Errorf("exit status %d", code)}
}

// NotStarted is the result of a command that could not be started.
func NotStarted(err error) Result {
	return Result{Status: FailedToStart, ExitCode: -1, Err: err}
}

// Runner runs external commands.
type Runner interface {
	// Run executes name with args as a child process in the current working
	// directory and blocks until it exits. It never returns an error for a
	// nonzero exit; the outcome is carried by the Result.
	Run(ctx context.Context, name string, args ...string) Result

	// Exists reports whether command can be found on PATH.
	Exists(command string) bool
}

// Exec is the Runner backed by os/exec.
type Exec struct {
	// TestRun reports success for every command without executing anything.
	TestRun bool
	// ShowOutput passes the child's stdout through; otherwise it is discarded.
	// Stderr always passes through.
	ShowOutput bool

	stdout io.Writer
	stderr io.Writer
}

// NewExec returns an Exec wired to the process's stdout and stderr.
func NewExec(testRun, showOutput bool) *Exec {
	return &Exec{
		TestRun:    testRun,
		ShowOutput: showOutput,
		stdout:     os.Stdout,
		stderr:     os.Stderr,
	}
}

func (e *Exec) Run(ctx context.Context, name string, args ...string) Result {
	line := strings.Join(append([]string{name}, args...), " ")
	if e.TestRun {
		logger.Debug("[DEBUG] Test run, not executing: %s\n", line)
		return Success()
	}
	logger.Debug("[DEBUG] Running command: %s\n", line)

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = os.Stdin
	cmd.Stderr = e.stderr
	if e.ShowOutput {
		cmd.Stdout = e.stdout
	} else {
		cmd.Stdout = io.Discard
	}

	err := cmd.Run()
	if err == nil {
		return Success()
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		logger.Debug("[DEBUG] Command exited non-zero: %s -> %d\n", line, exitErr.ExitCode())
		return Result{Status: FailedNonzero, ExitCode: exitErr.ExitCode(), Err: err}
	}
	logger.Debug("[DEBUG] Command failed to start: %s: %v\n", line, err)
	return NotStarted(err)
}

func (e *Exec) Exists(command string) bool {
	_, err := exec.LookPath(command)
	return err == nil
}
