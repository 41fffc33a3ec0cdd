package installer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/segmentio/ksuid"

	"hmss/internal/config"
	"hmss/internal/download"
	"hmss/internal/logger"
	"hmss/internal/runner"
)

// State is where an Installer run has got to.
type State int

const (
	NotStarted State = iota
	RunningEssentials
	RunningNonEssentials
	Aborted
	Completed
)

func (s State) String() string {
	switch s {
	case NotStarted:
		return "not started"
	case RunningEssentials:
		return "running essentials"
	case RunningNonEssentials:
		return "running non-essentials"
	case Aborted:
		return "aborted"
	case Completed:
		return "completed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Verdict is the outcome reported at the end of a run.
type Verdict int

const (
	// Failed means an essential step failed and the run was aborted.
	Failed Verdict = iota
	// Passed means every essential step succeeded but some non-essential step failed.
	Passed
	// FlyingColours means every step that ran succeeded.
	FlyingColours
)

func (v Verdict) String() string {
	switch v {
	case Failed:
		return "failed"
	case Passed:
		return "passed"
	case FlyingColours:
		return "passed with flying colours"
	default:
		return fmt.Sprintf("Verdict(%d)", int(v))
	}
}

// Step is one named operation of the install.
type Step struct {
	Label  string // imperative, recorded in the failure log
	Gerund string // shown while the step runs
	Run    func(ctx context.Context) bool
}

// Installer drives the step catalog against a configuration.
// An Installer performs a single run; construct a new one for each run.
type Installer struct {
	cfg     *config.Config
	runner  runner.Runner
	log     *logger.RunLog
	fetcher download.Fetcher
	token   TokenSource

	minimal    bool
	testRun    bool
	showOutput bool
	bashrcPath string
	scratchDir string

	essentials    []Step
	nonEssentials []Step

	state      State
	failureLog []string
}

// Option configures an Installer.
type Option func(*Installer)

// WithMinimal stops the run after the essential steps.
func WithMinimal(minimal bool) Option {
	return func(i *Installer) { i.minimal = minimal }
}

// WithTestRun skips side effects that do not go through the runner:
// downloads, credential files, .bashrc edits and archive unpacking.
func WithTestRun(testRun bool) Option {
	return func(i *Installer) { i.testRun = testRun }
}

// WithShowOutput lets package manager output through to the terminal.
func WithShowOutput(show bool) Option {
	return func(i *Installer) { i.showOutput = show }
}

// WithFetcher replaces the HTTP client used for downloads.
func WithFetcher(f download.Fetcher) Option {
	return func(i *Installer) { i.fetcher = f }
}

// WithTokenSource replaces where the git personal access token comes from.
func WithTokenSource(ts TokenSource) Option {
	return func(i *Installer) { i.token = ts }
}

// WithBashrc sets the shell rc file that gets the backup hook.
func WithBashrc(path string) Option {
	return func(i *Installer) { i.bashrcPath = path }
}

// WithScratchDir sets where rendered scripts are written.
func WithScratchDir(dir string) Option {
	return func(i *Installer) { i.scratchDir = dir }
}

// WithSteps replaces the step catalog.
func WithSteps(essentials, nonEssentials []Step) Option {
	return func(i *Installer) {
		i.essentials = essentials
		i.nonEssentials = nonEssentials
	}
}

// New builds an Installer. The run log is owned by the caller.
func New(cfg *config.Config, r runner.Runner, log *logger.RunLog, opts ...Option) *Installer {
	home, _ := os.UserHomeDir()
	i := &Installer{
		cfg:        cfg,
		runner:     r,
		log:        log,
		fetcher:    download.NewClient(),
		token:      DefaultTokenSource(cfg.PathToPAT),
		showOutput: true,
		bashrcPath: filepath.Join(home, ".bashrc"),
		scratchDir: os.TempDir(),
	}
	i.essentials = i.makeEssentials()
	i.nonEssentials = i.makeNonEssentials()
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// State returns the current position in the run.
func (i *Installer) State() State { return i.state }

// FailureLog returns the labels of the steps that failed, in order.
func (i *Installer) FailureLog() []string {
	return append([]string(nil), i.failureLog...)
}

// Run executes the catalog and returns the verdict.
//
// Essential steps run in order and the first failure aborts the run.
// In minimal mode the run ends after the essentials. Otherwise every
// non-essential step runs and each failure is recorded.
func (i *Installer) Run(ctx context.Context) Verdict {
	runID := ksuid.New().String()
	logger.Info("[INFO] Running His Majesty's Software Installer...\n")
	i.log.Infof("Installer run %s started (platform %s, minimal %t, test run %t)", runID, i.cfg.ThisPlatform, i.minimal, i.testRun)

	i.getSudo(ctx)

	i.state = RunningEssentials
	if !i.runEssentials(ctx) {
		i.state = Aborted
		return i.finish(runID, Failed)
	}
	if i.minimal {
		i.state = Completed
		return i.finish(runID, FlyingColours)
	}

	i.state = RunningNonEssentials
	verdict := FlyingColours
	if !i.runNonEssentials(ctx) {
		verdict = Passed
	}
	i.state = Completed
	return i.finish(runID, verdict)
}

func (i *Installer) runEssentials(ctx context.Context) bool {
	for _, step := range i.essentials {
		logger.Info("[INFO] %s...\n", step.Gerund)
		if !step.Run(ctx) {
			i.fail(step.Label)
			return false
		}
	}
	return true
}

func (i *Installer) runNonEssentials(ctx context.Context) bool {
	result := true
	for _, step := range i.nonEssentials {
		logger.Info("[INFO] %s...\n", step.Gerund)
		if !step.Run(ctx) {
			i.fail(step.Label)
			result = false
		}
	}
	return result
}

func (i *Installer) fail(label string) {
	i.failureLog = append(i.failureLog, label)
	logger.Error("[ERROR] %s failed\n", label)
	i.log.Errorf("Step failed: %s", label)
}

// getSudo asks for superuser privileges up front so later steps do not prompt mid-run.
func (i *Installer) getSudo(ctx context.Context) {
	logger.Info("[INFO] I'm going to need superuser privileges for this...\n")
	if res := i.runner.Run(ctx, "sudo", "echo", "Superuser privileges: activate!"); !res.OK() {
		logger.Warn("[WARN] Could not obtain superuser privileges (%s); steps needing sudo will fail\n", res.Status)
	}
}

func (i *Installer) finish(runID string, v Verdict) Verdict {
	switch v {
	case FlyingColours:
		logger.Info("[INFO] Installation PASSED with flying colours!\n")
	case Passed:
		logger.Warn("[WARN] Installation PASSED but with non-essential failures.\n")
	default:
		logger.Error("[ERROR] Installation FAILED.\n")
	}
	if v != FlyingColours {
		logger.Warn("[WARN] The following items failed:\n")
		for _, item := range i.failureLog {
			logger.Warn("    * %s\n", item)
		}
	}
	i.log.Infof("Installer run %s finished: %s", runID, v)
	return v
}
