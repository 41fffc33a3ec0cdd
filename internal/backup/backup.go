// Package backup keeps local clones of the royal repos up to date with
// their remotes.
package backup

import (
	"context"
	"fmt"

	"hmss/internal/config"
	"hmss/internal/logger"
	"hmss/internal/runner"
	"hmss/internal/workdir"
)

// Backup fetches and pulls every royal repo in turn.
// A Backup performs a single pass; construct a new one for each pass.
type Backup struct {
	cfg    *config.Config
	runner runner.Runner
	log    *logger.RunLog

	failures []string
}

// New builds a Backup. The run log is owned by the caller.
func New(cfg *config.Config, r runner.Runner, log *logger.RunLog) *Backup {
	return &Backup{cfg: cfg, runner: r, log: log}
}

// Failures returns "<repo>: <failing command>" for each repo that could not be
// backed up, in processing order.
func (b *Backup) Failures() []string {
	return append([]string(nil), b.failures...)
}

// BackUpAll backs up every royal repo. A failing repo does not stop the
// others; the result is true only if all of them succeeded.
func (b *Backup) BackUpAll(ctx context.Context) bool {
	b.log.Infof("Backing up royal repos...")
	result := true
	for _, repo := range b.cfg.RoyalRepos {
		if !b.BackUpOne(ctx, repo) {
			result = false
		}
	}
	if result {
		b.log.Infof("Backed up royal repos successfully.")
		logger.Info("[INFO] Backed up %d royal repos\n", len(b.cfg.RoyalRepos))
	} else {
		b.log.Errorf("Error backing up royal repos.")
		logger.Warn("[WARN] Some royal repos were not backed up, see %s\n", b.log.Path())
	}
	return result
}

// BackUpOne runs `git fetch` then `git pull` inside the repo's local clone.
func (b *Backup) BackUpOne(ctx context.Context, repo string) bool {
	path := b.cfg.RepoPath(repo)
	failed := ""

	err := workdir.Run(path, func() error {
		for _, sub := range []string{"fetch", "pull"} {
			res := b.runner.Run(ctx, "git", sub)
			if !res.OK() {
				failed = "git " + sub
				b.log.Errorf("Problem running git %s within %s: %s", sub, path, describe(res))
				return nil
			}
		}
		return nil
	})
	if err != nil {
		failed = "cd " + path
		b.log.Errorf("Problem entering %s: %v", path, err)
	}
	if failed == "" {
		logger.Debug("[DEBUG] Backed up %s\n", repo)
		return true
	}

	b.failures = append(b.failures, repo+": "+failed)
	b.log.Errorf("Error backing up: %s", repo)
	logger.Error("[ERROR] Error backing up %s (%s)\n", repo, failed)
	return false
}

func describe(res runner.Result) string {
	switch res.Status {
	case runner.FailedNonzero:
		return fmt.Sprintf("exit code %d", res.ExitCode)
	case runner.FailedToStart:
		return fmt.Sprintf("failed to start: %v", res.Err)
	default:
		return res.Status.String()
	}
}
