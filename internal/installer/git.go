package installer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"golang.org/x/term"

	"hmss/internal/logger"
)

// TokenEnvVar holds a git personal access token, usually set in ~/.hmss.env.
const TokenEnvVar = "HMSS_GIT_PAT"

// TokenSource yields the git personal access token.
type TokenSource func() (string, error)

// DefaultTokenSource looks for a token in TokenEnvVar, then in the token
// file at patPath, then prompts on the terminal with echo disabled.
func DefaultTokenSource(patPath string) TokenSource {
	return func() (string, error) {
		if tok := strings.TrimSpace(os.Getenv(TokenEnvVar)); tok != "" {
			return tok, nil
		}
		if raw, err := os.ReadFile(patPath); err == nil {
			if tok := strings.TrimSpace(string(raw)); tok != "" {
				return tok, nil
			}
		}
		if !term.IsTerminal(int(syscall.Stdin)) {
			return "", fmt.Errorf("no personal access token: set %s or write one to %s", TokenEnvVar, patPath)
		}

		fmt.Print("Git personal access token: ")
		raw, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Println()
		if err != nil {
			return "", fmt.Errorf("failed to read token: %w", err)
		}
		tok := strings.TrimSpace(string(raw))
		if tok == "" {
			return "", errors.New("no personal access token entered")
		}
		return tok, nil
	}
}

func (i *Installer) setUpGit(ctx context.Context) bool {
	if !i.installViaApt(ctx, "git") {
		return false
	}

	settings := [][]string{
		{"user.name", i.cfg.GitAccountName},
		{"credential.helper", "store"},
	}
	if i.cfg.GitEmailAddress != "" {
		settings = append(settings, []string{"user.email", i.cfg.GitEmailAddress})
	}
	for _, kv := range settings {
		if res := i.runner.Run(ctx, "git", "config", "--global", kv[0], kv[1]); !res.OK() {
			logger.Error("[ERROR] git config %s %s\n", kv[0], res.Status)
			i.log.Errorf("Problem setting git %s: %s", kv[0], res.Status)
			return false
		}
	}

	if i.testRun {
		logger.Debug("[DEBUG] Test run, not writing git credentials\n")
		return true
	}
	if err := i.writeCredentials(); err != nil {
		logger.Error("[ERROR] %v\n", err)
		i.log.Errorf("Problem setting up git credentials: %v", err)
		return false
	}
	return true
}

// writeCredentials stores the token in plain files: the bare token at
// PathToPAT and a git-credential-store line at PathToGitCredentials.
func (i *Installer) writeCredentials() error {
	tok, err := i.token()
	if err != nil {
		return err
	}

	if err := writePrivate(i.cfg.PathToPAT, tok+"\n"); err != nil {
		return err
	}
	line := fmt.Sprintf("https://%s:%s@%s\n", i.cfg.GitAccountName, tok, i.cfg.GitHost)
	if err := writePrivate(i.cfg.PathToGitCredentials, line); err != nil {
		return err
	}
	logger.Info("[INFO] Wrote git credentials to %s\n", i.cfg.PathToGitCredentials)
	return nil
}

func writePrivate(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
