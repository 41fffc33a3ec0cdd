// Package script fills placeholder tokens in a base shell script and runs the result.
package script

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"hmss/internal/logger"
	"hmss/internal/runner"
)

// Shell runs rendered scripts.
const Shell = "sh"

// Script is a base shell script plus the values for its placeholder tokens.
// Tokens are replaced verbatim; nothing around them is touched.
type Script struct {
	Base   string
	Values map[string]string
}

// Render returns Base with every token replaced by its value.
func (s Script) Render() string {
	tokens := make([]string, 0, len(s.Values))
	for token := range s.Values {
		tokens = append(tokens, token)
	}
	// Longest first, so a token that prefixes another never wins.
	sort.Slice(tokens, func(i, j int) bool {
		if len(tokens[i]) != len(tokens[j]) {
			return len(tokens[i]) > len(tokens[j])
		}
		return tokens[i] < tokens[j]
	})

	pairs := make([]string, 0, 2*len(tokens))
	for _, token := range tokens {
		pairs = append(pairs, token, s.Values[token])
	}
	return strings.NewReplacer(pairs...).Replace(s.Base)
}

// Run renders the script to path, executes it with the system shell, and
// removes it on success. On failure the script stays at path for inspection.
func (s Script) Run(ctx context.Context, r runner.Runner, path string) (runner.Result, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return runner.Result{}, fmt.Errorf("failed to create script directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(s.Render()), 0755); err != nil {
		return runner.Result{}, fmt.Errorf("failed to write script %s: %w", path, err)
	}
	logger.Debug("[DEBUG] Wrote script to %s\n", path)

	res := r.Run(ctx, Shell, path)
	if !res.OK() {
		logger.Warn("[WARN] Script failed (%s); left at %s for inspection\n", res.Status, path)
		return res, nil
	}

	if err := os.Remove(path); err != nil {
		logger.Warn("[WARN] Failed to remove script %s: %v\n", path, err)
	}
	return res, nil
}
