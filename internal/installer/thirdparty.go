package installer

import (
	"bufio"
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	_ "embed"

	"hmss/internal/logger"
	"hmss/internal/platform"
	"hmss/internal/script"
)

// Placeholder tokens in templates/third_party.sh.
const (
	tokenPackages = "__APT_PACKAGES__"
	tokenQuiet    = "__QUIET__"
	tokenFailures = "__FAILURES_FILE__"
)

const (
	thirdPartyScriptName   = "hmss_third_party.sh"
	thirdPartyFailuresName = "hmss_third_party.failures"
)

//go:embed templates/third_party.sh
var thirdPartyTemplate string

// thirdPartyPackages is the non-essential package list for this platform.
func (i *Installer) thirdPartyPackages() []string {
	pkgs := append([]string(nil), i.cfg.NonEssentialAptPackages...)
	if i.cfg.ThisPlatform == platform.ChromeOS {
		pkgs = append(pkgs, missingFromChromeOS...)
	}
	return pkgs
}

func (i *Installer) thirdPartyScript(failuresPath string, quiet bool) script.Script {
	return script.Script{
		Base: thirdPartyTemplate,
		Values: map[string]string{
			tokenPackages: strings.Join(i.thirdPartyPackages(), " "),
			tokenQuiet:    strconv.FormatBool(quiet),
			tokenFailures: failuresPath,
		},
	}
}

func (i *Installer) installOtherThirdParty(ctx context.Context) bool {
	pkgs := i.thirdPartyPackages()
	if len(pkgs) == 0 {
		return true
	}

	scriptPath := filepath.Join(i.scratchDir, thirdPartyScriptName)
	failuresPath := filepath.Join(i.scratchDir, thirdPartyFailuresName)
	defer os.Remove(failuresPath)

	res, err := i.thirdPartyScript(failuresPath, !i.showOutput).Run(ctx, i.runner, scriptPath)
	if err != nil {
		logger.Error("[ERROR] %v\n", err)
		return false
	}
	if res.OK() {
		return true
	}

	failed := readLines(failuresPath)
	for _, pkg := range failed {
		i.log.Errorf("Problem installing apt package %s", pkg)
	}
	if len(failed) == 0 {
		i.log.Errorf("Third party install script %s: %s", scriptPath, res.Status)
	}
	return false
}

func readLines(path string) []string {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	var lines []string
	sc := bufio.NewScanner(bytes.NewReader(raw))
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
