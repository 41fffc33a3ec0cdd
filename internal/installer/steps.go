package installer

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"hmss/internal/archive"
	"hmss/internal/logger"
	"hmss/internal/platform"
	"hmss/internal/workdir"
)

const (
	chromeDeb     = "google-chrome-stable_current_amd64.deb"
	chromeURLStem = "https://dl.google.com/linux/direct/"
	chromeCommand = "google-chrome"

	// BashrcAddition is appended to .bashrc so every new shell backs up the royal repos.
	BashrcAddition = "hmss backup &>/dev/null & disown"
)

// missingFromChromeOS are desktop basics the Chrome OS Linux container lacks.
var missingFromChromeOS = []string{"eog", "evince", "gedit", "nautilus"}

func (i *Installer) makeEssentials() []Step {
	return []Step{
		{Label: "Check OS", Gerund: "Checking OS", Run: i.checkOS},
		{Label: "Update and upgrade", Gerund: "Updating and upgrading", Run: i.updateAndUpgrade},
		{Label: "Set up Git", Gerund: "Setting up Git", Run: i.setUpGit},
	}
}

func (i *Installer) makeNonEssentials() []Step {
	return []Step{
		{Label: "Install Google Chrome", Gerund: "Installing Google Chrome", Run: i.installGoogleChrome},
		{Label: "Install other third party", Gerund: "Installing other third party", Run: i.installOtherThirdParty},
		{Label: "Install Python packages", Gerund: "Installing Python packages", Run: i.installPipPackages},
		{Label: "Clone royal repos", Gerund: "Cloning royal repos", Run: i.cloneRoyalRepos},
		{Label: "Schedule royal repo backups", Gerund: "Scheduling royal repo backups", Run: i.scheduleRoyalRepoBackups},
		{Label: "Change wallpaper", Gerund: "Changing wallpaper", Run: i.changeWallpaper},
	}
}

func (i *Installer) checkOS(ctx context.Context) bool {
	if !platform.IsLinux() {
		logger.Error("[ERROR] This installer only runs on Linux\n")
		return false
	}
	if !platform.IsSupported(i.cfg.ThisPlatform) {
		logger.Error("[ERROR] Platform %q is not one of %s\n", i.cfg.ThisPlatform, strings.Join(platform.Supported, ", "))
		return false
	}
	return true
}

// installViaApt installs pkg unless command (defaulting to pkg) is already on PATH.
func (i *Installer) installViaApt(ctx context.Context, pkg string, command ...string) bool {
	cmdName := pkg
	if len(command) > 0 {
		cmdName = command[0]
	}
	if i.runner.Exists(cmdName) {
		logger.Debug("[DEBUG] %s already present, skipping apt install of %s\n", cmdName, pkg)
		return true
	}
	res := i.runner.Run(ctx, "sudo", "apt-get", "install", pkg, "--yes")
	if !res.OK() {
		logger.Error("[ERROR] apt-get install %s %s\n", pkg, res.Status)
		i.log.Errorf("Problem installing apt package %s: %s", pkg, res.Status)
		return false
	}
	return true
}

func (i *Installer) runApt(ctx context.Context, argument string) bool {
	return i.runner.Run(ctx, "sudo", "apt-get", "--yes", argument).OK()
}

func (i *Installer) updateAndUpgrade(ctx context.Context) bool {
	// A failed update still leaves a usable package index.
	if !i.runApt(ctx, "update") {
		logger.Warn("[WARN] apt-get update failed, carrying on\n")
	}
	if !i.runApt(ctx, "upgrade") {
		return false
	}
	for _, pkg := range i.cfg.EssentialAptPackages {
		if !i.installViaApt(ctx, pkg) {
			return false
		}
	}
	return true
}

func (i *Installer) installGoogleChrome(ctx context.Context) bool {
	if !i.cfg.InstallChrome {
		logger.Debug("[DEBUG] install_chrome is off, skipping\n")
		return true
	}
	if i.cfg.ThisPlatform == platform.ChromeOS || i.runner.Exists(chromeCommand) {
		logger.Info("[INFO] Google Chrome is already available\n")
		return true
	}

	debPath := filepath.Join(i.cfg.TargetDir, chromeDeb)
	if !i.testRun {
		if err := i.fetcher.Fetch(ctx, chromeURLStem+chromeDeb, debPath); err != nil {
			logger.Error("[ERROR] %v\n", err)
			i.log.Errorf("Problem downloading Google Chrome: %v", err)
			return false
		}
		defer func() {
			if err := os.Remove(debPath); err != nil && !os.IsNotExist(err) {
				logger.Warn("[WARN] Failed to remove %s: %v\n", debPath, err)
			}
		}()
	}
	return i.installViaApt(ctx, debPath)
}

func (i *Installer) installPipPackages(ctx context.Context) bool {
	for _, pkg := range i.cfg.PipPackages {
		res := i.runner.Run(ctx, "pip", "install", pkg)
		if !res.OK() {
			logger.Error("[ERROR] pip install %s %s\n", pkg, res.Status)
			i.log.Errorf("Problem installing pip package %s: %s", pkg, res.Status)
			return false
		}
	}
	return true
}

func (i *Installer) cloneRepo(ctx context.Context, repo string) bool {
	cloned := true
	err := workdir.Run(i.cfg.TargetDir, func() error {
		if _, err := os.Stat(repo); err == nil {
			logger.Warn("[WARN] Looks like %s already exists...\n", repo)
			return nil
		}
		url := i.cfg.CloneURL(repo)
		if res := i.runner.Run(ctx, "git", "clone", url); !res.OK() {
			i.log.Errorf("Problem cloning repo: %s (%s)", repo, res.Status)
			cloned = false
		}
		return nil
	})
	if err != nil {
		i.log.Errorf("Problem cloning repo: %s: %v", repo, err)
		return false
	}
	return cloned
}

func (i *Installer) cloneRoyalRepos(ctx context.Context) bool {
	result := true
	for _, repo := range i.cfg.RoyalRepos {
		if !i.cloneRepo(ctx, repo) {
			result = false
		}
	}
	return result
}

func (i *Installer) scheduleRoyalRepoBackups(ctx context.Context) bool {
	raw, err := os.ReadFile(i.bashrcPath)
	if err != nil {
		logger.Error("[ERROR] Cannot read %s: %v\n", i.bashrcPath, err)
		return false
	}
	if strings.Contains(string(raw), BashrcAddition) {
		logger.Debug("[DEBUG] Backup hook already in %s\n", i.bashrcPath)
		return true
	}
	if i.testRun {
		return true
	}

	f, err := os.OpenFile(i.bashrcPath, os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		logger.Error("[ERROR] Unable to open file %s for appending: %v\n", i.bashrcPath, err)
		return false
	}
	defer f.Close()
	if _, err := f.WriteString("\n" + BashrcAddition + "\n"); err != nil {
		logger.Error("[ERROR] Failed to write backup hook: %v\n", err)
		return false
	}
	logger.Info("[INFO] Added backup hook to %s\n", i.bashrcPath)
	return true
}

func (i *Installer) changeWallpaper(ctx context.Context) bool {
	wallpaper := i.cfg.PathToWallpaperFile
	if !i.ensureWallpaperDir(filepath.Dir(wallpaper)) {
		return false
	}

	var args []string
	switch i.cfg.ThisPlatform {
	case platform.Ubuntu:
		args = []string{"gsettings", "set", "org.gnome.desktop.background", "picture-uri", "file://" + wallpaper}
	case platform.Raspbian:
		args = []string{"pcmanfm", "--set-wallpaper", wallpaper}
	default:
		logger.Warn("[WARN] Don't know how to change the wallpaper on %s\n", i.cfg.ThisPlatform)
		return false
	}
	return i.runner.Run(ctx, args[0], args[1:]...).OK()
}

// ensureWallpaperDir makes sure dir exists, unpacking the configured wallpaper archive into it if not.
func (i *Installer) ensureWallpaperDir(dir string) bool {
	if info, err := os.Stat(dir); err == nil && info.IsDir() {
		return true
	}
	if i.cfg.WallpaperArchive == "" {
		logger.Error("[ERROR] Wallpaper directory %s does not exist\n", dir)
		return false
	}
	if i.testRun {
		logger.Debug("[DEBUG] Test run, not unpacking %s\n", i.cfg.WallpaperArchive)
		return true
	}

	files, err := archive.Extract(i.cfg.WallpaperArchive, dir)
	if err != nil {
		logger.Error("[ERROR] Failed to unpack %s: %v\n", i.cfg.WallpaperArchive, err)
		i.log.Errorf("Problem unpacking wallpaper archive %s: %v", i.cfg.WallpaperArchive, err)
		return false
	}
	logger.Info("[INFO] Unpacked %d wallpapers into %s\n", len(files), dir)
	return true
}
