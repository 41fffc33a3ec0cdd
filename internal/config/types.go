package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// Clone methods understood by CloneURL.
const (
	CloneHTTPS = "https"
	CloneSSH   = "ssh"
)

const (
	wallpaperStem    = "wallpaper_t"
	wallpaperExt     = ".png"
	defaultWallpaper = "default.jpg"
)

// Document is the on-disk shape of the configuration file.
// Pointer fields are written as null when unset and are filled in by New.
type Document struct {
	ThunderbirdNum          *int     `json:"thunderbird_num"`
	EssentialAptPackages    []string `json:"essential_apt_packages"`
	NonEssentialAptPackages []string `json:"non_essential_apt_packages"`
	PathToWallpaperFile     *string  `json:"path_to_wallpaper_file"`
	InstallChrome           bool     `json:"install_chrome"`
	RoyalRepos              []string `json:"royal_repos"`
	CloneMethod             string   `json:"clone_method"`
	GitHost                 string   `json:"git_host"`
	GitAccountName          string   `json:"git_account_name"`
	ThisPlatform            string   `json:"this_platform"`
	TargetDir               *string  `json:"target_dir"`
	GitEmailAddress         string   `json:"git_email_address"`
	PathToGitCredentials    *string  `json:"path_to_git_credentials"`
	PathToPAT               *string  `json:"path_to_pat"`
	PathToWallpaperDir      *string  `json:"path_to_wallpaper_dir"`
	WallpaperArchive        string   `json:"wallpaper_archive"`
	PipPackages             []string `json:"pip_packages"`
}

// Config is the fully resolved configuration record.
// Every path is concrete once New returns; nothing is derived later.
type Config struct {
	ThunderbirdNum          *int     `json:"thunderbird_num" yaml:"thunderbird_num"`
	EssentialAptPackages    []string `json:"essential_apt_packages" yaml:"essential_apt_packages"`
	NonEssentialAptPackages []string `json:"non_essential_apt_packages" yaml:"non_essential_apt_packages"`
	PathToWallpaperFile     string   `json:"path_to_wallpaper_file" yaml:"path_to_wallpaper_file"`
	InstallChrome           bool     `json:"install_chrome" yaml:"install_chrome"`
	RoyalRepos              []string `json:"royal_repos" yaml:"royal_repos"`
	CloneMethod             string   `json:"clone_method" yaml:"clone_method"`
	GitHost                 string   `json:"git_host" yaml:"git_host"`
	GitAccountName          string   `json:"git_account_name" yaml:"git_account_name"`
	ThisPlatform            string   `json:"this_platform" yaml:"this_platform"`
	TargetDir               string   `json:"target_dir" yaml:"target_dir"`
	GitEmailAddress         string   `json:"git_email_address" yaml:"git_email_address"`
	PathToGitCredentials    string   `json:"path_to_git_credentials" yaml:"path_to_git_credentials"`
	PathToPAT               string   `json:"path_to_pat" yaml:"path_to_pat"`
	PathToWallpaperDir      string   `json:"path_to_wallpaper_dir" yaml:"path_to_wallpaper_dir"`
	WallpaperArchive        string   `json:"wallpaper_archive" yaml:"wallpaper_archive"`
	PipPackages             []string `json:"pip_packages" yaml:"pip_packages"`
}

// New resolves a Document against the current user's home directory.
func New(doc Document) (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return NewWithHome(doc, home), nil
}

// NewWithHome resolves a Document, deriving unset paths under home.
func NewWithHome(doc Document, home string) *Config {
	cfg := &Config{
		ThunderbirdNum:          doc.ThunderbirdNum,
		EssentialAptPackages:    doc.EssentialAptPackages,
		NonEssentialAptPackages: doc.NonEssentialAptPackages,
		InstallChrome:           doc.InstallChrome,
		RoyalRepos:              doc.RoyalRepos,
		CloneMethod:             doc.CloneMethod,
		GitHost:                 doc.GitHost,
		GitAccountName:          doc.GitAccountName,
		ThisPlatform:            doc.ThisPlatform,
		GitEmailAddress:         doc.GitEmailAddress,
		WallpaperArchive:        doc.WallpaperArchive,
		PipPackages:             doc.PipPackages,
		TargetDir:               orDefault(doc.TargetDir, home),
		PathToGitCredentials:    orDefault(doc.PathToGitCredentials, filepath.Join(home, ".git-credentials")),
		PathToPAT:               orDefault(doc.PathToPAT, filepath.Join(home, "personal_access_token.txt")),
		PathToWallpaperDir:      orDefault(doc.PathToWallpaperDir, filepath.Join(home, ".local", "share", "hmss", "wallpaper")),
	}
	cfg.PathToWallpaperFile = orDefault(doc.PathToWallpaperFile, filepath.Join(cfg.PathToWallpaperDir, cfg.WallpaperFilename()))
	return cfg
}

// WallpaperFilename is the themed wallpaper for ThunderbirdNum, or the
// default wallpaper when no (or a zero) number is set.
func (c *Config) WallpaperFilename() string {
	if c.ThunderbirdNum != nil && *c.ThunderbirdNum != 0 {
		return wallpaperStem + strconv.Itoa(*c.ThunderbirdNum) + wallpaperExt
	}
	return defaultWallpaper
}

// CloneURL builds the remote URL of a royal repo.
func (c *Config) CloneURL(repo string) string {
	if c.CloneMethod == CloneSSH {
		return fmt.Sprintf("git@%s:%s/%s.git", c.GitHost, c.GitAccountName, repo)
	}
	return fmt.Sprintf("https://%s/%s/%s.git", c.GitHost, c.GitAccountName, repo)
}

// RepoPath is where a royal repo lives on this machine.
func (c *Config) RepoPath(repo string) string {
	return filepath.Join(c.TargetDir, repo)
}

func orDefault(v *string, fallback string) string {
	if v == nil || *v == "" {
		return fallback
	}
	return *v
}
