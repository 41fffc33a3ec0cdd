package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Indent used when writing the configuration file.
const jsonIndent = "    "

// Default values written to a fresh configuration file.
const (
	DefaultCloneMethod    = CloneHTTPS
	DefaultGitHost        = "github.com"
	DefaultGitAccountName = "tomhosker"
	DefaultPlatform       = "ubuntu"
)

// DefaultRoyalRepos is the stock list of personal repositories.
var DefaultRoyalRepos = []string{
	"celanta_at_the_well_of_life",
	"chancery",
	"chancery_b",
	"hgmj",
	"hoskers_almanack",
	"hosker_utils",
	"lucifer_in_starlight",
	"reading_room",
	"vanilla_web",
}

// DefaultDocument returns the documented default configuration.
// Each call returns fresh slices so callers may decode on top of it.
func DefaultDocument() Document {
	return Document{
		EssentialAptPackages:    []string{"git", "gedit-plugins"},
		NonEssentialAptPackages: []string{"inkscape", "vlc"},
		InstallChrome:           false,
		RoyalRepos:              append([]string(nil), DefaultRoyalRepos...),
		CloneMethod:             DefaultCloneMethod,
		GitHost:                 DefaultGitHost,
		GitAccountName:          DefaultGitAccountName,
		ThisPlatform:            DefaultPlatform,
		PipPackages:             []string{},
	}
}

// DefaultJSON renders the default configuration exactly as WriteDefaults writes it.
func DefaultJSON() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", jsonIndent)
	if err := enc.Encode(DefaultDocument()); err != nil {
		return nil, fmt.Errorf("failed to marshal default config: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteDefaults writes the default configuration to path.
// An existing file is left alone unless overwrite is set.
func WriteDefaults(path string, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return nil
		}
	}

	data, err := DefaultJSON()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file %s: %w", path, err)
	}
	return nil
}

// DefaultPath is the configuration file location under the user's home.
func DefaultPath() string {
	return homeFile("hmss_config.json")
}

// DefaultLogPath is the run log location under the user's home.
func DefaultLogPath() string {
	return homeFile("hm_git.log")
}

// DefaultEnvPath is the optional dotenv file holding secrets such as HMSS_GIT_PAT.
func DefaultEnvPath() string {
	return homeFile(".hmss.env")
}

func homeFile(name string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return name
	}
	return filepath.Join(home, name)
}
