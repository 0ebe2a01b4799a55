package config

import (
	"cmp"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

var ErrNoConfig = errors.New("no config selected")

const (
	appName      = "docscrape"
	defaultLabel = "Default"
)

// Profiles is a directory of <label>.yaml files plus a file naming the
// active label.
type Profiles struct {
	Root string
}

// ConfigRoot is %APPDATA%/docscrape, $XDG_CONFIG_HOME/docscrape or
// ~/.config/docscrape.
func ConfigRoot() string {
	if appdata := os.Getenv("APPDATA"); appdata != "" {
		return filepath.Join(appdata, appName)
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appName)
	}

	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", appName)
}

func userProfiles() Profiles {
	return Profiles{Root: ConfigRoot()}
}

func (p Profiles) Dir() string {
	return filepath.Join(p.Root, "configs")
}

func (p Profiles) labelFile() string {
	return filepath.Join(p.Root, "current_config")
}

func (p Profiles) path(label string) string {
	return filepath.Join(p.Dir(), label+".yaml")
}

func (p Profiles) ensure() error {
	return os.MkdirAll(p.Dir(), 0755)
}

func checkLabel(label string) error {
	switch {
	case strings.TrimSpace(label) == "":
		return errors.New("label cannot be empty")
	case strings.ContainsAny(label, `/\`) || label == "." || label == "..":
		return fmt.Errorf("invalid label %q", label)
	}
	return nil
}

func (p Profiles) Current() (string, error) {
	b, err := os.ReadFile(p.labelFile())
	if errors.Is(err, os.ErrNotExist) {
		return "", ErrNoConfig
	}
	if err != nil {
		return "", err
	}

	label := strings.TrimSpace(string(b))
	if label == "" {
		return "", ErrNoConfig
	}
	return label, nil
}

func (p Profiles) ActivePath() (string, error) {
	label, err := p.Current()
	if err != nil {
		return "", err
	}
	return p.path(label), nil
}

type ConfigInfo struct {
	Label  string
	Path   string
	Active bool
}

func (p Profiles) List() ([]ConfigInfo, error) {
	if err := p.ensure(); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(p.Dir())
	if err != nil {
		return nil, err
	}

	active, _ := p.Current()
	out := make([]ConfigInfo, 0, len(entries))
	for _, e := range entries {
		label, ok := strings.CutSuffix(e.Name(), ".yaml")
		if e.IsDir() || !ok {
			continue
		}
		out = append(out, ConfigInfo{Label: label, Path: p.path(label), Active: label == active})
	}

	slices.SortFunc(out, func(a, b ConfigInfo) int { return cmp.Compare(a.Label, b.Label) })
	return out, nil
}

func (p Profiles) Switch(label string) error {
	if err := checkLabel(label); err != nil {
		return err
	}
	if _, err := os.Stat(p.path(label)); err != nil {
		return fmt.Errorf("config %q does not exist", label)
	}

	return os.WriteFile(p.labelFile(), []byte(label), 0644)
}

// Create writes a new profile filled with the defaults.
func (p Profiles) Create(label string) (string, error) {
	if err := checkLabel(label); err != nil {
		return "", err
	}
	if err := p.ensure(); err != nil {
		return "", err
	}

	path := p.path(label)
	if _, err := os.Stat(path); err == nil {
		return "", fmt.Errorf("config %q already exists", label)
	}

	return path, SaveYAML(DefaultConfig(), path)
}

// InitDefault creates Default.yaml if needed and activates it. An existing
// file is kept and reported with os.ErrExist.
func (p Profiles) InitDefault() (string, error) {
	path, err := p.Create(defaultLabel)
	if err != nil {
		if _, statErr := os.Stat(p.path(defaultLabel)); statErr != nil {
			return "", err
		}
		path = p.path(defaultLabel)
		err = os.ErrExist
	}

	if werr := os.WriteFile(p.labelFile(), []byte(defaultLabel), 0644); werr != nil {
		return "", werr
	}

	return path, err
}

// Remove deletes a profile. Removing the active one falls back to Default.
func (p Profiles) Remove(label string) error {
	if err := checkLabel(label); err != nil {
		return err
	}
	if label == defaultLabel {
		return errors.New("cannot remove the Default config")
	}

	path := p.path(label)
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("config %q does not exist", label)
	}

	if active, _ := p.Current(); active == label {
		if _, err := p.InitDefault(); err != nil && !errors.Is(err, os.ErrExist) {
			return fmt.Errorf("failed switching to Default: %w", err)
		}
	}

	return os.Remove(path)
}

func ConfigsDir() string { return userProfiles().Dir() }
func CurrentLabel() (string, error) { return userProfiles().Current() }
func ActiveConfigPath() (string, error) { return userProfiles().ActivePath() }
func ListConfigs() ([]ConfigInfo, error) { return userProfiles().List() }
func SwitchConfig(label string) error { return userProfiles().Switch(label) }
func CreateConfig(label string) (string, error) { return userProfiles().Create(label) }
func InitDefaultConfig() (string, error) { return userProfiles().InitDefault() }
func RemoveConfig(label string) error { return userProfiles().Remove(label) }
