package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"dario.cat/mergo"
	"gopkg.in/yaml.v3"
)

type Config struct {
	DocsURL string `yaml:"docs_url"`
	PEPURL  string `yaml:"pep_url"`

	// BaseDir anchors downloads/, results/, logs/ and the default cache file.
	BaseDir   string `yaml:"base_dir"`
	CachePath string `yaml:"cache_path"`

	Output         string `yaml:"output"`
	DateTimeFormat string `yaml:"datetime_format"`
	Debug          bool   `yaml:"debug"`
	NoProgress     bool   `yaml:"no_progress"`

	LogMaxSizeMB  int `yaml:"log_max_size_mb"`
	LogMaxBackups int `yaml:"log_max_backups"`

	UserAgent         string        `yaml:"user_agent"`
	Timeout           time.Duration `yaml:"timeout"`
	Retries           int           `yaml:"retries"`
	RequestsPerSecond float64       `yaml:"requests_per_second"`
	CloudflareBypass  bool          `yaml:"cloudflare_bypass"`

	// PEPStatuses is the closed set of statuses tallied by the pep mode, in
	// output order.
	PEPStatuses []string `yaml:"pep_statuses"`
	// ExpectedStatus maps the status letter of the PEP index abbreviation to
	// the statuses a PEP page may show for it.
	ExpectedStatus map[string][]string `yaml:"expected_status"`
}

// Options carries CLI flags; zero values leave the loaded config untouched.
type Options struct {
	IgnoreConfig bool
	Debug        bool
	NoProgress   bool
	Output       string
	BaseDir      string
	CachePath    string
}

func DefaultConfig() *Config {
	return &Config{
		DocsURL:        "https://docs.python.org/3/",
		PEPURL:         "https://peps.python.org/",
		BaseDir:        ".",
		CachePath:      "",
		Output:         "",
		DateTimeFormat: "2006-01-02_15-04-05",
		Debug:          false,
		NoProgress:     false,

		LogMaxSizeMB:  1,
		LogMaxBackups: 5,

		UserAgent:         "",
		Timeout:           30 * time.Second,
		Retries:           2,
		RequestsPerSecond: 5,
		CloudflareBypass:  false,

		PEPStatuses: []string{
			"Accepted", "Active", "Deferred", "Draft", "Final",
			"Provisional", "Rejected", "Superseded", "Withdrawn",
		},
		ExpectedStatus: map[string][]string{
			"":  {"Active", "Draft"},
			"A": {"Active", "Accepted"},
			"D": {"Deferred"},
			"F": {"Final"},
			"P": {"Provisional"},
			"R": {"Rejected"},
			"S": {"Superseded"},
			"W": {"Withdrawn"},
		},
	}
}

func SaveYAML(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// loadYAML reads a profile on top of the defaults, so a profile only needs
// the keys it changes.
func loadYAML(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	c := DefaultConfig()
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, err
	}

	return c, nil
}

// LoadMerged returns defaults, overlaid by the active profile (unless
// ignored), overlaid by CLI options. The second value describes the source.
func LoadMerged(opts Options) (*Config, string, error) {
	if opts.IgnoreConfig {
		cfg := DefaultConfig()
		if err := mergeConfig(cfg, opts); err != nil {
			return nil, "", err
		}
		return cfg, "(ignored config)", nil
	}

	activePath, err := ActiveConfigPath()
	if err == ErrNoConfig || activePath == "" {
		cfg := DefaultConfig()
		if err := mergeConfig(cfg, opts); err != nil {
			return nil, "", err
		}
		return cfg, "(default config in memory)", nil
	}
	if err != nil {
		return nil, "", err
	}

	cfg, err := loadYAML(activePath)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load config %s: %w", activePath, err)
	}

	if err := mergeConfig(cfg, opts); err != nil {
		return nil, "", err
	}

	return cfg, activePath, nil
}

func mergeConfig(c *Config, o Options) error {
	override := Config{
		Debug:      o.Debug,
		NoProgress: o.NoProgress,
		Output:     o.Output,
		BaseDir:    o.BaseDir,
		CachePath:  o.CachePath,
	}

	if err := mergo.Merge(c, override, mergo.WithOverride); err != nil {
		return fmt.Errorf("merge config: %w", err)
	}

	normalizeDefaults(c)
	return nil
}

func normalizeDefaults(c *Config) {
	def := DefaultConfig()

	if c.BaseDir == "" {
		c.BaseDir = "."
	}
	if c.DocsURL == "" {
		c.DocsURL = def.DocsURL
	}
	if c.PEPURL == "" {
		c.PEPURL = def.PEPURL
	}
	if c.DateTimeFormat == "" {
		c.DateTimeFormat = def.DateTimeFormat
	}
	if c.Timeout <= 0 {
		c.Timeout = def.Timeout
	}
	if len(c.PEPStatuses) == 0 {
		c.PEPStatuses = def.PEPStatuses
	}
	if c.ExpectedStatus == nil {
		c.ExpectedStatus = def.ExpectedStatus
	}
}

func (c *Config) DownloadsDir() string {
	return filepath.Join(c.BaseDir, "downloads")
}

func (c *Config) ResultsDir() string {
	return filepath.Join(c.BaseDir, "results")
}

func (c *Config) LogsDir() string {
	return filepath.Join(c.BaseDir, "logs")
}

func (c *Config) CacheFile() string {
	if c.CachePath != "" {
		return c.CachePath
	}

	return filepath.Join(c.BaseDir, "parser_cache.sqlite")
}

func (c *Config) Print() {
	fmt.Printf(" -docs_url: %s\n", c.DocsURL)
	fmt.Printf(" -pep_url: %s\n", c.PEPURL)
	fmt.Printf(" -base_dir: %s\n", c.BaseDir)
	fmt.Printf(" -cache: %s\n", c.CacheFile())
	if c.Output != "" {
		fmt.Printf(" -output: %s\n", c.Output)
	}
	if c.Debug {
		fmt.Printf(" -debug: %t\n", c.Debug)
	}
	if c.NoProgress {
		fmt.Printf(" -no_progress: %t\n", c.NoProgress)
	}
	fmt.Printf(" -timeout: %s\n", c.Timeout)
	fmt.Printf(" -retries: %d\n", c.Retries)
	if c.RequestsPerSecond > 0 {
		fmt.Printf(" -requests_per_second: %g\n", c.RequestsPerSecond)
	}
	if c.CloudflareBypass {
		fmt.Printf(" -cloudflare_bypass: %t\n", c.CloudflareBypass)
	}
	if c.UserAgent != "" {
		fmt.Printf(" -user_agent: %s\n", c.UserAgent)
	}
	fmt.Printf(" -pep_statuses: %s\n", strings.Join(c.PEPStatuses, ", "))
}
