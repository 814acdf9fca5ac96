package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/brogergvhs/scriptbox/internal/features/todo"

	"gopkg.in/yaml.v3"
)

type Config struct {
	DataFile string `yaml:"data_file"`
	Script   string `yaml:"script"`
	Site     string `yaml:"site"`

	Timeout    time.Duration `yaml:"timeout"`
	Workers    int           `yaml:"workers"`
	UserAgent  string        `yaml:"user_agent"`
	Cookie     string        `yaml:"cookie"`
	CookieFile string        `yaml:"cookie_file"`
	Cloudflare bool          `yaml:"cloudflare"`

	TodoBaseURL string `yaml:"todo_base_url"`

	Debug bool `yaml:"debug"`
}

// Options are command-line overrides; zero values leave the file's
// setting alone.
type Options struct {
	IgnoreConfig bool
	Debug        bool
	DataFile     string
	Script       string
	Site         string
	Timeout      time.Duration
	Workers      int
	UserAgent    string
	Cookie       string
	CookieFile   string
	Cloudflare   bool
	TodoBaseURL  string
}

const (
	defaultScript  = "scriptbox"
	defaultSite    = "local"
	defaultTimeout = 15 * time.Second
	defaultWorkers = 4
	defaultTodoURL = todo.DefaultBaseURL
)

func DefaultConfig() *Config {
	return &Config{
		DataFile:    DefaultDataFile(),
		Script:      defaultScript,
		Site:        defaultSite,
		Timeout:     defaultTimeout,
		Workers:     defaultWorkers,
		TodoBaseURL: defaultTodoURL,
	}
}

// DefaultDataFile is the SQLite store under the XDG data directory.
func DefaultDataFile() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "scriptbox", "store.db")
	}

	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "scriptbox", "store.db")
}

// ScopeName identifies the storage namespace for this script and site.
func (c *Config) ScopeName() string {
	return c.Script + "@" + c.Site
}

func SaveYAML(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

func loadYAML(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, err
	}

	return &c, nil
}

// LoadMerged reads the active profile (or defaults when there is none or
// it is ignored) and applies opts on top. The second return value
// describes where the settings came from.
func LoadMerged(opts Options) (*Config, string, error) {
	if opts.IgnoreConfig {
		cfg := DefaultConfig()
		mergeConfig(cfg, opts)
		normalizeDefaults(cfg)
		return cfg, "(ignored config)", nil
	}

	activePath, err := ActiveConfigPath()
	if err == ErrNoConfig || activePath == "" {
		cfg := DefaultConfig()
		mergeConfig(cfg, opts)
		normalizeDefaults(cfg)
		return cfg, "(default config in memory)", nil
	}
	if err != nil {
		return nil, "", err
	}

	cfg, err := loadYAML(activePath)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load config %s: %w", activePath, err)
	}

	mergeConfig(cfg, opts)
	normalizeDefaults(cfg)

	return cfg, activePath, nil
}

func mergeConfig(c *Config, o Options) {
	if o.DataFile != "" {
		c.DataFile = o.DataFile
	}
	if o.Script != "" {
		c.Script = o.Script
	}
	if o.Site != "" {
		c.Site = o.Site
	}
	if o.Timeout != 0 {
		c.Timeout = o.Timeout
	}
	if o.Workers != 0 {
		c.Workers = o.Workers
	}
	if o.UserAgent != "" {
		c.UserAgent = o.UserAgent
	}
	if o.Cookie != "" {
		c.Cookie = o.Cookie
	}
	if o.CookieFile != "" {
		c.CookieFile = o.CookieFile
	}
	if o.Cloudflare {
		c.Cloudflare = true
	}
	if o.TodoBaseURL != "" {
		c.TodoBaseURL = o.TodoBaseURL
	}
	if o.Debug {
		c.Debug = true
	}
}

func normalizeDefaults(c *Config) {
	if c.DataFile == "" {
		c.DataFile = DefaultDataFile()
	}
	if c.Script == "" {
		c.Script = defaultScript
	}
	if c.Site == "" {
		c.Site = defaultSite
	}
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
	if c.Workers <= 0 {
		c.Workers = defaultWorkers
	}
	if c.TodoBaseURL == "" {
		c.TodoBaseURL = defaultTodoURL
	}
}

func (c *Config) Print(w io.Writer) {
	fmt.Fprintf(w, " -data_file: %s\n", c.DataFile)
	fmt.Fprintf(w, " -scope: %s\n", c.ScopeName())
	fmt.Fprintf(w, " -timeout: %s\n", c.Timeout)
	fmt.Fprintf(w, " -workers: %d\n", c.Workers)
	if c.UserAgent != "" {
		fmt.Fprintf(w, " -user_agent: %s\n", c.UserAgent)
	}
	if c.CookieFile != "" {
		fmt.Fprintf(w, " -cookie_file: %s\n", c.CookieFile)
	}
	if c.Cloudflare {
		fmt.Fprintf(w, " -cloudflare: %t\n", c.Cloudflare)
	}
	fmt.Fprintf(w, " -todo_base_url: %s\n", c.TodoBaseURL)
	if c.Debug {
		fmt.Fprintf(w, " -debug: %t\n", c.Debug)
	}
}
