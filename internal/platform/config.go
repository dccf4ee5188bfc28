package platform

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/assonuovavita/sitegen/pkg/core"
)

const (
	// ConfigFileName is the project configuration file looked up in the project root.
	ConfigFileName = "sitegen.yaml"
	// EnvPrefix prefixes environment overrides, e.g. SITEGEN_OUTPUT_DIR.
	EnvPrefix = "SITEGEN"
	// DefaultContentRoot is the content directory used when none is configured.
	DefaultContentRoot = "content/pages"
)

// DefaultSite is used when the configuration names no site.
var DefaultSite = core.SiteInfo{
	Title:    "Associazione Nuova Vita",
	Origin:   "https://www.assonuovavita.it",
	Language: "it",
}

// Config is the project configuration read from sitegen.yaml.
type Config struct {
	Site    core.SiteInfo `mapstructure:"site"`
	Content ContentConfig `mapstructure:"content"`
	Output  OutputConfig  `mapstructure:"output"`
	Watch   WatchConfig   `mapstructure:"watch"`
}

type ContentConfig struct {
	Roots       []string `mapstructure:"roots"`
	Extensions  []string `mapstructure:"extensions"`
	Ignore      []string `mapstructure:"ignore"`
	Concurrency int      `mapstructure:"concurrency"`
}

type OutputConfig struct {
	Dir      string `mapstructure:"dir"`
	HTML     bool   `mapstructure:"html"`
	Manifest bool   `mapstructure:"manifest"`
}

type WatchConfig struct {
	Pattern     string `mapstructure:"pattern"`
	EventBuffer int    `mapstructure:"eventBuffer"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("site.title", DefaultSite.Title)
	v.SetDefault("site.origin", DefaultSite.Origin)
	v.SetDefault("site.language", DefaultSite.Language)
	v.SetDefault("content.roots", []string{DefaultContentRoot})
	v.SetDefault("content.extensions", []string{".md", ".mdx"})
	v.SetDefault("content.ignore", []string{})
	v.SetDefault("content.concurrency", 8)
	v.SetDefault("output.dir", "public")
	v.SetDefault("output.html", true)
	v.SetDefault("output.manifest", true)
	v.SetDefault("watch.pattern", "")
	v.SetDefault("watch.eventBuffer", 100)
}

// LoadConfig reads the configuration. With an empty path, sitegen.yaml is
// looked up in baseDir and may be absent; an explicit path must exist.
// Environment variables prefixed with SITEGEN_ override file values.
// Relative content roots and the output directory are resolved against the
// directory holding the configuration file, or baseDir without one.
// It also returns the configuration file used, if any.
func LoadConfig(path, baseDir string) (Config, string, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(baseDir)
		v.SetConfigName(strings.TrimSuffix(ConfigFileName, filepath.Ext(ConfigFileName)))
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	used := ""
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, "", fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		used = v.ConfigFileUsed()
		baseDir = filepath.Dir(used)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, "", fmt.Errorf("unable to decode config into struct: %w", err)
	}

	for i, root := range cfg.Content.Roots {
		cfg.Content.Roots[i] = resolve(baseDir, root)
	}
	cfg.Output.Dir = resolve(baseDir, cfg.Output.Dir)
	return cfg, used, nil
}

// Options converts the configuration into service options.
func (c Config) Options() []Option {
	return []Option{
		WithSite(c.Site),
		WithRoots(c.Content.Roots...),
		WithExtensions(c.Content.Extensions...),
		WithIgnore(c.Content.Ignore...),
		WithConcurrency(c.Content.Concurrency),
		WithEventBuffer(c.Watch.EventBuffer),
	}
}

func resolve(base, path string) string {
	if path == "" || filepath.IsAbs(path) || base == "" {
		return path
	}
	return filepath.Join(base, path)
}
