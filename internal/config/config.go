package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"svggeo/internal/convert"
	"svggeo/internal/geom"
	"svggeo/internal/svgpath"
)

// Config holds all application configuration.
type Config struct {
	Input   string        `mapstructure:"input"`
	Bounds  geom.Bounds   `mapstructure:"bounds"`
	Convert ConvertConfig `mapstructure:"convert"`
	Output  OutputConfig  `mapstructure:"output"`
	Log     LogConfig     `mapstructure:"log"`
	Preview bool          `mapstructure:"preview"`

	// boundsSet records whether any bounds key was given explicitly.
	// Zero is a legal bound.
	boundsSet bool
}

type ConvertConfig struct {
	Complexity int      `mapstructure:"complexity"`
	Tolerance  float64  `mapstructure:"tolerance"`
	Workers    int      `mapstructure:"workers"`
	Attributes []string `mapstructure:"attributes"`
	BBox       bool     `mapstructure:"bbox"`
}

type OutputConfig struct {
	Format string `mapstructure:"format"`
	Path   string `mapstructure:"path"`
	Indent bool   `mapstructure:"indent"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Options maps the convert section onto converter options.
func (c *Config) Options() convert.Options {
	return convert.Options{
		Complexity: c.Convert.Complexity,
		Tolerance:  c.Convert.Tolerance,
		Attributes: c.Convert.Attributes,
		Workers:    c.Convert.Workers,
		BBox:       c.Convert.BBox,
	}
}

// flag name → config key
var flagKeys = map[string]string{
	"north":      "bounds.north",
	"east":       "bounds.east",
	"south":      "bounds.south",
	"west":       "bounds.west",
	"complexity": "convert.complexity",
	"tolerance":  "convert.tolerance",
	"workers":    "convert.workers",
	"attr":       "convert.attributes",
	"bbox":       "convert.bbox",
	"format":     "output.format",
	"output":     "output.path",
	"indent":     "output.indent",
	"log-level":  "log.level",
	"log-format": "log.format",
	"preview":    "preview",
}

// Flags declares the command line flags Load understands.
func Flags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("svggeo", pflag.ContinueOnError)
	fs.String("config", "", "config file (default ./svggeo.yaml or ./configs/svggeo.yaml)")
	fs.Float64("north", 0, "latitude of the top edge")
	fs.Float64("east", 0, "longitude of the right edge")
	fs.Float64("south", 0, "latitude of the bottom edge")
	fs.Float64("west", 0, "longitude of the left edge")
	fs.IntP("complexity", "c", svgpath.DefaultComplexity, "line segments per curve")
	fs.Float64("tolerance", 0, "arc length tolerance in drawing units (0 = default)")
	fs.IntP("workers", "j", 1, "elements converted concurrently")
	fs.StringSliceP("attr", "a", nil, "attribute copied into feature properties (repeatable)")
	fs.Bool("bbox", false, "write a bbox member on the collection")
	fs.StringP("format", "f", "geojson", "output format: geojson or wkt")
	fs.StringP("output", "o", "", "output file (default stdout)")
	fs.Bool("indent", false, "indent GeoJSON output")
	fs.String("log-level", "info", "debug, info, warn or error")
	fs.String("log-format", "text", "text or json")
	fs.BoolP("preview", "p", false, "open the terminal preview instead of writing output")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: svggeo [flags] <drawing.json | ->\n\n%s", fs.FlagUsages())
	}
	return fs
}

// Load reads configuration from flags, environment variables and an
// optional config file, in that order of precedence. The first
// positional argument names the drawing document.
func Load(args []string) (*Config, error) {
	fs := Flags()
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return load(fs)
}

func load(fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("input", "")
	v.SetDefault("convert.complexity", svgpath.DefaultComplexity)
	v.SetDefault("convert.tolerance", 0.0)
	v.SetDefault("convert.workers", 1)
	v.SetDefault("convert.attributes", []string{})
	v.SetDefault("convert.bbox", false)
	v.SetDefault("output.format", "geojson")
	v.SetDefault("output.path", "")
	v.SetDefault("output.indent", false)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("preview", false)

	// Config file (optional unless named explicitly)
	if file, _ := fs.GetString("config"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", file, err)
		}
	} else {
		v.SetConfigName("svggeo")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	// Environment variables: SVGGEO_BOUNDS_NORTH → bounds.north
	v.SetEnvPrefix("SVGGEO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for name, key := range flagKeys {
		if err := v.BindPFlag(key, fs.Lookup(name)); err != nil {
			return nil, fmt.Errorf("bind flag %s: %w", name, err)
		}
	}
	if fs.NArg() > 0 {
		v.Set("input", fs.Arg(0))
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	for _, key := range []string{"bounds.north", "bounds.east", "bounds.south", "bounds.west"} {
		cfg.boundsSet = cfg.boundsSet || v.IsSet(key)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// PreviewsCollection reports whether the input is an already converted
// GeoJSON file opened in the preview.
func (c *Config) PreviewsCollection() bool {
	return c.Preview && strings.EqualFold(filepath.Ext(c.Input), ".geojson")
}

// Validate checks that required configuration fields are present and sane.
func (c *Config) Validate() error {
	var errs []string

	if c.Input == "" {
		errs = append(errs, "input drawing is required (path or - for stdin)")
	}
	for _, b := range []struct {
		key string
		v   float64
	}{
		{"bounds.north", c.Bounds.North},
		{"bounds.east", c.Bounds.East},
		{"bounds.south", c.Bounds.South},
		{"bounds.west", c.Bounds.West},
	} {
		if math.IsNaN(b.v) || math.IsInf(b.v, 0) {
			errs = append(errs, fmt.Sprintf("%s must be finite, got %g", b.key, b.v))
		}
	}
	if !c.boundsSet && !c.PreviewsCollection() {
		errs = append(errs, "bounds are required")
	}
	if c.Convert.Complexity < 1 {
		errs = append(errs, fmt.Sprintf("convert.complexity must be at least 1, got %d", c.Convert.Complexity))
	}
	if c.Convert.Tolerance < 0 || math.IsNaN(c.Convert.Tolerance) || math.IsInf(c.Convert.Tolerance, 0) {
		errs = append(errs, fmt.Sprintf("convert.tolerance must be a non-negative number, got %g", c.Convert.Tolerance))
	}
	if c.Convert.Workers < 1 {
		errs = append(errs, fmt.Sprintf("convert.workers must be at least 1, got %d", c.Convert.Workers))
	}
	switch c.Output.Format {
	case "geojson", "wkt":
	default:
		errs = append(errs, fmt.Sprintf("output.format must be geojson or wkt, got %q", c.Output.Format))
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Sprintf("log.level must be debug, info, warn or error, got %q", c.Log.Level))
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		errs = append(errs, fmt.Sprintf("log.format must be text or json, got %q", c.Log.Format))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
