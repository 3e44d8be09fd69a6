// Package config collects command line flags and RAYCAST_* environment
// variables into a single validated configuration.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/df07/go-raycaster/pkg/display"
	"github.com/df07/go-raycaster/pkg/geometry"
	"github.com/df07/go-raycaster/pkg/renderer"
)

// EnvPrefix is prepended to every environment variable name
const EnvPrefix = "RAYCAST_"

// Default frame size
const (
	DefaultWidth  = 640
	DefaultHeight = 480
)

// KnownSinks lists the sink names accepted by -sink
var KnownSinks = []string{"window", "png", "s3", "log"}

// Config contains everything needed for one render run
type Config struct {
	Scene     string
	Width     uint
	Height    uint
	Format    string
	Policy    string
	Workers   int
	Sinks     string // Comma separated sink names
	OutputDir string
	Scale     int
	S3        display.S3Config
	Help      bool

	// Set by Validate
	PixelFormat renderer.PixelFormat
	HitPolicy   geometry.HitPolicy
	SinkNames   []string

	flags *flag.FlagSet
}

// LookupFunc reads an environment variable
type LookupFunc func(key string) (string, bool)

// LoadEnvFile loads variables from a .env style file into the process
// environment. A missing file is not an error. Variables already set win.
func LoadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// Load loads the optional env file named by RAYCAST_ENV_FILE (default
// ".env"), then parses args with environment-provided defaults.
func Load(name string, args []string, output io.Writer) (*Config, error) {
	envFile, ok := os.LookupEnv(EnvPrefix + "ENV_FILE")
	if !ok {
		envFile = ".env"
	}
	if err := LoadEnvFile(envFile); err != nil {
		return nil, err
	}
	return Parse(name, args, os.LookupEnv, output)
}

// Parse builds a Config from flags. Environment values replace the built-in
// defaults and explicit flags replace both.
func Parse(name string, args []string, lookup LookupFunc, output io.Writer) (*Config, error) {
	env := envReader{lookup: lookup}
	cfg := &Config{}

	flags := flag.NewFlagSet(name, flag.ContinueOnError)
	cfg.flags = flags
	if output != nil {
		flags.SetOutput(output)
	}

	flags.StringVar(&cfg.Scene, "scene", env.String("SCENE", "default"), "Scene name: 'default' or 'single'")
	flags.UintVar(&cfg.Width, "width", env.Uint("WIDTH", DefaultWidth), "Image width in pixels")
	flags.UintVar(&cfg.Height, "height", env.Uint("HEIGHT", DefaultHeight), "Image height in pixels")
	flags.StringVar(&cfg.Format, "format", env.String("FORMAT", "rgb8"), "Pixel format: rgb8, rgba8, rgb16 or rgba16")
	flags.StringVar(&cfg.Policy, "policy", env.String("POLICY", geometry.KeepBehind.String()), "Behind-origin hits: keep-behind or cull-behind")
	flags.IntVar(&cfg.Workers, "workers", env.Int("WORKERS", 1), "Render workers (0 = CPU count)")
	flags.StringVar(&cfg.Sinks, "sink", env.String("SINK", "window"), "Comma separated sinks: "+strings.Join(KnownSinks, ", "))
	flags.StringVar(&cfg.OutputDir, "out", env.String("OUT", "output"), "Output directory for the png sink")
	flags.IntVar(&cfg.Scale, "scale", env.Int("SCALE", 1), "Integer upscale factor for window and image output")
	flags.StringVar(&cfg.S3.Bucket, "s3-bucket", env.String("S3_BUCKET", ""), "Bucket for the s3 sink")
	flags.StringVar(&cfg.S3.Prefix, "s3-prefix", env.String("S3_PREFIX", "renders"), "Key prefix for the s3 sink")
	flags.StringVar(&cfg.S3.Region, "s3-region", env.String("S3_REGION", "us-east-1"), "Region for the s3 sink")
	flags.StringVar(&cfg.S3.Endpoint, "s3-endpoint", env.String("S3_ENDPOINT", ""), "Custom endpoint for S3-compatible storage")
	flags.BoolVar(&cfg.Help, "help", false, "Show help information")

	// Credentials are only read from the environment
	cfg.S3.AccessKey = env.String("S3_ACCESS_KEY", "")
	cfg.S3.SecretKey = env.String("S3_SECRET_KEY", "")

	if env.err != nil {
		return nil, env.err
	}
	if err := flags.Parse(args); err != nil {
		return nil, err
	}
	if cfg.Help {
		return cfg, nil
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values and fills in the parsed fields
func (c *Config) Validate() error {
	if c.Width == 0 || c.Height == 0 {
		return fmt.Errorf("invalid size %dx%d", c.Width, c.Height)
	}
	if c.Width > 1<<15 || c.Height > 1<<15 {
		return fmt.Errorf("size %dx%d exceeds %d pixels per side", c.Width, c.Height, 1<<15)
	}
	if c.Scale < 1 {
		return fmt.Errorf("scale must be at least 1, got %d", c.Scale)
	}

	format, err := renderer.ParsePixelFormat(c.Format)
	if err != nil {
		return err
	}
	c.PixelFormat = format

	policy, err := geometry.ParseHitPolicy(c.Policy)
	if err != nil {
		return err
	}
	c.HitPolicy = policy

	c.SinkNames = nil
	for _, name := range strings.Split(c.Sinks, ",") {
		name = strings.TrimSpace(strings.ToLower(name))
		if name == "" {
			continue
		}
		if !isKnownSink(name) {
			return fmt.Errorf("unknown sink %q (want one of %s)", name, strings.Join(KnownSinks, ", "))
		}
		c.SinkNames = append(c.SinkNames, name)
	}
	if len(c.SinkNames) == 0 {
		return fmt.Errorf("at least one sink is required")
	}
	if c.HasSink("s3") && c.S3.Bucket == "" {
		return fmt.Errorf("the s3 sink requires -s3-bucket or %sS3_BUCKET", EnvPrefix)
	}
	c.S3.Scale = c.Scale

	return nil
}

// PrintDefaults writes the flag usage to the configured output
func (c *Config) PrintDefaults() {
	if c.flags != nil {
		c.flags.PrintDefaults()
	}
}

// HasSink reports whether the named sink is enabled
func (c *Config) HasSink(name string) bool {
	for _, s := range c.SinkNames {
		if s == name {
			return true
		}
	}
	return false
}

// ImageInfo returns the frame layout for this configuration
func (c *Config) ImageInfo() (renderer.ImageInfo, error) {
	return renderer.NewImageInfo(uint32(c.Width), uint32(c.Height), c.PixelFormat)
}

func isKnownSink(name string) bool {
	for _, known := range KnownSinks {
		if known == name {
			return true
		}
	}
	return false
}

// envReader reads prefixed variables and remembers the first parse error
type envReader struct {
	lookup LookupFunc
	err    error
}

func (e *envReader) String(key, fallback string) string {
	if e.lookup == nil {
		return fallback
	}
	if value, ok := e.lookup(EnvPrefix + key); ok && value != "" {
		return value
	}
	return fallback
}

func (e *envReader) Int(key string, fallback int) int {
	value := e.String(key, "")
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		e.setErr(key, value)
		return fallback
	}
	return parsed
}

func (e *envReader) Uint(key string, fallback uint) uint {
	value := e.String(key, "")
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseUint(value, 10, 32)
	if err != nil {
		e.setErr(key, value)
		return fallback
	}
	return uint(parsed)
}

func (e *envReader) setErr(key, value string) {
	if e.err == nil {
		e.err = fmt.Errorf("invalid %s%s: %s", EnvPrefix, key, value)
	}
}
