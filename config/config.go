// Package config loads game settings and builds the logger shared by the
// hosts.
package config

import (
	"flag"
	"io"
	"math/rand"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/pr1vateer/libretictactoe/xoxo"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

var ErrInvalidScale = errors.New("scale must not be negative")

type Config struct {
	Debug    bool    `yaml:"debug"`
	Level    string  `yaml:"level"`
	Seed     int64   `yaml:"seed"`
	Strategy string  `yaml:"strategy"`
	Scale    float64 `yaml:"scale"`
	Title    string  `yaml:"title"`
}

func Default() Config {
	return Config{
		Strategy: "random",
		Title:    "Tic-tac-toe",
	}
}

// Load reads the YAML file at path over the defaults. An empty path returns
// the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	file, err := os.Open(path)
	if err != nil {
		return Config{}, errors.Wrap(err, "open config")
	}
	defer func() {
		_ = file.Close()
	}()
	if err := yaml.NewDecoder(file).Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, errors.Wrapf(err, "decode config %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, errors.WithMessage(err, path)
	}
	return cfg, nil
}

// Parse registers the config flags on fs, parses args, loads the file named
// by -config and applies the flags given on the command line over it.
func Parse(fs *flag.FlagSet, args []string) (Config, error) {
	def := Default()
	path := fs.String("config", "", "config file")
	debug := fs.Bool("debug", def.Debug, "enable debug")
	level := fs.String("level", def.Level, "log level")
	seed := fs.Int64("seed", def.Seed, "ai seed (0 for time based)")
	strategy := fs.String("strategy", def.Strategy, "ai strategy (random, none)")
	scale := fs.Float64("scale", def.Scale, "window scale (0 for device scale)")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	cfg, err := Load(*path)
	if err != nil {
		return Config{}, err
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "debug":
			cfg.Debug = *debug
		case "level":
			cfg.Level = *level
		case "seed":
			cfg.Seed = *seed
		case "strategy":
			cfg.Strategy = *strategy
		case "scale":
			cfg.Scale = *scale
		}
	})
	if err := cfg.Validate(); err != nil {
		return Config{}, errors.WithMessage(err, "flags")
	}
	return cfg, nil
}

func (cfg Config) Validate() error {
	if cfg.Scale < 0 {
		return ErrInvalidScale
	}
	if _, err := xoxo.StrategyByName(cfg.Strategy, rand.New(rand.NewSource(1))); err != nil {
		return err
	}
	return nil
}

// Rand returns a source seeded with Seed, or with the current time when Seed
// is 0.
func (cfg Config) Rand() *rand.Rand {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

func (cfg Config) NewStrategy() (xoxo.Strategy, error) {
	return xoxo.StrategyByName(cfg.Strategy, cfg.Rand())
}

// NewLogger returns a console logger writing to w and sets the global level.
// The level comes from Level, then the LEVEL, DEBUG and TRACE environment
// variables, and Debug raises it to at least debug. Logging is disabled
// otherwise.
func (cfg Config) NewLogger(w io.Writer) zerolog.Logger {
	level := zerolog.Disabled
	if l, err := zerolog.ParseLevel(cfg.Level); cfg.Level != "" && err == nil {
		level = l
	}
	if s := os.Getenv("LEVEL"); s != "" {
		if l, err := zerolog.ParseLevel(s); err == nil {
			level = l
		}
	}
	if truthy(os.Getenv("DEBUG")) {
		level = zerolog.DebugLevel
	}
	if truthy(os.Getenv("TRACE")) {
		level = zerolog.TraceLevel
	}
	if level > zerolog.DebugLevel && cfg.Debug {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	cw := zerolog.NewConsoleWriter(func(cw *zerolog.ConsoleWriter) {
		cw.Out = w
		cw.NoColor = w != os.Stdout && w != os.Stderr
		cw.TimeFormat = "2006-01-02 15:04:05"
		cw.PartsOrder = []string{zerolog.TimestampFieldName, zerolog.LevelFieldName, zerolog.CallerFieldName, zerolog.MessageFieldName}
		cw.FieldsExclude = cw.PartsOrder
	})
	return zerolog.New(cw).With().Timestamp().Caller().Logger()
}

func truthy(s string) bool {
	return s != "" && s != "0" && s != "off" && s != "false"
}
