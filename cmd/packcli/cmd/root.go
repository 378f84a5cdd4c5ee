// Package cmd implements the packcli commands.
package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/packio/bitpack/config"
	"github.com/packio/bitpack/packing"
	"github.com/packio/bitpack/shared"
)

const defaultConfigFileName = "config.toml"

// Version and Commit are set by the main package.
var (
	Version = "development"
	Commit  = ""
)

var (
	cfg = config.DefaultConfig()

	cfgFile     string
	logLevel    string
	printConfig bool

	logger  *zap.Logger
	sugared *zap.SugaredLogger
)

var defaultConfigFile = filepath.Join(filepath.Dir(config.DefaultDataDir), defaultConfigFileName)

var rootCmd = &cobra.Command{
	Use:   "packcli",
	Short: "bit-packing compression for integer sequences",
	Long: "packcli compresses sequences of integers by packing each element " +
		"into a fixed number of bits, serves random access into the packed " +
		"form, and benchmarks when compressing before transmission pays off.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Assigned here rather than in the composite literal above: the closure
	// calls loadConfig, which refers back to rootCmd, and that would be an
	// initialization cycle.
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if err := setupLogger(); err != nil {
			return err
		}
		if err := loadConfig(); err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		if printConfig {
			spew.Dump(cfg)
		}
		return nil
	}

	flags := rootCmd.PersistentFlags()

	flags.StringVar(&cfgFile, "config", "", "path to configuration file")
	flags.StringVar(&logLevel, "log-level", zapcore.InfoLevel.String(),
		"log level (debug, info, warn, error)")
	flags.BoolVar(&printConfig, "print-config", false, "print the resolved configuration before running")

	flags.StringVar(&cfg.Algorithm, "algorithm", cfg.Algorithm,
		"packing variant: simple, aligned or overflow")
	flags.StringVar(&cfg.Strategy, "strategy", cfg.Strategy,
		"signed transform: zigzag, offset or signsplit (empty treats input as non-negative)")
	flags.Float64Var(&cfg.OutlierFraction, "outlier-fraction", cfg.OutlierFraction,
		"share of values the overflow variant may move to its side table")
	flags.UintVar(&cfg.NormalWidth, "normal-width", cfg.NormalWidth,
		"forced field width in bits (0 derives it from the data)")
	flags.IntVar(&cfg.Iterations, "iterations", cfg.Iterations,
		"benchmark repetitions per measurement")
	flags.Float64SliceVar(&cfg.LinkMBps, "link-mbps", cfg.LinkMBps,
		"link speeds, in MB/s, for benchmark break-even columns")
	flags.StringVar(&cfg.DataDir, "datadir", cfg.DataDir,
		"directory generated datasets are written to")

	if err := viper.BindPFlags(flags); err != nil {
		panic(err)
	}
}

// Execute runs the root command. Exit codes follow the error taxonomy: 2
// for configuration errors, 3 for integrity violations, 4 for out-of-range
// access, 1 for everything else.
func Execute() {
	if Commit != "" {
		rootCmd.Version = fmt.Sprintf("%s (%s)", Version, Commit)
	} else {
		rootCmd.Version = Version
	}

	err := rootCmd.Execute()
	if err == nil {
		return
	}
	fmt.Fprintln(os.Stderr, "packcli:", err)
	switch {
	case errors.Is(err, shared.ErrInvalidConfig):
		os.Exit(2)
	case errors.Is(err, shared.ErrIntegrity):
		os.Exit(3)
	case errors.Is(err, shared.ErrIndexOutOfRange):
		os.Exit(4)
	default:
		os.Exit(1)
	}
}

func setupLogger() error {
	level, err := zapcore.ParseLevel(logLevel)
	if err != nil {
		return fmt.Errorf("%w: invalid `log-level`; expected: one of debug, info, warn, error, given: %q",
			shared.ErrInvalidConfig, logLevel)
	}

	zapCfg := zap.Config{
		Level:    zap.NewAtomicLevelAt(level),
		Encoding: "console",
		EncoderConfig: zapcore.EncoderConfig{
			TimeKey:        "T",
			LevelKey:       "L",
			NameKey:        "N",
			MessageKey:     "M",
			LineEnding:     zapcore.DefaultLineEnding,
			EncodeLevel:    zapcore.CapitalLevelEncoder,
			EncodeTime:     zapcore.ISO8601TimeEncoder,
			EncodeDuration: zapcore.StringDurationEncoder,
		},
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}
	logger, err = zapCfg.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize zap logger: %v", err)
	}
	sugared = logger.Sugar()
	return nil
}

func loadConfig() error {
	path := cfgFile
	explicit := path != ""
	if !explicit {
		path = defaultConfigFile
		if _, err := os.Stat(path); err != nil {
			return nil
		}
	}

	vip := viper.New()
	vip.SetConfigFile(path)
	if err := vip.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config file: %v", err)
	}

	flagValues := *cfg
	if err := vip.Unmarshal(cfg); err != nil {
		return fmt.Errorf("failed to parse config: %v", err)
	}

	// Explicit command line flags keep priority over the config file.
	rootCmd.PersistentFlags().Visit(func(f *pflag.Flag) {
		switch f.Name {
		case "algorithm":
			cfg.Algorithm = flagValues.Algorithm
		case "strategy":
			cfg.Strategy = flagValues.Strategy
		case "outlier-fraction":
			cfg.OutlierFraction = flagValues.OutlierFraction
		case "normal-width":
			cfg.NormalWidth = flagValues.NormalWidth
		case "iterations":
			cfg.Iterations = flagValues.Iterations
		case "link-mbps":
			cfg.LinkMBps = flagValues.LinkMBps
		case "datadir":
			cfg.DataDir = flagValues.DataDir
		}
	})
	return nil
}

type zapAdapter struct {
	s *zap.SugaredLogger
}

func (a zapAdapter) Info(format string, args ...any)  { a.s.Infof(format, args...) }
func (a zapAdapter) Debug(format string, args ...any) { a.s.Debugf(format, args...) }
func (a zapAdapter) Error(format string, args ...any) { a.s.Errorf(format, args...) }

func codecLogger() shared.Logger {
	return zapAdapter{s: sugared}
}

func codecOptions() []packing.OptionFunc {
	return append(cfg.CodecOptions(), packing.WithLogger(codecLogger()))
}
