package main

import (
	"context"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/xfsconv/internal/logger"
	"github.com/samcharles93/xfsconv/internal/render"
	"github.com/samcharles93/xfsconv/pkg/xfs"
)

const (
	envLogLevel  = "XFSCONV_LOG_LEVEL"
	envLogFormat = "XFSCONV_LOG_FORMAT"
	envConfig    = "XFSCONV_CONFIG"
)

var (
	logLevel   string
	logFormat  string
	debug      bool
	configFile string

	// appConfig is loaded once in setup.
	appConfig Config
)

func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "log level (debug, info, warn, error)",
			Value:       "info",
			Sources:     cli.EnvVars(envLogLevel),
			Destination: &logLevel,
		},
		&cli.StringFlag{
			Name:        "log-format",
			Usage:       "log format (pretty, json, text)",
			Value:       "pretty",
			Sources:     cli.EnvVars(envLogFormat),
			Destination: &logFormat,
		},
		&cli.BoolFlag{
			Name:        "debug",
			Usage:       "enable debug logging (shorthand for --log-level=debug)",
			Destination: &debug,
		},
		&cli.StringFlag{
			Name:        "config",
			Usage:       "path to config.yaml",
			Sources:     cli.EnvVars(envConfig),
			Destination: &configFile,
		},
	}
}

// setup loads the config file and installs the logger in the context.
func setup(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	cfg, err := LoadConfig(configPath(configFile))
	if err != nil {
		return ctx, cli.Exit(err.Error(), exitUsage)
	}
	appConfig = cfg
	applyLoggingConfig(cmd, cfg)

	level := logLevel
	if debug {
		level = "debug"
	}
	log, err := logger.Build(os.Stderr, logFormat, level)
	if err != nil {
		return ctx, cli.Exit(err.Error(), exitUsage)
	}
	return logger.WithContext(ctx, log), nil
}

// decodeSettings holds the flags shared by commands that decode containers.
type decodeSettings struct {
	format   string
	charset  string
	strict   bool
	maxDepth int64
}

func decodeFlags(s *decodeSettings, withFormat bool) []cli.Flag {
	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "charset",
			Usage:       "code page of strings in the container (windows-1252, iso-8859-1, raw)",
			Value:       string(xfs.DefaultCharset),
			Destination: &s.charset,
		},
		&cli.BoolFlag{
			Name:        "strict",
			Usage:       "fail when a top-level structure does not end on an offset table entry",
			Destination: &s.strict,
		},
		&cli.Int64Flag{
			Name:        "max-depth",
			Usage:       "maximum structure nesting depth",
			Value:       xfs.DefaultMaxDepth,
			Destination: &s.maxDepth,
		},
	}
	if withFormat {
		flags = append([]cli.Flag{&cli.StringFlag{
			Name:        "format",
			Aliases:     []string{"f"},
			Usage:       "output format (xml, json, yaml)",
			Value:       string(render.DefaultFormat),
			Destination: &s.format,
		}}, flags...)
	}
	return flags
}

// options validates the settings and turns them into decoder options.
func (s decodeSettings) options(log logger.Logger) ([]xfs.Option, render.Format, error) {
	format, err := render.ParseFormat(s.format)
	if err != nil {
		return nil, "", err
	}
	charset, err := xfs.ParseCharset(s.charset)
	if err != nil {
		return nil, "", err
	}
	return []xfs.Option{
		xfs.WithCharset(charset),
		xfs.WithStrict(s.strict),
		xfs.WithMaxDepth(int(s.maxDepth)),
		xfs.WithLogger(log),
	}, format, nil
}
