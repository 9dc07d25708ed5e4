package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/xfsconv/internal/logger"
	"github.com/samcharles93/xfsconv/internal/render"
	"github.com/samcharles93/xfsconv/pkg/xfs"
)

const (
	exitFailure = 1
	exitUsage   = 2
)

// convertDefault handles `xfsconv <path>`: one input, written as <path>.xml.
func convertDefault(ctx context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() != 1 {
		return cli.Exit("Usage: xfsconv <path>", exitUsage)
	}
	in := cmd.Args().First()
	if err := checkInput(in); err != nil {
		return cli.Exit(err.Error(), exitUsage)
	}

	s := decodeSettings{charset: string(xfs.DefaultCharset), maxDepth: xfs.DefaultMaxDepth}
	applyDecodeConfig(cmd, appConfig, &s)
	s.format = string(render.FormatXML)

	log := logger.FromContext(ctx)
	opts, format, err := s.options(log)
	if err != nil {
		return cli.Exit(err.Error(), exitUsage)
	}
	if _, err := convertFile(log, in, outputPath(in, format), format, opts); err != nil {
		return cli.Exit(err.Error(), exitFailure)
	}
	return nil
}

func convertCmd() *cli.Command {
	var (
		settings decodeSettings
		out      string
	)

	return &cli.Command{
		Name:      "convert",
		Usage:     "Convert one or more XFS containers",
		ArgsUsage: "<path>...",
		Flags: append(decodeFlags(&settings, true),
			&cli.StringFlag{
				Name:        "out",
				Aliases:     []string{"o"},
				Usage:       "output path (only with a single input; default <input>.<format>)",
				Destination: &out,
			},
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			inputs := cmd.Args().Slice()
			if len(inputs) == 0 {
				return cli.Exit("convert: at least one input path is required", exitUsage)
			}
			if out != "" && len(inputs) > 1 {
				return cli.Exit("convert: --out requires exactly one input", exitUsage)
			}

			applyDecodeConfig(cmd, appConfig, &settings)
			log := logger.FromContext(ctx)
			opts, format, err := settings.options(log)
			if err != nil {
				return cli.Exit(err.Error(), exitUsage)
			}

			var errs []error
			for _, in := range inputs {
				if err := checkInput(in); err != nil {
					errs = append(errs, err)
					continue
				}
				dst := out
				if dst == "" {
					dst = outputPath(in, format)
				}
				if _, err := convertFile(log, in, dst, format, opts); err != nil {
					log.Error("conversion failed", "input", in, "error", err)
					errs = append(errs, err)
				}
			}
			if err := errors.Join(errs...); err != nil {
				return cli.Exit(err.Error(), exitFailure)
			}
			return nil
		},
	}
}

// convertFile decodes in and writes it to out.
func convertFile(log logger.Logger, in, out string, f render.Format, opts []xfs.Option) (*xfs.Container, error) {
	start := time.Now()
	c, err := xfs.DecodeFile(in, opts...)
	if err != nil {
		return nil, err
	}
	if err := writeOutput(out, c, f); err != nil {
		return nil, fmt.Errorf("%s: %w", out, err)
	}
	log.Info("converted",
		"input", in,
		"output", out,
		"structures", len(c.Structures),
		"diagnostics", len(c.Diagnostics),
		"elapsed", time.Since(start).Round(time.Microsecond),
	)
	return c, nil
}
