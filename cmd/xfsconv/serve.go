package main

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v5"
	"github.com/labstack/echo/v5/middleware"
	"github.com/urfave/cli/v3"

	"github.com/samcharles93/xfsconv/internal/api"
	"github.com/samcharles93/xfsconv/internal/logger"
	"github.com/samcharles93/xfsconv/pkg/xfs"
)

func serveCmd() *cli.Command {
	var (
		settings    decodeSettings
		addr        string
		maxBody     int64
		readTimeout time.Duration
	)

	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the decode API over HTTP",
		Flags: append(decodeFlags(&settings, true),
			&cli.StringFlag{
				Name:        "addr",
				Usage:       "listen address",
				Value:       "127.0.0.1:8080",
				Destination: &addr,
			},
			&cli.Int64Flag{
				Name:        "max-body",
				Usage:       "maximum accepted container size in bytes",
				Value:       api.DefaultMaxBodyBytes,
				Destination: &maxBody,
			},
			&cli.DurationFlag{
				Name:        "read-timeout",
				Usage:       "read header timeout",
				Value:       30 * time.Second,
				Destination: &readTimeout,
			},
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			log := logger.FromContext(ctx)

			applyDecodeConfig(cmd, appConfig, &settings)
			applyServeConfig(cmd, appConfig, &addr, &maxBody)
			_, format, err := settings.options(log)
			if err != nil {
				return cli.Exit(err.Error(), exitUsage)
			}
			charset, err := xfs.ParseCharset(settings.charset)
			if err != nil {
				return cli.Exit(err.Error(), exitUsage)
			}

			server := api.NewServer(api.Config{
				MaxBodyBytes: maxBody,
				Format:       format,
				Charset:      charset,
				Strict:       settings.strict,
				MaxDepth:     int(settings.maxDepth),
			}, log)
			e := echo.New()
			e.Use(middleware.RequestLogger())
			e.Use(middleware.Recover())
			server.Register(e)
			log.Info("starting server", "address", addr, "max_body_bytes", maxBody, "format", string(format))
			sc := echo.StartConfig{
				Address: addr,
				BeforeServeFunc: func(srv *http.Server) error {
					srv.ReadHeaderTimeout = readTimeout
					return nil
				},
			}
			return sc.Start(ctx, e)
		},
	}
}
