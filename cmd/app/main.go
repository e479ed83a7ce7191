// Package main provides the entry point for the application with CLI commands.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/allisson/luhnify/cmd/app/commands"
	"github.com/allisson/luhnify/internal/app"
	"github.com/allisson/luhnify/internal/config"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cmd := &cli.Command{
		Name:    "luhnify",
		Usage:   "Generate and validate Luhn checksum numbers from templates",
		Version: version,
		Commands: []*cli.Command{
			{
				Name:  "server",
				Usage: "Start the HTTP server",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunServer(ctx, version)
				},
			},
			{
				Name:  "generate",
				Usage: "Generate Luhn-valid numbers matching a template (x, X or ? for a random digit)",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "template",
						Aliases:  []string{"t"},
						Required: true,
						Usage:    "Template such as 4532xxxx????8745",
					},
					&cli.IntFlag{
						Name:    "count",
						Aliases: []string{"c"},
						Value:   1,
						Usage:   "Batch size, clamped to 1..100",
					},
					&cli.Uint64Flag{
						Name:  "seed",
						Value: 0,
						Usage: "Seed for reproducible output (0 uses GENERATOR_SEED or a random seed)",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Also write the numbers to this file, one per line",
					},
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Value:   "text",
						Usage:   "Output format: 'text' or 'json'",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					container, logger := newCLIContainer(cmd.Uint64("seed"))
					defer commands.CloseContainer(container, logger)

					useCase, err := container.GeneratorUseCase()
					if err != nil {
						return err
					}

					return commands.RunGenerate(ctx, useCase, logger, commands.DefaultIO(), commands.GenerateOptions{
						Template:   cmd.String("template"),
						BatchCount: int(cmd.Int("count")),
						Format:     cmd.String("format"),
						Output:     cmd.String("output"),
					})
				},
			},
			{
				Name:  "validate",
				Usage: "Check a number against the Luhn checksum",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "number",
						Aliases:  []string{"n"},
						Required: true,
						Usage:    "Digits to check",
					},
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Value:   "text",
						Usage:   "Output format: 'text' or 'json'",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					container, logger := newCLIContainer(0)
					defer commands.CloseContainer(container, logger)

					useCase, err := container.GeneratorUseCase()
					if err != nil {
						return err
					}

					return commands.RunValidate(
						ctx,
						useCase,
						logger,
						commands.DefaultIO(),
						cmd.String("number"),
						cmd.String("format"),
					)
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.Any("error", err))
		os.Exit(1)
	}
}

// newCLIContainer builds a container for one-shot commands: logs go to
// stderr, metrics are off, and a non-zero seed overrides GENERATOR_SEED.
func newCLIContainer(seed uint64) (*app.Container, *slog.Logger) {
	cfg := config.Load()
	cfg.MetricsEnabled = false
	if seed != 0 {
		cfg.GeneratorSeed = int(seed)
	}

	container := app.NewContainer(cfg, app.WithLogOutput(os.Stderr))
	return container, container.Logger()
}
