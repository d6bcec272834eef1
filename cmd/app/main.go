// Package main provides the entry point for the application with CLI commands.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/allisson/secureshare/cmd/app/commands"
)

var version = "1.0.0"

func main() {
	cmd := &cli.Command{
		Name:    "secureshare",
		Usage:   "Per-user encrypted object store",
		Version: version,
		Commands: []*cli.Command{
			{
				Name:  "server",
				Usage: "Start the object store with the metrics server",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunServer(ctx, version)
				},
			},
			{
				Name:  "check-secrets",
				Usage: "Verify Vault connectivity and required secret material",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunCheckSecrets(ctx, os.Stdout)
				},
			},
			{
				Name:  "generate-key",
				Usage: "Generate encryption key material for seeding Vault",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "algorithm",
						Aliases: []string{"alg"},
						Value:   "aes-gcm",
						Usage:   "Encryption algorithm to use (aes-gcm or chacha20-poly1305)",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunGenerateKey(os.Stdout, cmd.String("algorithm"))
				},
			},
			{
				Name:  "self-test",
				Usage: "Run an encryption round-trip sanity check",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunSelfTest(os.Stdout)
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.Any("error", err))
		os.Exit(1)
	}
}
