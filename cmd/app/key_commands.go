package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/vaultshield/vaultshield/cmd/app/commands"
	"github.com/vaultshield/vaultshield/internal/app"
	"github.com/vaultshield/vaultshield/internal/config"
	cryptoDomain "github.com/vaultshield/vaultshield/internal/crypto/domain"
)

func getKeyCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "generate-key",
			Usage: "Generate a random 256-bit key",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "format",
					Aliases: []string{"f"},
					Value:   "text",
					Usage:   "Output format: 'text' or 'json'",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				return commands.RunGenerateKey(
					container.Engine(),
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("format"),
				)
			},
		},
		{
			Name:  "derive-key",
			Usage: "Derive a 256-bit key from a password using PBKDF2-SHA256",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "password",
					Aliases:  []string{"p"},
					Required: true,
					Usage:    "Password to derive the key from",
				},
				&cli.StringFlag{
					Name:     "salt",
					Aliases:  []string{"s"},
					Required: true,
					Usage:    "Hex-encoded salt",
				},
				&cli.IntFlag{
					Name:    "iterations",
					Aliases: []string{"i"},
					Value:   cryptoDomain.MinKDFIterations,
					Usage:   "PBKDF2 iteration count",
				},
				&cli.StringFlag{
					Name:    "format",
					Aliases: []string{"f"},
					Value:   "text",
					Usage:   "Output format: 'text' or 'json'",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				return commands.RunDeriveKey(
					container.Engine(),
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("password"),
					cmd.String("salt"),
					int(cmd.Int("iterations")),
					cmd.String("format"),
				)
			},
		},
		{
			Name:  "sign",
			Usage: "Sign an identifier with HMAC-SHA256",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "identifier",
					Aliases:  []string{"i"},
					Required: true,
					Usage:    "Identifier to sign",
				},
				&cli.StringFlag{
					Name:     "key",
					Aliases:  []string{"k"},
					Required: true,
					Usage:    "Hex-encoded 32-byte signing key",
				},
				&cli.StringFlag{
					Name:    "format",
					Aliases: []string{"f"},
					Value:   "text",
					Usage:   "Output format: 'text' or 'json'",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				return commands.RunSignIdentifier(
					container.Engine(),
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("identifier"),
					cmd.String("key"),
					cmd.String("format"),
				)
			},
		},
	}
}
