package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/vaultshield/vaultshield/cmd/app/commands"
	"github.com/vaultshield/vaultshield/internal/app"
	"github.com/vaultshield/vaultshield/internal/config"
)

func getShieldCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "verify-log",
			Usage: "Verify cryptographic integrity of the verification log",
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

				repository, err := container.VerificationLogRepository()
				if err != nil {
					return err
				}

				signingKey, err := container.SigningKey()
				if err != nil {
					return err
				}

				return commands.RunVerifyLog(
					ctx,
					repository,
					container.LogSigner(),
					signingKey,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("format"),
				)
			},
		},
		{
			Name:  "clean-verifications",
			Usage: "Delete verification records older than specified days",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:     "days",
					Aliases:  []string{"d"},
					Required: true,
					Usage:    "Delete verification records older than this many days",
				},
				&cli.BoolFlag{
					Name:    "dry-run",
					Aliases: []string{"n"},
					Value:   false,
					Usage:   "Show how many records would be deleted without deleting",
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

				shield, err := container.ShieldUseCase()
				if err != nil {
					return err
				}

				return commands.RunCleanVerifications(
					ctx,
					shield,
					container.Logger(),
					commands.DefaultIO().Writer,
					int(cmd.Int("days")),
					cmd.Bool("dry-run"),
					cmd.String("format"),
				)
			},
		},
	}
}
