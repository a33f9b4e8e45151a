package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/fx"

	"github.com/polkiloo/storefront/internal/config"
	"github.com/polkiloo/storefront/internal/di"
	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/logger"
	"github.com/polkiloo/storefront/internal/storage/postgres"
	"github.com/polkiloo/storefront/internal/usecase"
)

func newRootCmd() *cobra.Command {
	serve := newServeCmd()
	root := &cobra.Command{
		Use:                "storefront",
		Short:              "Storefront backend with credits, rewards and Discord login",
		Args:               cobra.ArbitraryArgs,
		SilenceUsage:       true,
		DisableFlagParsing: true,
		RunE:               serve.RunE,
	}
	root.AddCommand(serve, newPromoteCmd())
	return root
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve [flags]",
		Short: "Run the HTTP API and notification workers",
		Long: `Run the HTTP API and notification workers. Flags are read together with
environment variables and an optional .env file:

	storefront serve -a :8080 -d postgres://... -r localhost:6379
`,
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			app := fx.New(
				fx.Provide(func() context.Context { return ctx }),
				fx.Supply(config.Args(args)),
				di.Module(),
			)
			return run(ctx, app)
		},
	}
}

func newPromoteCmd() *cobra.Command {
	var discordID, role string
	cmd := &cobra.Command{
		Use:   "promote",
		Short: "Set the role of an account that has already logged in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			var users *usecase.UserUseCase
			app := fx.New(
				fx.Provide(func() context.Context { return ctx }),
				fx.Supply(config.Args(nil)),
				config.Module,
				logger.Module,
				fx.NopLogger,
				postgres.Module,
				fx.Provide(usecase.NewLedgerUseCase, usecase.NewUserUseCase),
				fx.Populate(&users),
			)
			if err := app.Start(ctx); err != nil {
				return fmt.Errorf("start: %w", err)
			}
			defer func() { _ = app.Stop(context.Background()) }()

			return promote(ctx, users, discordID, model.Role(role), cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&discordID, "discord-id", "", "Discord user id of the account")
	cmd.Flags().StringVar(&role, "role", string(model.RoleAdmin), "Role to assign: Client, Staff or Admin")
	_ = cmd.MarkFlagRequired("discord-id")
	return cmd
}

type promoter interface {
	PromoteByDiscordID(ctx context.Context, discordID string, role model.Role) (*model.User, error)
}

func promote(ctx context.Context, users promoter, discordID string, role model.Role, out io.Writer) error {
	user, err := users.PromoteByDiscordID(ctx, discordID, role)
	if err != nil {
		return fmt.Errorf("promote %s: %w", discordID, err)
	}
	_, err = fmt.Fprintf(out, "%s (%s) is now %s\n", user.Username, user.DiscordID, user.Role)
	return err
}
