package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/sethvargo/go-envconfig"
	"github.com/spf13/cobra"

	"github.com/projectdesk/pm-api/internal/core/domain"
	"github.com/projectdesk/pm-api/internal/core/ports"
	"github.com/projectdesk/pm-api/internal/core/service"
	"github.com/projectdesk/pm-api/internal/infrastructure/db/mongo"
	"github.com/projectdesk/pm-api/internal/infrastructure/security"
	"github.com/projectdesk/pm-api/internal/pkg/config"
	"github.com/projectdesk/pm-api/pkg/logger"
)

var errClearNotConfirmed = errors.New("clear-db deletes every user, client and project; pass --yes to confirm")

// ctlConfig is the subset of the server configuration maintenance commands
// need. JWT_SECRET is not required here.
type ctlConfig struct {
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Auth  config.AuthConfig
	Mongo config.MongoConfig
}

type app struct {
	lookuper envconfig.Lookuper
	cfg      ctlConfig
	log      zerolog.Logger
	store    *mongo.Store
}

// open loads configuration and connects to MongoDB. Commands call it only
// after their own argument checks pass.
func (a *app) open(ctx context.Context) error {
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &a.cfg, Lookuper: a.lookuper}); err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	a.log = logger.Init(logger.ForEnv(a.cfg.Env, a.cfg.LogLevel, "projectctl"))

	store, err := mongo.Connect(ctx, mongo.Config{
		URI:      a.cfg.Mongo.URI,
		Database: a.cfg.Mongo.Database,
		Timeout:  a.cfg.Mongo.Timeout,
		Env:      a.cfg.Env,
	})
	if err != nil {
		return err
	}
	a.store = store
	return nil
}

func (a *app) close(ctx context.Context) {
	if a.store != nil {
		_ = a.store.Disconnect(ctx)
	}
}

func (a *app) users() ports.UserService {
	return service.NewUserService(
		mongo.NewUserRepository(a.store.DB()),
		security.NewBcryptCodec(a.cfg.Auth.BcryptCost),
		nil,
		a.log,
	)
}

func newRootCmd() *cobra.Command {
	return newRootCmdWith(envconfig.OsLookuper())
}

func newRootCmdWith(l envconfig.Lookuper) *cobra.Command {
	a := &app{lookuper: l}

	root := &cobra.Command{
		Use:           "projectctl",
		Short:         "Maintenance commands for the project management API",
		SilenceUsage: true,
	}

	root.AddCommand(
		seedAdminCmd(a),
		blockUserCmd(a),
		ensureIndexesCmd(a),
		clearDBCmd(a),
	)
	return root
}

func seedAdminCmd(a *app) *cobra.Command {
	var name, email, password string

	cmd := &cobra.Command{
		Use:   "seed-admin",
		Short: "Create an admin account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if err := a.open(ctx); err != nil {
				return err
			}
			defer a.close(ctx)

			user, err := a.users().CreateUser(ctx, ports.CreateUserInput{
				Name:     name,
				Email:    email,
				Password: password,
				Role:     domain.RoleAdmin,
			})
			if err != nil {
				return err
			}
			cmd.Printf("admin created: id=%s email=%s\n", user.ID, user.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "Administrator", "display name")
	cmd.Flags().StringVar(&email, "email", "", "login email")
	cmd.Flags().StringVar(&password, "password", "", "initial password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func blockUserCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "block-user <user-id>",
		Short: "Block a user account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := a.open(ctx); err != nil {
				return err
			}
			defer a.close(ctx)

			user, err := a.users().BlockUser(ctx, args[0])
			if err != nil {
				return err
			}
			if user == nil {
				return fmt.Errorf("no user with id %q", args[0])
			}
			cmd.Printf("blocked: id=%s email=%s\n", user.ID, user.Email)
			return nil
		},
	}
}

func ensureIndexesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "ensure-indexes",
		Short: "Create the collection indexes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if err := a.open(ctx); err != nil {
				return err
			}
			defer a.close(ctx)
			if err := a.store.EnsureIndexes(ctx); err != nil {
				return err
			}
			cmd.Println("indexes ensured")
			return nil
		},
	}
}

func clearDBCmd(a *app) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear-db",
		Short: "Delete every user, client, project and activity event",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !yes {
				return errClearNotConfirmed
			}
			ctx := cmd.Context()
			if err := a.open(ctx); err != nil {
				return err
			}
			defer a.close(ctx)
			if err := a.store.Clear(ctx); err != nil {
				return err
			}
			cmd.Println("database cleared")
			return nil
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "confirm the deletion")
	return cmd
}
