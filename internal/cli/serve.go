package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/laneweave/laneweave/internal/config"
	"github.com/laneweave/laneweave/internal/server"
	"github.com/laneweave/laneweave/pkg/cache"
	"github.com/laneweave/laneweave/pkg/remote"
	"github.com/laneweave/laneweave/pkg/store"
)

// serveCommand creates the serve command, which runs the HTTP server.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		configPath string
		listen     string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the laneweave HTTP server",
		Long: `Run the HTTP server exposing parse, diff, patch, the collaborator
proxies, and diagram storage.

Configuration comes from ~/.config/laneweave/config.toml (or --config);
every setting has a working default, so the zero-config server runs on
localhost with the in-memory store.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if listen != "" {
				cfg.Server.Listen = listen
			}

			ctx := cmd.Context()

			diagramStore, err := newStore(cmd, cfg)
			if err != nil {
				return err
			}
			defer diagramStore.Close(ctx)

			responseCache, ttl, err := newServerCache(cmd, cfg)
			if err != nil {
				return err
			}
			defer responseCache.Close()

			client := remote.NewClient(remote.WithCache(responseCache, ttl))
			var validateClient *remote.ValidateClient
			if cfg.Remote.ValidateURL != "" {
				validateClient = remote.NewValidateClient(client, cfg.Remote.ValidateURL)
			}
			var shareClient *remote.ShareClient
			if cfg.Remote.ShareURL != "" {
				shareClient = remote.NewShareClient(client, cfg.Remote.ShareURL)
			}

			srv := server.New(server.Options{
				Logger:   c.Logger,
				Store:    diagramStore,
				Validate: validateClient,
				Share:    shareClient,
				MaxBytes: cfg.Server.MaxBytes,
			})

			prog := newProgress(c.Logger)
			err = srv.ListenAndServe(ctx, cfg.Server.Listen)
			prog.done("Server stopped")
			return err
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "config file path")
	cmd.Flags().StringVar(&listen, "listen", "", "listen address (overrides config)")

	return cmd
}

func newStore(cmd *cobra.Command, cfg *config.Config) (store.Store, error) {
	switch cfg.Store.Backend {
	case "mongo":
		return store.NewMongoStore(cmd.Context(), store.MongoConfig{
			URI:        cfg.Store.URI,
			Database:   cfg.Store.Database,
			Collection: cfg.Store.Collection,
		})
	default:
		return store.NewMemoryStore(), nil
	}
}

func newServerCache(cmd *cobra.Command, cfg *config.Config) (cache.Cache, time.Duration, error) {
	ttl := cfg.Cache.TTL.Duration()
	switch cfg.Cache.Backend {
	case "redis":
		c, err := cache.NewRedisCache(cmd.Context(), cache.RedisConfig{
			Addr:     cfg.Cache.Redis.Addr,
			Password: cfg.Cache.Redis.Password,
			DB:       cfg.Cache.Redis.DB,
		})
		return c, ttl, err
	case "none":
		return cache.NewNullCache(), 0, nil
	default:
		dir := cfg.Cache.Dir
		if dir == "" {
			d, err := cacheDir()
			if err != nil {
				return cache.NewNullCache(), 0, nil
			}
			dir = d
		}
		c, err := cache.NewFileCache(dir)
		if err != nil {
			return cache.NewNullCache(), 0, nil
		}
		return c, ttl, nil
	}
}
