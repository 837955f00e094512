package cli

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/amplistack/amplistack/pkg/proxy"
	"github.com/amplistack/amplistack/pkg/store"
)

func (c *CLI) serveCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the transcript service",
		Long: `Run the HTTP service behind "ingest". It answers POST /api/ai/transcript
with the model's reading of the transcript, and serves shared diagrams under
/api/diagrams when REDIS_URL or MONGO_URI is set.

Settings come from --config (TOML) and are overridden by PORT,
GEMINI_API_KEY, AI_MODEL, ALLOWED_ORIGIN, REDIS_URL and MONGO_URI.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			cfg, err := proxy.LoadConfig(configPath)
			if err != nil {
				return err
			}
			opts := []proxy.Option{proxy.WithLogger(logger)}

			if cfg.APIKey != "" {
				completer, err := proxy.NewGeminiCompleter(ctx, cfg.APIKey, cfg.Model)
				if err != nil {
					return err
				}
				opts = append(opts, proxy.WithCompleter(completer))
			} else {
				logger.Warn("GEMINI_API_KEY is not set; transcript requests will fail")
			}

			st, err := openSharedStore(ctx, cfg, logger)
			if err != nil {
				return err
			}
			if st != nil {
				defer st.Close()
				opts = append(opts, proxy.WithStore(st))
			}

			return proxy.New(cfg, opts...).ListenAndServe(ctx)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "TOML configuration file")
	return cmd
}

// openSharedStore returns the diagram store named by cfg, or nil when none
// is configured. Redis wins when both are set.
func openSharedStore(ctx context.Context, cfg proxy.Config, logger *log.Logger) (store.Store, error) {
	switch {
	case cfg.RedisURL != "":
		st, err := store.NewRedisStore(cfg.RedisURL, 0)
		if err != nil {
			return nil, fmt.Errorf("shared store: %w", err)
		}
		logger.Info("sharing diagrams", "backend", backendRedis)
		return st, nil
	case cfg.MongoURI != "":
		st, err := store.NewMongoStore(ctx, store.MongoConfig{URI: cfg.MongoURI})
		if err != nil {
			return nil, fmt.Errorf("shared store: %w", err)
		}
		logger.Info("sharing diagrams", "backend", backendMongo)
		return st, nil
	default:
		return nil, nil
	}
}
