package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/abhisek/wordmath/internal/config"
	"github.com/abhisek/wordmath/internal/grading"
	"github.com/abhisek/wordmath/internal/llm"
	"github.com/abhisek/wordmath/internal/practice"
	"github.com/abhisek/wordmath/internal/problemgen"
	"github.com/abhisek/wordmath/internal/store"
)

// loadConfig reads the configuration named by --config, falling back to
// WORDMATH_CONFIG and the environment.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// openStore connects to the configured store and fronts it with the Redis
// session cache when one is configured.
func openStore(ctx context.Context, cfg config.Config) (store.Store, error) {
	st, err := store.Open(ctx, cfg.Store.URL, cfg.Store.Key)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	if cfg.Redis.URL == "" {
		return st, nil
	}

	client, err := store.NewRedisClient(cfg.Redis.URL)
	if err != nil {
		st.Close()
		return nil, fmt.Errorf("redis: %w", err)
	}
	if err := client.Ping(ctx).Err(); err != nil {
		slog.Warn("redis unreachable, cache reads will fall through", "error", err)
	}
	return store.WithCache(st, client, cfg.Redis.TTL), nil
}

// newPracticeService builds the Oracle provider and the services over st.
func newPracticeService(ctx context.Context, cfg config.Config, st store.Store) (*practice.Service, error) {
	provider, err := llm.NewProvider(ctx, cfg.LLM, st.EventRepo())
	if err != nil {
		return nil, fmt.Errorf("llm provider: %w", err)
	}

	return practice.NewService(
		problemgen.New(provider, problemgen.DefaultConfig()),
		grading.NewFeedbackWriter(provider, grading.DefaultFeedbackConfig()),
		st.ProblemRepo(),
	), nil
}
