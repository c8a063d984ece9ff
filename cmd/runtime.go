package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/boardprep/internal/config"
	"github.com/abhisek/boardprep/internal/llm"
	"github.com/abhisek/boardprep/internal/logger"
	"github.com/abhisek/boardprep/internal/questiongen"
	"github.com/abhisek/boardprep/internal/session"
	"github.com/abhisek/boardprep/internal/store"
)

// runtime bundles the dependencies a command needs. Close releases them in
// reverse order of acquisition.
type runtime struct {
	Config *config.Config
	Logger *zap.Logger
	KV     store.KV
	Events store.EventRepo // nil on the memory backend

	closers []func()
}

func (r *runtime) Close() {
	for i := len(r.closers) - 1; i >= 0; i-- {
		r.closers[i]()
	}
}

// loadConfig reads configuration and applies the persistent flag overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(config.Options{ConfigFile: cfgFile})
	if err != nil {
		return nil, err
	}
	if backend, _ := cmd.Flags().GetString("store"); backend != "" {
		cfg.Store.Backend = backend
	}
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		cfg.Store.Path = p
	}
	return cfg, cfg.Validate()
}

// resolveDBPath returns the database path using --db / store.path
// (highest priority), then BOARDPREP_DB, then the default XDG path.
func resolveDBPath(cfg *config.Config) (string, error) {
	if cfg.Store.Path != "" {
		return cfg.Store.Path, store.EnsureDir(cfg.Store.Path)
	}
	return store.DefaultDBPath()
}

// openRuntime loads config, builds the logger and opens the configured store.
func openRuntime(cmd *cobra.Command) (*runtime, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	dbPath, err := resolveDBPath(cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}

	logFile := cfg.Log.File
	if logFile == "" {
		logFile = logger.DefaultFile(dbPath)
	}
	log, closeLog, err := logger.New(logger.Options{Env: cfg.Env, Level: cfg.Log.Level, File: logFile})
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	rt := &runtime{Config: cfg, Logger: log, closers: []func(){closeLog}}
	if err := rt.openStore(cmd.Context(), dbPath); err != nil {
		rt.Close()
		return nil, err
	}
	log.Debug("runtime ready",
		zap.String("backend", cfg.Store.Backend),
		zap.String("db", dbPath),
		zap.Bool("llm", cfg.LLMConfigured()))
	return rt, nil
}

func (r *runtime) openStore(ctx context.Context, dbPath string) error {
	switch r.Config.Store.Backend {
	case config.BackendMemory:
		r.KV = store.NewMemoryKV()
		return nil

	case config.BackendRedis:
		client, err := store.DialRedis(ctx, store.RedisConfig{
			Address:  r.Config.Redis.Address,
			Password: r.Config.Redis.Password,
			DB:       r.Config.Redis.DB,
			Prefix:   r.Config.Redis.Prefix,
		})
		if err != nil {
			return err
		}
		r.closers = append(r.closers, closeRedis(client, r.Logger))
		r.KV = store.NewRedisKV(client, r.Config.Redis.Prefix)

		// The event log stays in SQLite.
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		r.closers = append(r.closers, func() { st.Close() })
		r.Events = st.EventRepo()
		return nil

	default:
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		r.closers = append(r.closers, func() { st.Close() })
		r.KV = st.KV()
		r.Events = st.EventRepo()
		return nil
	}
}

func closeRedis(client *redis.Client, log *zap.Logger) func() {
	return func() {
		if err := client.Close(); err != nil {
			log.Warn("close redis", zap.Error(err))
		}
	}
}

// questionSource builds the selector, with a remote generator when an LLM
// provider is configured.
func (r *runtime) questionSource(ctx context.Context) *questiongen.Selector {
	if !r.Config.LLMConfigured() {
		fmt.Fprintln(os.Stderr, "LLM provider not configured: only chapters with bundled questions are available.")
		return questiongen.NewSelector(nil)
	}
	provider, err := llm.NewProvider(ctx, r.Config.LLM, r.Events, r.Logger)
	if err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "Only chapters with bundled questions are available.")
		return questiongen.NewSelector(nil)
	}
	return questiongen.NewSelector(questiongen.New(provider, questiongen.DefaultConfig()))
}

// controller builds the quiz controller and restores persisted state.
// src may be nil for commands that never start a quiz.
func (r *runtime) controller(ctx context.Context, src session.Source) *session.Controller {
	ctrl := session.New(session.Options{
		Store:  r.KV,
		Source: src,
		Events: r.Events,
		Logger: r.Logger,
	})
	ctrl.Load(ctx)
	return ctrl
}

// openEventLog opens the runtime for commands that read the event log.
func openEventLog(cmd *cobra.Command) (*runtime, store.EventRepo, error) {
	rt, err := openRuntime(cmd)
	if err != nil {
		return nil, nil, err
	}
	if rt.Events == nil {
		rt.Close()
		return nil, nil, fmt.Errorf("the %s backend keeps no event log", rt.Config.Store.Backend)
	}
	return rt, rt.Events, nil
}
