package cli

import (
	"context"
	"fmt"

	goredis "github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/bitechdev/RedisScriptCache/pkg/common"
	"github.com/bitechdev/RedisScriptCache/pkg/common/adapters/store"
	"github.com/bitechdev/RedisScriptCache/pkg/config"
	"github.com/bitechdev/RedisScriptCache/pkg/localstore"
	"github.com/bitechdev/RedisScriptCache/pkg/scriptcache"
)

// Version is set at build time via ldflags.
var Version = "dev"

var (
	flagConfig    string
	flagBackend   string
	flagRedisAddr string
	flagScriptDir string
)

var rootCmd = &cobra.Command{
	Use:   "scriptctl",
	Short: "Register and invoke server-stored scripts by name",
	Long: `scriptctl registers Lua scripts on a scripting store under
content-derived identifiers and invokes them by name, so script text is
transmitted at most once per name.`,
}

func init() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("scriptctl version {{.Version}}\n")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to TOML config file")
	rootCmd.PersistentFlags().StringVar(&flagBackend, "backend", "", "script store backend: redis or local")
	rootCmd.PersistentFlags().StringVar(&flagRedisAddr, "redis-addr", "", "redis address, host:port")
	rootCmd.PersistentFlags().StringVar(&flagScriptDir, "scripts", "", "directory of .lua scripts to register before running the command")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// loadConfig merges flags over the config file.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, err
	}
	if flagBackend != "" {
		cfg.Backend = flagBackend
	}
	if flagRedisAddr != "" {
		cfg.Redis.Addr = flagRedisAddr
	}
	if flagScriptDir != "" {
		cfg.ScriptDir = flagScriptDir
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newCache builds the cache for one command run, registering the
// configured script directory first when one is set. scriptctl is a
// one-shot process, so invoke and list only see scripts registered this
// way.
func newCache(ctx context.Context) (*scriptcache.Cache, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	scriptStore, err := newStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	cache := scriptcache.NewCache(scriptStore)
	if cfg.ScriptDir != "" {
		if _, err := cache.RegisterAllScripts(ctx, cfg.ScriptDir); err != nil {
			return nil, err
		}
	}
	return cache, nil
}

func newStore(ctx context.Context, cfg *config.Config) (common.ScriptStore, error) {
	switch cfg.Backend {
	case config.BackendRedis:
		client := goredis.NewClient(&goredis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("connecting to redis at %s: %w", cfg.Redis.Addr, err)
		}
		return store.NewGoRedisAdapter(client), nil
	case config.BackendLocal:
		return localstore.New(), nil
	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
}
