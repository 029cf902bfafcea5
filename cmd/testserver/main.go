package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"

	"github.com/gorilla/mux"
	goredis "github.com/redis/go-redis/v9"

	"github.com/bitechdev/RedisScriptCache/pkg/common"
	"github.com/bitechdev/RedisScriptCache/pkg/common/adapters/store"
	"github.com/bitechdev/RedisScriptCache/pkg/config"
	"github.com/bitechdev/RedisScriptCache/pkg/httpapi"
	"github.com/bitechdev/RedisScriptCache/pkg/localstore"
	"github.com/bitechdev/RedisScriptCache/pkg/logger"
	"github.com/bitechdev/RedisScriptCache/pkg/scriptcache"
)

func main() {
	fmt.Println("ScriptCache test server starting")

	cfgPath := flag.String("config", "", "path to TOML config file")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Init(cfg.DevLog)

	scriptStore, err := initStore(cfg)
	if err != nil {
		logger.Error("Failed to initialize script store: %+v", err)
		os.Exit(1)
	}

	cache := scriptcache.NewCache(scriptStore)
	if cfg.ScriptDir != "" {
		names, err := cache.RegisterAllScripts(context.Background(), cfg.ScriptDir)
		if err != nil {
			logger.Error("Failed to register scripts from %s: %+v", cfg.ScriptDir, err)
			os.Exit(1)
		}
		logger.Info("Preloaded scripts: %v", names)
	}

	r := mux.NewRouter()
	httpapi.NewHandler(cache).Routes(r)

	logger.Info("Starting server on %s", cfg.Listen)
	if err := http.ListenAndServe(cfg.Listen, r); err != nil {
		logger.Error("Server failed to start: %v", err)
		os.Exit(1)
	}
}

func initStore(cfg *config.Config) (common.ScriptStore, error) {
	switch cfg.Backend {
	case config.BackendRedis:
		client := goredis.NewClient(&goredis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := client.Ping(context.Background()).Err(); err != nil {
			return nil, fmt.Errorf("connecting to redis at %s: %w", cfg.Redis.Addr, err)
		}
		logger.Info("Using redis store at %s", cfg.Redis.Addr)
		return store.NewGoRedisAdapter(client), nil
	case config.BackendLocal:
		logger.Info("Using in-process local store")
		return localstore.New(), nil
	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
}
