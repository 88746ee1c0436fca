// matchkitd 是匹配引擎的 HTTP 服务进程：
// 读取配置、装配目录来源与存储、构建引擎并启动 API 服务。
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/rushteam/matchkit/config"
	"github.com/rushteam/matchkit/core"
	"github.com/rushteam/matchkit/dataset"
	"github.com/rushteam/matchkit/engine"
	"github.com/rushteam/matchkit/feast"
	"github.com/rushteam/matchkit/service"
	"github.com/rushteam/matchkit/store"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file (defaults apply when omitted)")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.LoadFromYAML(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "load config %s: %v\n", *configPath, err)
			os.Exit(1)
		}
		cfg = loaded
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(1)
	}

	logger := buildLogger(cfg.Server)
	defer logger.Sync()
	gin.SetMode(ginMode(cfg.Server.Mode))

	kv, err := buildStore(cfg)
	if err != nil {
		logger.Fatal("connect store", zap.String("addr", cfg.Redis.Addr), zap.Error(err))
	}

	src, err := buildSource(cfg, kv, logger)
	if err != nil {
		logger.Fatal("build catalog source", zap.Error(err))
	}

	engineOpts := []engine.Option{engine.WithSource(src)}
	if kv != nil {
		engineOpts = append(engineOpts, engine.WithStore(kv))
	}
	eng, err := engine.New(cfg.Engine, engineOpts...)
	if err != nil {
		logger.Fatal("build engine", zap.Error(err))
	}

	if err := eng.Reload(context.Background()); err != nil {
		logger.Fatal("load catalog", zap.Error(err))
	}
	st := eng.Stats()
	logger.Info("catalog loaded",
		zap.Int("services", st.TotalServices),
		zap.String("source", st.Source),
		zap.Strings("strategies", st.Strategies),
	)

	serverOpts := []service.Option{service.WithLogger(logger)}
	if kv != nil {
		serverOpts = append(serverOpts, service.WithStore(kv))
	}
	srv := service.NewServer(eng, serverOpts...)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Run(cfg.Server.Addr)
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Info("shutting down", zap.String("signal", sig.String()))
		if kv != nil {
			if err := kv.Close(); err != nil {
				logger.Warn("close store", zap.Error(err))
			}
		}
	case err := <-errCh:
		logger.Fatal("server exited", zap.Error(err))
	}
}

// buildLogger 按配置的级别与运行模式构建 zap logger，失败时退回 Nop。
func buildLogger(cfg config.ServerConfig) *zap.Logger {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		level = zapcore.InfoLevel
	}

	var zcfg zap.Config
	if cfg.Mode == "debug" {
		zcfg = zap.NewDevelopmentConfig()
	} else {
		zcfg = zap.NewProductionConfig()
	}
	zcfg.Level = zap.NewAtomicLevelAt(level)

	logger, err := zcfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

func ginMode(mode string) string {
	switch mode {
	case "debug":
		return gin.DebugMode
	case "test":
		return gin.TestMode
	default:
		return gin.ReleaseMode
	}
}

// buildStore 按配置连接 Redis；未配置地址时返回 nil（纯内存单实例模式）。
func buildStore(cfg *config.Config) (core.KeyValueStore, error) {
	if cfg.Redis.Addr == "" {
		return nil, nil
	}
	return store.NewRedisStore(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
}

// buildSource 装配目录来源链：
// 基础来源（csv 带内置样例兜底 / sample / store）→ 清洗 → 可选 Feast 属性富集。
func buildSource(cfg *config.Config, kv core.KeyValueStore, logger *zap.Logger) (core.CatalogSource, error) {
	var base core.CatalogSource
	switch cfg.Dataset.Source {
	case "csv":
		base = &dataset.FallbackSource{
			Primary:  &dataset.CSVSource{Path: cfg.Dataset.CSVPath},
			Fallback: dataset.SampleSource{},
		}
	case "store":
		if kv == nil {
			return nil, core.NewInvalidConfigError(core.ModuleConfig, "dataset source store requires redis.addr")
		}
		base = store.NewSource(kv)
	default:
		base = dataset.SampleSource{}
	}

	var src core.CatalogSource = dataset.NewCleanSource(base)

	if cfg.Feast.Enabled {
		client, err := feast.NewClient(cfg.Feast.Addr, cfg.Feast.Project)
		if err != nil {
			return nil, err
		}
		src = &feast.Source{Base: src, Client: client, Project: cfg.Feast.Project}
		logger.Info("feast enrichment enabled",
			zap.String("addr", cfg.Feast.Addr),
			zap.String("project", cfg.Feast.Project),
		)
	}
	return src, nil
}
