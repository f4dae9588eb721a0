package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"go-blogadmin/internal/boot"

	"go.uber.org/zap"
)

func main() {
	// CONFIG_PATH 指定配置文件，默认 dev，缺失时回退 example
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "configs/config.dev.yaml"
	}
	if _, err := os.Stat(cfgPath); err != nil {
		fallback := "configs/config.example.yaml"
		if _, err2 := os.Stat(fallback); err2 == nil {
			log.Printf("config %s not found, fallback to %s", cfgPath, fallback)
			cfgPath = fallback
		} else {
			log.Fatalf("config file not found: %s (fallback %s also missing)", cfgPath, fallback)
		}
	}
	if abs, err := filepath.Abs(cfgPath); err == nil {
		cfgPath = abs
	}

	app, err := boot.InitApp(cfgPath)
	if err != nil {
		log.Fatalf("init app: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() { errCh <- app.Run() }()

	select {
	case <-ctx.Done():
		app.Logger.Info("shutting_down")
	case err := <-errCh:
		if err != nil {
			app.Logger.Error("http_server_error", zap.Error(err))
		}
	}
	app.Close()
}
