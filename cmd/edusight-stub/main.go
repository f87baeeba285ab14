package main

import (
	"fmt"
	"log"

	"github.com/noah-isme/edusight/internal/stub"
	"github.com/noah-isme/edusight/pkg/config"
	"github.com/noah-isme/edusight/pkg/logger"
)

// edusight-stub serves the in-memory backend fixture for local development.
// All state is lost on exit; the demo roster is reseeded at startup.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	srv := stub.New(stub.Options{
		Logger:         logr,
		CodeTTL:        cfg.Stub.CodeTTL,
		AllowedOrigins: cfg.Stub.AllowedOrigins,
	})

	addr := fmt.Sprintf(":%d", cfg.Stub.Port)
	logr.Sugar().Infow("stub backend starting", "addr", addr, "teacher", stub.DemoTeacherEmail)
	if err := srv.Router().Run(addr); err != nil {
		logr.Sugar().Fatalw("stub backend failed", "error", err)
	}
}
