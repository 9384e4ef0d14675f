package main

import (
	"go.uber.org/zap"

	"github.com/cumbersomeamir/lumina-spaces/internal/config"
	"github.com/cumbersomeamir/lumina-spaces/internal/db"
	"github.com/cumbersomeamir/lumina-spaces/internal/httpapi"
	"github.com/cumbersomeamir/lumina-spaces/internal/store/rabbitmq"
	"github.com/cumbersomeamir/lumina-spaces/internal/store/redisstore"
	"github.com/cumbersomeamir/lumina-spaces/internal/studio"
)

func main() {
	logger, _ := zap.NewProduction()
	defer func() { _ = logger.Sync() }()
	log := logger.Sugar()

	cfg := config.Load()

	gdb := db.Connect(cfg.DBDSN)
	if err := gdb.AutoMigrate(&studio.Session{}, &studio.Message{}, &studio.GenerationJob{}); err != nil {
		log.Fatalw("automigrate", "err", err)
	}

	rds := redisstore.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	defer rds.Close()

	pub, err := rabbitmq.NewPublisher(cfg.RabbitURL, cfg.RabbitQueue)
	if err != nil {
		log.Fatalw("rabbit connect", "err", err)
	}
	defer pub.Close()

	r := httpapi.NewRouter(gdb, cfg, rds, pub, log)

	log.Infow("server listening", "addr", cfg.HTTPAddr)
	if err := r.Run(cfg.HTTPAddr); err != nil {
		log.Fatalw("server exited", "err", err)
	}
}
