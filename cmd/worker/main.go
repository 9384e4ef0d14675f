package main

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/cumbersomeamir/lumina-spaces/internal/config"
	"github.com/cumbersomeamir/lumina-spaces/internal/db"
	"github.com/cumbersomeamir/lumina-spaces/internal/genai"
	"github.com/cumbersomeamir/lumina-spaces/internal/studio"
)

type jobMsg struct {
	JobID string `json:"job_id"`
}

func workerConcurrency() int {
	v := os.Getenv("WORKER_CONCURRENCY")
	if v == "" {
		return 2
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 2
	}
	if n > 50 {
		return 50
	}
	return n
}

func main() {
	logger, _ := zap.NewProduction()
	defer func() { _ = logger.Sync() }()
	log := logger.Sugar()

	cfg := config.Load()

	gdb := db.Connect(cfg.DBDSN)

	repo := studio.NewRepo(gdb)
	client := genai.NewClient(cfg.GeminiBaseURL, cfg.GeminiAPIKey, cfg.GeminiImageModel, cfg.GeminiTextModel)
	svc := studio.NewService(repo, client, cfg.ChatHistoryWindow, log)

	conn, err := amqp.Dial(cfg.RabbitURL)
	if err != nil {
		log.Fatalw("rabbit dial", "err", err)
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		log.Fatalw("rabbit channel", "err", err)
	}
	defer ch.Close()

	if _, err := ch.QueueDeclare(cfg.RabbitQueue, true, false, false, false, nil); err != nil {
		log.Fatalw("queue declare", "err", err)
	}

	concurrency := workerConcurrency()

	if err := ch.Qos(concurrency, 0, false); err != nil {
		log.Fatalw("qos", "err", err)
	}

	msgs, err := ch.Consume(cfg.RabbitQueue, "", false, false, false, false, nil)
	if err != nil {
		log.Fatalw("consume", "err", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Infow("worker started", "queue", cfg.RabbitQueue, "concurrency", concurrency)

	// worker pool
	jobs := make(chan amqp.Delivery, concurrency*2)

	var wg sync.WaitGroup
	wg.Add(concurrency)
	for i := 0; i < concurrency; i++ {
		go func(workerID int) {
			defer wg.Done()
			for d := range jobs {
				var m jobMsg
				if err := json.Unmarshal(d.Body, &m); err != nil || m.JobID == "" {
					log.Warnw("bad message", "worker", workerID, "err", err)
					_ = d.Nack(false, false)
					continue
				}

				start := time.Now()
				if err := svc.RunGenerationJob(ctx, m.JobID); err != nil {
					log.Warnw("job failed",
						"worker", workerID,
						"job_id", m.JobID,
						"cost", time.Since(start),
						"err", err,
					)
					_ = d.Nack(false, false)
					continue
				}

				log.Infow("job done", "worker", workerID, "job_id", m.JobID, "cost", time.Since(start))
				if err := d.Ack(false); err != nil {
					log.Warnw("ack failed", "worker", workerID, "job_id", m.JobID, "err", err)
				}
			}
		}(i)
	}

	// dispatcher
	for {
		select {
		case <-ctx.Done():
			log.Infow("worker shutting down")
			close(jobs)
			wg.Wait()
			return

		case d, ok := <-msgs:
			if !ok {
				log.Warnw("delivery channel closed")
				time.Sleep(1 * time.Second)
				continue
			}
			jobs <- d
		}
	}
}
