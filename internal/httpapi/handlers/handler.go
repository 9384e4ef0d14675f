package handlers

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/cumbersomeamir/lumina-spaces/internal/common"
	"github.com/cumbersomeamir/lumina-spaces/internal/config"
	"github.com/cumbersomeamir/lumina-spaces/internal/genai"
	"github.com/cumbersomeamir/lumina-spaces/internal/store/rabbitmq"
	"github.com/cumbersomeamir/lumina-spaces/internal/store/redisstore"
	"github.com/cumbersomeamir/lumina-spaces/internal/studio"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	Cfg    config.Config
	Svc    *studio.Service
	Redis  *redisstore.Store
	Rabbit *rabbitmq.Publisher
	Log    *zap.SugaredLogger
}

func NewHandler(db *gorm.DB, cfg config.Config, rds *redisstore.Store, pub *rabbitmq.Publisher, log *zap.SugaredLogger) *Handler {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	repo := studio.NewRepo(db)
	client := genai.NewClient(cfg.GeminiBaseURL, cfg.GeminiAPIKey, cfg.GeminiImageModel, cfg.GeminiTextModel)
	svc := studio.NewService(repo, client, cfg.ChatHistoryWindow, log)
	return &Handler{
		Cfg:    cfg,
		Svc:    svc,
		Redis:  rds,
		Rabbit: pub,
		Log:    log,
	}
}

func (h *Handler) Ping(c *gin.Context) {
	common.Ok(c, gin.H{"status": "ok"})
}
