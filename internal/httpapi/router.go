package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/cumbersomeamir/lumina-spaces/internal/common"
	"github.com/cumbersomeamir/lumina-spaces/internal/config"
	"github.com/cumbersomeamir/lumina-spaces/internal/httpapi/handlers"
	"github.com/cumbersomeamir/lumina-spaces/internal/httpapi/middleware"
	"github.com/cumbersomeamir/lumina-spaces/internal/store/rabbitmq"
	"github.com/cumbersomeamir/lumina-spaces/internal/store/redisstore"
)

func NewRouter(db *gorm.DB, cfg config.Config, rds *redisstore.Store, pub *rabbitmq.Publisher, log *zap.SugaredLogger) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(gin.Logger())
	r.Use(middleware.Recovery(log))
	r.Use(middleware.RequestID())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", middleware.RequestIDHeader},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	r.NoRoute(func(c *gin.Context) {
		common.Fail(c, http.StatusNotFound, 40400, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		common.Fail(c, http.StatusMethodNotAllowed, 40500, "method not allowed")
	})

	h := handlers.NewHandler(db, cfg, rds, pub, log)

	r.GET("/ping", h.Ping)
	r.GET("/styles", h.ListStyles)

	r.POST("/sessions", h.CreateSession)
	r.GET("/sessions/:session_id", h.GetSession)
	r.POST("/sessions/:session_id/image", h.UploadImage)
	r.POST("/sessions/:session_id/reset", h.ResetSession)

	r.POST("/sessions/:session_id/style", h.ApplyStyle)
	r.POST("/sessions/:session_id/generations", h.CreateGenerationJob)
	r.GET("/generations/:job_id", h.GetGenerationJob)

	r.POST("/sessions/:session_id/messages", h.SendChatMessage)
	r.GET("/sessions/:session_id/messages", h.ListChatMessages)

	return r
}
