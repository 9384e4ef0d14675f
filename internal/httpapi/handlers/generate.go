package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/cumbersomeamir/lumina-spaces/internal/common"
	"github.com/cumbersomeamir/lumina-spaces/internal/genai"
	"github.com/cumbersomeamir/lumina-spaces/internal/studio"
)

type applyStyleReq struct {
	StyleID string `json:"style_id" binding:"required"`
}

// ApplyStyle runs a synchronous style synthesis. A failed synthesis is the
// one error surfaced as a blocking notification to the user.
func (h *Handler) ApplyStyle(c *gin.Context) {
	var req applyStyleReq
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Fail(c, http.StatusBadRequest, 10001, "invalid json")
		return
	}

	sess, err := h.Svc.ApplyStyle(c.Request.Context(), c.Param("session_id"), req.StyleID)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			common.Fail(c, http.StatusNotFound, 40401, "session not found")
		case errors.Is(err, studio.ErrNoOriginalImage):
			common.Fail(c, http.StatusBadRequest, 10003, "upload a room photo first")
		case errors.Is(err, studio.ErrUnknownStyle):
			common.Fail(c, http.StatusBadRequest, 10004, "unknown style")
		case errors.Is(err, genai.ErrGenerationFailed):
			common.Fail(c, http.StatusBadGateway, 50201, "failed to reimagine space, please try again")
		default:
			h.Log.Errorw("apply style failed", "session_id", c.Param("session_id"), "err", err)
			common.Fail(c, http.StatusInternalServerError, 50001, "internal error")
		}
		return
	}
	common.Ok(c, sess)
}

// CreateGenerationJob enqueues an asynchronous style synthesis.
func (h *Handler) CreateGenerationJob(c *gin.Context) {
	var req applyStyleReq
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Fail(c, http.StatusBadRequest, 10001, "invalid json")
		return
	}

	job, err := h.Svc.CreateGenerationJob(c.Request.Context(), c.Param("session_id"), req.StyleID)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			common.Fail(c, http.StatusNotFound, 40401, "session not found")
		case errors.Is(err, studio.ErrNoOriginalImage):
			common.Fail(c, http.StatusBadRequest, 10003, "upload a room photo first")
		case errors.Is(err, studio.ErrUnknownStyle):
			common.Fail(c, http.StatusBadRequest, 10004, "unknown style")
		default:
			h.Log.Errorw("create generation job failed", "session_id", c.Param("session_id"), "err", err)
			common.Fail(c, http.StatusInternalServerError, 50001, "internal error")
		}
		return
	}

	if err := h.Rabbit.PublishJob(c.Request.Context(), job.ID); err != nil {
		h.Log.Errorw("publish generation job failed", "job_id", job.ID, "err", err)
		common.Fail(c, http.StatusInternalServerError, 50002, "enqueue failed")
		return
	}

	common.Ok(c, gin.H{"job_id": job.ID})
}

func (h *Handler) GetGenerationJob(c *gin.Context) {
	jobID := c.Param("job_id")
	if jobID == "" {
		common.Fail(c, http.StatusBadRequest, 10005, "job_id required")
		return
	}

	j, err := h.Svc.GetJob(c.Request.Context(), jobID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			common.Fail(c, http.StatusNotFound, 40402, "job not found")
			return
		}
		common.Fail(c, http.StatusInternalServerError, 50001, "internal error")
		return
	}

	common.Ok(c, gin.H{
		"job": gin.H{
			"id":         j.ID,
			"session_id": j.SessionID,
			"style_id":   j.StyleID,
			"status":     j.Status,
			"error":      j.Error,
			"created_at": j.CreatedAt,
			"updated_at": j.UpdatedAt,
		},
	})
}
