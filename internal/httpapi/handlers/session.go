package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/cumbersomeamir/lumina-spaces/internal/common"
	"github.com/cumbersomeamir/lumina-spaces/internal/studio"
)

func (h *Handler) CreateSession(c *gin.Context) {
	sess, err := h.Svc.CreateSession(c.Request.Context())
	if err != nil {
		h.Log.Errorw("create session failed", "err", err)
		common.Fail(c, http.StatusInternalServerError, 50001, "failed to create session")
		return
	}
	common.Ok(c, sess)
}

func (h *Handler) GetSession(c *gin.Context) {
	sess, err := h.Svc.GetSession(c.Request.Context(), c.Param("session_id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			common.Fail(c, http.StatusNotFound, 40401, "session not found")
			return
		}
		common.Fail(c, http.StatusInternalServerError, 50001, "internal error")
		return
	}
	common.Ok(c, sess)
}

type uploadImageReq struct {
	Image string `json:"image" binding:"required"`
}

func (h *Handler) UploadImage(c *gin.Context) {
	var req uploadImageReq
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Fail(c, http.StatusBadRequest, 10001, "invalid json")
		return
	}

	sess, err := h.Svc.UploadImage(c.Request.Context(), c.Param("session_id"), req.Image)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			common.Fail(c, http.StatusNotFound, 40401, "session not found")
		case errors.Is(err, studio.ErrInvalidImage):
			common.Fail(c, http.StatusBadRequest, 10002, "image must be a data url")
		default:
			h.Log.Errorw("upload failed", "session_id", c.Param("session_id"), "err", err)
			common.Fail(c, http.StatusInternalServerError, 50001, "internal error")
		}
		return
	}
	common.Ok(c, sess)
}

func (h *Handler) ResetSession(c *gin.Context) {
	sess, err := h.Svc.Reset(c.Request.Context(), c.Param("session_id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			common.Fail(c, http.StatusNotFound, 40401, "session not found")
			return
		}
		h.Log.Errorw("reset failed", "session_id", c.Param("session_id"), "err", err)
		common.Fail(c, http.StatusInternalServerError, 50001, "internal error")
		return
	}
	common.Ok(c, sess)
}

func (h *Handler) ListStyles(c *gin.Context) {
	common.Ok(c, gin.H{"styles": studio.Styles()})
}
