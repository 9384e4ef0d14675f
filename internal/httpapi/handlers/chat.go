package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/cumbersomeamir/lumina-spaces/internal/common"
)

// busyTTL bounds how long the advisory in-flight flag can outlive a crashed
// handler.
const busyTTL = 2 * time.Minute

type sendMessageReq struct {
	Text string `json:"text" binding:"required"`
}

// SendChatMessage appends the user's message and dispatches it to either an
// image edit or an advice call. Dispatch failures come back as a transcript
// apology, not an HTTP error.
func (h *Handler) SendChatMessage(c *gin.Context) {
	sessionID := c.Param("session_id")

	var req sendMessageReq
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Fail(c, http.StatusBadRequest, 10001, "invalid json")
		return
	}

	// advisory gate: one chat dispatch in flight per session
	if h.Redis != nil {
		acquired, err := h.Redis.AcquireChatBusy(c.Request.Context(), sessionID, busyTTL)
		if err != nil {
			h.Log.Warnw("busy flag unavailable", "session_id", sessionID, "err", err)
		} else if !acquired {
			common.Fail(c, http.StatusConflict, 40901, "a message is already being processed")
			return
		} else {
			defer func() {
				_ = h.Redis.ReleaseChatBusy(c.Request.Context(), sessionID)
			}()
		}
	}

	reply, err := h.Svc.SendMessage(c.Request.Context(), sessionID, req.Text)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			common.Fail(c, http.StatusNotFound, 40401, "session not found")
			return
		}
		h.Log.Errorw("send message failed", "session_id", sessionID, "err", err)
		common.Fail(c, http.StatusInternalServerError, 50001, "internal error")
		return
	}

	// reply is nil when the session was reset while the call was in flight
	common.Ok(c, gin.H{"reply": reply})
}

func (h *Handler) ListChatMessages(c *gin.Context) {
	sessionID := c.Param("session_id")

	limit, _ := strconv.Atoi(c.Query("limit"))
	var afterID uint64
	if v := c.Query("after_id"); v != "" {
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			afterID = n
		}
	}

	msgs, err := h.Svc.ListMessages(c.Request.Context(), sessionID, limit, afterID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			common.Fail(c, http.StatusNotFound, 40401, "session not found")
			return
		}
		common.Fail(c, http.StatusInternalServerError, 50002, "failed to list messages")
		return
	}

	common.Ok(c, gin.H{"messages": msgs})
}
