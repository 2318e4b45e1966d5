package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	appTriage "github.com/mediverse/backend/internal/application/triage"
	"github.com/mediverse/backend/internal/domain/triage"
	"github.com/mediverse/backend/internal/infrastructure/log"
	"github.com/mediverse/backend/internal/interfaces/http/response"
)

// TriageHandler 分诊会话处理器
type TriageHandler struct {
	service *appTriage.Service
}

// NewTriageHandler 创建分诊处理器
func NewTriageHandler(service *appTriage.Service) *TriageHandler {
	return &TriageHandler{service: service}
}

// Start 开始分诊会话
// @Summary 开始分诊
// @Tags 分诊
// @Accept json
// @Produce json
// @Param body body appTriage.StartSessionDTO false "用户信息"
// @Success 200 {object} response.Response{data=appTriage.StartSessionResultDTO}
// @Router /triage/start [post]
func (h *TriageHandler) Start(c *gin.Context) {
	var dto appTriage.StartSessionDTO
	if err := c.ShouldBindJSON(&dto); err != nil && !errors.Is(err, io.EOF) {
		response.Error(c, http.StatusBadRequest, 120001, "Invalid request: "+err.Error())
		return
	}

	session, err := h.service.Start(c.Request.Context(), dto.UserID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, 120004, "Failed to create session")
		return
	}

	response.Success(c, appTriage.StartSessionResultDTO{
		SessionID:      session.SessionID,
		InitialMessage: session.Messages[0].Content,
	})
}

// SendMessage 发送一轮患者消息
// @Summary 发送分诊消息
// @Tags 分诊
// @Accept json
// @Produce json
// @Param body body appTriage.SendMessageDTO true "消息"
// @Success 200 {object} response.Response{data=appTriage.SendMessageResultDTO}
// @Failure 404 {object} response.ErrorResponse
// @Router /triage/message [post]
func (h *TriageHandler) SendMessage(c *gin.Context) {
	var dto appTriage.SendMessageDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.Error(c, http.StatusBadRequest, 120001, "Invalid request: "+err.Error())
		return
	}

	ctx := log.WithSessionID(c.Request.Context(), dto.SessionID)
	result, err := h.service.SendMessage(ctx, &dto)
	switch {
	case err == nil:
		response.Success(c, result)
	case errors.Is(err, triage.ErrSessionNotFound):
		response.Error(c, http.StatusNotFound, 120002, "Session not found")
	case errors.Is(err, triage.ErrEmptyMessage):
		response.Error(c, http.StatusBadRequest, 120003, "Message is empty")
	default:
		response.Error(c, http.StatusInternalServerError, 120004, "Error processing message")
	}
}

// GetConversation 读取会话全文
// @Summary 获取分诊会话
// @Tags 分诊
// @Produce json
// @Param session_id path string true "会话 ID"
// @Success 200 {object} response.Response{data=triage.Session}
// @Failure 404 {object} response.ErrorResponse
// @Router /triage/conversation/{session_id} [get]
func (h *TriageHandler) GetConversation(c *gin.Context) {
	session, err := h.service.Get(c.Param("session_id"))
	if err != nil {
		if errors.Is(err, triage.ErrSessionNotFound) {
			response.Error(c, http.StatusNotFound, 120002, "Conversation not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, 120004, "Error retrieving conversation")
		return
	}
	response.Success(c, session)
}

// ListSessions 会话列表，user_id 为空时返回全部
// @Summary 分诊会话列表
// @Tags 分诊
// @Produce json
// @Param user_id query string false "用户 ID"
// @Success 200 {object} response.Response
// @Router /triage/sessions [get]
func (h *TriageHandler) ListSessions(c *gin.Context) {
	response.Success(c, gin.H{
		"sessions": h.service.SessionSummaries(c.Query("user_id")),
	})
}

// DeleteSession 删除会话
// @Summary 删除分诊会话
// @Tags 分诊
// @Produce json
// @Param session_id path string true "会话 ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.ErrorResponse
// @Router /triage/session/{session_id} [delete]
func (h *TriageHandler) DeleteSession(c *gin.Context) {
	deleted, err := h.service.Delete(c.Param("session_id"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, 120004, "Error deleting session")
		return
	}
	if !deleted {
		response.Error(c, http.StatusNotFound, 120002, "Session not found")
		return
	}
	response.Success(c, gin.H{"message": "Session deleted successfully"})
}
