package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mediverse/backend/internal/application/notification"
	"github.com/mediverse/backend/internal/infrastructure/websocket"
	"github.com/mediverse/backend/internal/interfaces/http/response"
)

// NotificationHandler 医生端通知处理器
type NotificationHandler struct {
	service *notification.Service
	hub     *websocket.Hub
}

// NewNotificationHandler 创建通知处理器
func NewNotificationHandler(service *notification.Service, hub *websocket.Hub) *NotificationHandler {
	return &NotificationHandler{service: service, hub: hub}
}

// Recent 医生最近的通知
// @Summary 医生通知列表
// @Tags 通知
// @Produce json
// @Param doctor_id path string true "医生 ID"
// @Success 200 {object} response.Response
// @Router /notifications/doctor/{doctor_id} [get]
func (h *NotificationHandler) Recent(c *gin.Context) {
	list, err := h.service.Recent(c.Param("doctor_id"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, 100004, "Failed to load notifications")
		return
	}
	response.Success(c, gin.H{"notifications": list})
}

// QueueStream 医生候诊队列的 WebSocket 推送
// @Summary 候诊队列实时推送
// @Tags 通知
// @Param doctor_id path string true "医生 ID"
// @Router /ws/queue/{doctor_id} [get]
func (h *NotificationHandler) QueueStream(c *gin.Context) {
	doctorID := c.Param("doctor_id")
	if doctorID == "" {
		response.Error(c, http.StatusBadRequest, 100001, "doctor_id is required")
		return
	}
	h.hub.ServeDoctor(c.Writer, c.Request, doctorID)
}
