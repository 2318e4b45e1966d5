package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mediverse/backend/internal/application/doctorchat"
	"github.com/mediverse/backend/internal/interfaces/http/response"
)

// DoctorChatHandler 医生助手处理器
type DoctorChatHandler struct {
	service *doctorchat.Service
}

// NewDoctorChatHandler 创建医生助手处理器
func NewDoctorChatHandler(service *doctorchat.Service) *DoctorChatHandler {
	return &DoctorChatHandler{service: service}
}

// Chat 医生提问
// @Summary 医生助手对话
// @Tags 医生助手
// @Accept json
// @Produce json
// @Param body body doctorchat.ChatDTO true "提问"
// @Success 200 {object} response.Response{data=doctorchat.ChatResultDTO}
// @Router /doctor-chat/chat [post]
func (h *DoctorChatHandler) Chat(c *gin.Context) {
	var dto doctorchat.ChatDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.Error(c, http.StatusBadRequest, 170001, "Invalid request: "+err.Error())
		return
	}
	response.Success(c, h.service.Chat(c.Request.Context(), &dto))
}

// Context 助手可见上下文概览
// @Summary 医生助手上下文
// @Tags 医生助手
// @Produce json
// @Param doctor_id path string true "医生 ID"
// @Success 200 {object} response.Response{data=doctorchat.ContextDTO}
// @Router /doctor-chat/context/{doctor_id} [get]
func (h *DoctorChatHandler) Context(c *gin.Context) {
	response.Success(c, h.service.Context(c.Param("doctor_id")))
}
