package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mediverse/backend/internal/application/summary"
	"github.com/mediverse/backend/internal/interfaces/http/response"
)

// SummaryHandler 患者摘要处理器
type SummaryHandler struct {
	service *summary.PatientService
}

// NewSummaryHandler 创建患者摘要处理器
func NewSummaryHandler(service *summary.PatientService) *SummaryHandler {
	return &SummaryHandler{service: service}
}

// PatientSummary 生成就诊前患者摘要，模型失败时 data.success 为 false
// @Summary 患者摘要
// @Tags 患者摘要
// @Accept json
// @Produce json
// @Param body body summary.PatientSummaryDTO true "患者"
// @Success 200 {object} response.Response{data=summary.PatientSummaryResultDTO}
// @Router /patient-summary [post]
func (h *SummaryHandler) PatientSummary(c *gin.Context) {
	var dto summary.PatientSummaryDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.Error(c, http.StatusBadRequest, 150001, "Invalid request: "+err.Error())
		return
	}
	response.Success(c, h.service.Generate(c.Request.Context(), &dto))
}
