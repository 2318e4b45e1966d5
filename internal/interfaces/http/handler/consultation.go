package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	appConsultation "github.com/mediverse/backend/internal/application/consultation"
	"github.com/mediverse/backend/internal/domain/consultation"
	"github.com/mediverse/backend/internal/interfaces/http/response"
)

// maxRecordingSize 录音上传上限
const maxRecordingSize = 25 << 20

// ConsultationHandler 问诊处理器
type ConsultationHandler struct {
	service *appConsultation.Service
}

// NewConsultationHandler 创建问诊处理器
func NewConsultationHandler(service *appConsultation.Service) *ConsultationHandler {
	return &ConsultationHandler{service: service}
}

// ProcessRecording 上传录音，转写并抽取问诊要点
// @Summary 处理问诊录音
// @Tags 问诊
// @Accept multipart/form-data
// @Produce json
// @Param audio formData file true "录音文件"
// @Param patient_id formData string true "患者 ID"
// @Param patient_name formData string true "患者姓名"
// @Param chief_complaint formData string false "主诉"
// @Param duration formData string false "时长"
// @Success 200 {object} response.Response{data=appConsultation.ProcessRecordingResultDTO}
// @Router /consultation/process-recording [post]
func (h *ConsultationHandler) ProcessRecording(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxRecordingSize)

	var dto appConsultation.ProcessRecordingDTO
	if err := c.ShouldBind(&dto); err != nil {
		response.Error(c, http.StatusBadRequest, 160001, "Invalid request: "+err.Error())
		return
	}
	if dto.Duration == "" {
		dto.Duration = "00:00"
	}

	header, err := c.FormFile("audio")
	if err != nil {
		response.Error(c, http.StatusBadRequest, 160001, "Audio file is required")
		return
	}
	file, err := header.Open()
	if err != nil {
		response.Error(c, http.StatusInternalServerError, 160004, "Failed to read audio file")
		return
	}
	defer file.Close()

	response.Success(c, h.service.ProcessRecording(c.Request.Context(), header.Filename, file, &dto))
}

// Save 保存问诊记录
// @Summary 保存问诊
// @Tags 问诊
// @Accept json
// @Produce json
// @Param body body appConsultation.SaveDTO true "问诊"
// @Success 200 {object} response.Response
// @Router /consultation/save [post]
func (h *ConsultationHandler) Save(c *gin.Context) {
	var dto appConsultation.SaveDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.Error(c, http.StatusBadRequest, 160001, "Invalid request: "+err.Error())
		return
	}

	saved, err := h.service.Save(c.Request.Context(), &dto)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, 160004, "Failed to save consultation")
		return
	}
	response.Success(c, gin.H{
		"consultation_id": saved.ConsultationID,
		"message":         "Consultation saved successfully",
	})
}

// Get 读取问诊记录
// @Summary 获取问诊
// @Tags 问诊
// @Produce json
// @Param consultation_id path string true "问诊 ID"
// @Success 200 {object} response.Response{data=consultation.Consultation}
// @Failure 404 {object} response.ErrorResponse
// @Router /consultation/{consultation_id} [get]
func (h *ConsultationHandler) Get(c *gin.Context) {
	found, err := h.service.Get(c.Param("consultation_id"))
	if err != nil {
		if errors.Is(err, consultation.ErrConsultationNotFound) {
			response.Error(c, http.StatusNotFound, 160002, "Consultation not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, 160004, "Error getting consultation")
		return
	}
	response.Success(c, found)
}

// List 全部问诊记录
// @Summary 问诊列表
// @Tags 问诊
// @Produce json
// @Success 200 {object} response.Response
// @Router /consultation [get]
func (h *ConsultationHandler) List(c *gin.Context) {
	list := h.service.List()
	response.Success(c, gin.H{
		"consultations": list,
		"count":         len(list),
	})
}
