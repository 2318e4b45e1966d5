package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mediverse/backend/internal/application/records"
	"github.com/mediverse/backend/internal/domain/appointment"
	"github.com/mediverse/backend/internal/interfaces/http/response"
)

// RecordHandler 病历处理器
type RecordHandler struct {
	service *records.Service
}

// NewRecordHandler 创建病历处理器
func NewRecordHandler(service *records.Service) *RecordHandler {
	return &RecordHandler{service: service}
}

// Create 新建病历
// @Summary 新建病历
// @Tags 病历
// @Accept json
// @Produce json
// @Param body body records.CreateRecordDTO true "病历"
// @Success 200 {object} response.Response{data=appointment.MedicalRecord}
// @Router /medical-records [post]
func (h *RecordHandler) Create(c *gin.Context) {
	var dto records.CreateRecordDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.Error(c, http.StatusBadRequest, 140001, "Invalid request: "+err.Error())
		return
	}

	record, err := h.service.Create(c.Request.Context(), &dto)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, 140004, "Error creating medical record")
		return
	}
	response.Success(c, record)
}

// ListByPatient 患者病历
// @Summary 患者病历列表
// @Tags 病历
// @Produce json
// @Param patient_id path string true "患者 ID"
// @Success 200 {object} response.Response
// @Router /medical-records/patient/{patient_id} [get]
func (h *RecordHandler) ListByPatient(c *gin.Context) {
	response.Success(c, gin.H{
		"records": h.service.ListByPatient(c.Param("patient_id")),
	})
}

// Get 读取病历
// @Summary 获取病历
// @Tags 病历
// @Produce json
// @Param record_id path string true "病历 ID"
// @Success 200 {object} response.Response{data=appointment.MedicalRecord}
// @Failure 404 {object} response.ErrorResponse
// @Router /medical-records/{record_id} [get]
func (h *RecordHandler) Get(c *gin.Context) {
	record, err := h.service.Get(c.Param("record_id"))
	if err != nil {
		if errors.Is(err, appointment.ErrRecordNotFound) {
			response.Error(c, http.StatusNotFound, 140002, "Medical record not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, 140004, "Error retrieving medical record")
		return
	}
	response.Success(c, record)
}
