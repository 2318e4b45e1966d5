package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	appAppointment "github.com/mediverse/backend/internal/application/appointment"
	"github.com/mediverse/backend/internal/domain/appointment"
	"github.com/mediverse/backend/internal/interfaces/http/response"
)

// AppointmentHandler 预约处理器
type AppointmentHandler struct {
	service *appAppointment.Service
}

// NewAppointmentHandler 创建预约处理器
func NewAppointmentHandler(service *appAppointment.Service) *AppointmentHandler {
	return &AppointmentHandler{service: service}
}

// Schedule 登记预约
// @Summary 登记预约
// @Tags 预约
// @Accept json
// @Produce json
// @Param body body appAppointment.ScheduleDTO true "预约信息"
// @Success 200 {object} response.Response{data=appointment.Appointment}
// @Failure 400 {object} response.ErrorResponse
// @Router /appointments/schedule [post]
func (h *AppointmentHandler) Schedule(c *gin.Context) {
	var dto appAppointment.ScheduleDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.Error(c, http.StatusBadRequest, 130001, "Invalid request: "+err.Error())
		return
	}

	apt, err := h.service.Schedule(c.Request.Context(), &dto)
	if err != nil {
		if errors.Is(err, appointment.ErrMissingField) {
			response.Error(c, http.StatusBadRequest, 130001, err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, 130004, "Error scheduling appointment")
		return
	}

	response.Success(c, gin.H{
		"message":     "Appointment scheduled successfully",
		"appointment": apt,
	})
}

// ListByPatient 患者的预约
// @Summary 患者预约列表
// @Tags 预约
// @Produce json
// @Param patient_id path string true "患者 ID"
// @Success 200 {object} response.Response
// @Router /appointments/patient/{patient_id} [get]
func (h *AppointmentHandler) ListByPatient(c *gin.Context) {
	response.Success(c, gin.H{
		"appointments": h.service.ListByPatient(c.Param("patient_id")),
	})
}

// ListByDoctor 医生的预约
// @Summary 医生预约列表
// @Tags 预约
// @Produce json
// @Param doctor_id path string true "医生 ID"
// @Success 200 {object} response.Response
// @Router /appointments/doctor/{doctor_id} [get]
func (h *AppointmentHandler) ListByDoctor(c *gin.Context) {
	response.Success(c, gin.H{
		"appointments": h.service.ListByDoctor(c.Param("doctor_id")),
	})
}

// DoctorQueue 医生候诊队列
// @Summary 医生候诊队列
// @Tags 预约
// @Produce json
// @Param doctor_id path string true "医生 ID"
// @Success 200 {object} response.Response
// @Router /appointments/queue/doctor/{doctor_id} [get]
func (h *AppointmentHandler) DoctorQueue(c *gin.Context) {
	response.Success(c, gin.H{
		"patients": h.service.DoctorQueue(c.Param("doctor_id")),
	})
}

// Get 读取预约
// @Summary 获取预约
// @Tags 预约
// @Produce json
// @Param appointment_id path string true "预约 ID"
// @Success 200 {object} response.Response{data=appointment.Appointment}
// @Failure 404 {object} response.ErrorResponse
// @Router /appointments/{appointment_id} [get]
func (h *AppointmentHandler) Get(c *gin.Context) {
	apt, err := h.service.Get(c.Param("appointment_id"))
	if err != nil {
		h.notFoundOrInternal(c, err)
		return
	}
	response.Success(c, apt)
}

// UpdateStatus 更新预约状态，status 可以放在 query 或 JSON 中
// @Summary 更新预约状态
// @Tags 预约
// @Accept json
// @Produce json
// @Param appointment_id path string true "预约 ID"
// @Param status query string false "scheduled | completed | cancelled"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /appointments/{appointment_id}/status [patch]
func (h *AppointmentHandler) UpdateStatus(c *gin.Context) {
	var dto appAppointment.UpdateStatusDTO
	_ = c.ShouldBindQuery(&dto)
	if dto.Status == "" && c.Request.ContentLength > 0 {
		_ = c.ShouldBindJSON(&dto)
	}

	apt, err := h.service.UpdateStatus(c.Request.Context(), c.Param("appointment_id"), appointment.Status(dto.Status))
	if err != nil {
		if errors.Is(err, appointment.ErrInvalidStatus) {
			response.Error(c, http.StatusBadRequest, 130003, err.Error())
			return
		}
		h.notFoundOrInternal(c, err)
		return
	}
	response.Success(c, gin.H{
		"message":     "Appointment status updated",
		"appointment": apt,
	})
}

func (h *AppointmentHandler) notFoundOrInternal(c *gin.Context, err error) {
	if errors.Is(err, appointment.ErrAppointmentNotFound) {
		response.Error(c, http.StatusNotFound, 130002, "Appointment not found")
		return
	}
	response.Error(c, http.StatusInternalServerError, 130004, "Error retrieving appointment")
}
