package consultation

import (
	"errors"
	"fmt"
	"time"
)

// ErrConsultationNotFound 问诊记录不存在
var ErrConsultationNotFound = errors.New("consultation not found")

// Medication 处方药品
type Medication struct {
	Name      string `json:"name"`
	Dosage    string `json:"dosage"`
	Frequency string `json:"frequency"`
	Duration  string `json:"duration"`
}

// AIAnalysis 从问诊录音转写中抽取的结构化信息
type AIAnalysis struct {
	CallSummary   string       `json:"call_summary"`
	Symptoms      []string     `json:"symptoms"`
	Diagnosis     string       `json:"diagnosis"`
	Prescriptions []Medication `json:"prescriptions"`
}

// DefaultAnalysis 抽取失败时的确定性结果
func DefaultAnalysis(patientName, chiefComplaint string) AIAnalysis {
	symptoms := []string{"Not specified"}
	if chiefComplaint != "" {
		symptoms = []string{chiefComplaint}
	}
	return AIAnalysis{
		CallSummary:   fmt.Sprintf("Consultation completed with %s. Patient presented with %s. Further evaluation recommended.", patientName, chiefComplaint),
		Symptoms:      symptoms,
		Diagnosis:     "Pending evaluation",
		Prescriptions: []Medication{},
	}
}

// KPIs 问诊统计指标
type KPIs struct {
	ConsultationTime      string `json:"consultationTime"`
	MedicationsPrescribed int    `json:"medicationsPrescribed"`
	FollowUpRequired      bool   `json:"followUpRequired"`
}

// Consultation 已保存的问诊记录
type Consultation struct {
	ConsultationID   string       `json:"consultation_id"`
	PatientID        string       `json:"patient_id"`
	PatientName      string       `json:"patient_name"`
	Date             string       `json:"date"`
	Duration         string       `json:"duration"`
	Symptoms         []string     `json:"symptoms"`
	Diagnosis        string       `json:"diagnosis"`
	Notes            string       `json:"notes"`
	Medications      []Medication `json:"medications"`
	CallSummary      string       `json:"call_summary"`
	PrescriptionSent bool         `json:"prescription_sent"`
	CreatedAt        time.Time    `json:"created_at"`
	KPIs             KPIs         `json:"kpis"`
}

// ComputeKPIs 根据处方计算指标，开药即需要复诊
func (c *Consultation) ComputeKPIs() {
	c.KPIs = KPIs{
		ConsultationTime:      c.Duration,
		MedicationsPrescribed: len(c.Medications),
		FollowUpRequired:      len(c.Medications) > 0,
	}
}

// Document consultations.json 文档结构
type Document struct {
	Consultations []Consultation `json:"consultations"`
}

// NewID 生成问诊 ID：CONS-<毫秒时间戳>
func NewID(now time.Time) string {
	return fmt.Sprintf("CONS-%d", now.UnixMilli())
}
