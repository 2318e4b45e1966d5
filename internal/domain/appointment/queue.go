package appointment

import (
	"strconv"
	"strings"
	"time"
)

// TriageScore 医生队列中的紧急程度
type TriageScore string

const (
	TriageLow    TriageScore = "low"
	TriageMedium TriageScore = "medium"
	TriageHigh   TriageScore = "high"
)

// ParseTriageScore 解析模型给出的分级，非法值返回 false
func ParseTriageScore(s string) (TriageScore, bool) {
	switch TriageScore(strings.ToLower(strings.TrimSpace(s))) {
	case TriageLow:
		return TriageLow, true
	case TriageMedium:
		return TriageMedium, true
	case TriageHigh:
		return TriageHigh, true
	}
	return "", false
}

// TriageScoreFromPain 疼痛评分转队列分级：>=7 high，>=4 medium，其余（含无法解析）low
// 摘要生成与队列组装共用这一个函数
func TriageScoreFromPain(painRating string) TriageScore {
	n, err := strconv.ParseFloat(strings.TrimSpace(painRating), 64)
	if err != nil {
		return TriageLow
	}
	switch {
	case n >= 7:
		return TriageHigh
	case n >= 4:
		return TriageMedium
	default:
		return TriageLow
	}
}

// QueueEntry 医生候诊队列条目，每个预约创建一次
type QueueEntry struct {
	AppointmentID   string      `json:"appointment_id"`
	PatientID       string      `json:"patient_id"`
	PatientName     string      `json:"patient_name"`
	DoctorID        string      `json:"doctor_id"`
	AppointmentDate string      `json:"appointment_date"`
	AppointmentTime string      `json:"appointment_time"`
	Status          Status      `json:"status"`
	TriageScore     TriageScore `json:"triage_score"`
	Summary         string      `json:"summary"`
	KeyPoints       []string    `json:"key_points"`
	Symptoms        string      `json:"symptoms"`
	PainRating      string      `json:"pain_rating"`
	Age             *int        `json:"age"`
	Gender          *string     `json:"gender"`
	BloodGroup      *string     `json:"blood_group"`
	CreatedAt       time.Time   `json:"created_at"`
}

// QueueDocument patient_queue.json 文档结构
type QueueDocument struct {
	Patients []QueueEntry `json:"patients"`
}

// SortKey 按日期时间排序使用的键
func (q *QueueEntry) SortKey() string {
	return q.AppointmentDate + " " + q.AppointmentTime
}
