package appointment

import "time"

// MedicalRecord 病历记录
type MedicalRecord struct {
	RecordID    string    `json:"record_id"`
	PatientID   string    `json:"patient_id"`
	RecordType  string    `json:"record_type"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Date        string    `json:"date"`
	DoctorID    string    `json:"doctor_id,omitempty"`
	DoctorName  string    `json:"doctor_name,omitempty"`
	Attachments []string  `json:"attachments"`
	CreatedAt   time.Time `json:"created_at"`
}

// RecordDocument medical_records.json 文档结构
type RecordDocument struct {
	Records []MedicalRecord `json:"records"`
}

// MostRecent 返回日期最新的记录，同日期取列表中靠后的
func MostRecent(records []MedicalRecord) (MedicalRecord, bool) {
	if len(records) == 0 {
		return MedicalRecord{}, false
	}
	best := records[0]
	for _, r := range records[1:] {
		if r.Date >= best.Date {
			best = r
		}
	}
	return best, true
}
