package doctor

import (
	"strconv"
	"time"
)

// SlotDateLayout 号源日期格式
const SlotDateLayout = "2006-01-02"

// Slot 医生可预约时段
type Slot struct {
	Date      string `json:"date"`
	Time      string `json:"time"`
	Available bool   `json:"available"`
}

// Doctor 医生目录条目
type Doctor struct {
	ID             string  `json:"id,omitempty"`
	Name           string  `json:"name"`
	Specialty      string  `json:"specialty"`
	Qualifications string  `json:"qualifications"`
	Experience     string  `json:"experience"`
	Rating         float64 `json:"rating"`
	AvailableSlots []Slot  `json:"available_slots"`
}

// Directory 医生目录文档（doctors.json）
type Directory struct {
	Doctors []Doctor `json:"doctors"`
}

// RatingText 评分展示文本，如 4.8
func (d *Doctor) RatingText() string {
	return strconv.FormatFloat(d.Rating, 'f', -1, 64)
}

// UpcomingSlots 返回最多 limit 个可预约且不早于 now 当天的时段
// 日期无法解析的时段视为有效，保持目录原顺序
func (d *Doctor) UpcomingSlots(now time.Time, limit int) []Slot {
	today := now.Format(SlotDateLayout)
	slots := make([]Slot, 0, limit)
	for _, s := range d.AvailableSlots {
		if len(slots) >= limit {
			break
		}
		if !s.Available {
			continue
		}
		if _, err := time.Parse(SlotDateLayout, s.Date); err == nil && s.Date < today {
			continue
		}
		slots = append(slots, s)
	}
	return slots
}

// FindByID 按 ID 查找医生
func (d *Directory) FindByID(id string) (*Doctor, bool) {
	for i := range d.Doctors {
		if d.Doctors[i].ID == id {
			return &d.Doctors[i], true
		}
	}
	return nil, false
}
