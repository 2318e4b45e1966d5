package doctor

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Specialty 专科
type Specialty string

const (
	SpecialtyCardiologist     Specialty = "Cardiologist"
	SpecialtyNeurologist      Specialty = "Neurologist"
	SpecialtyGeneralPhysician Specialty = "General Physician"
)

// Severity 由疼痛评分推导的严重程度
type Severity string

const (
	SeverityMild     Severity = "mild"
	SeverityModerate Severity = "moderate"
	SeveritySevere   Severity = "severe"
	SeverityCritical Severity = "critical"
)

// MaxRecommendedSlots 推荐消息中展示的最大时段数
const MaxRecommendedSlots = 3

// GenericRecommendation 目录为空时的兜底推荐文案
const GenericRecommendation = "I recommend consulting with a healthcare professional. Please visit our appointment booking page to schedule a consultation."

type specialtyRule struct {
	specialty Specialty
	keywords  []string
}

// 按优先级排列，先命中者胜出
var specialtyRules = []specialtyRule{
	{SpecialtyCardiologist, []string{"heart", "chest", "cardiac", "breathing", "shortness", "palpitation"}},
	{SpecialtyNeurologist, []string{"headache", "migraine", "seizure", "neurological", "brain", "dizziness"}},
	{SpecialtyGeneralPhysician, []string{"stomach", "digestive", "abdominal", "nausea", "vomiting"}},
}

// InferSpecialty 根据主诉关键词推断专科
func InferSpecialty(issue string) Specialty {
	text := strings.ToLower(issue)
	for _, rule := range specialtyRules {
		for _, kw := range rule.keywords {
			if strings.Contains(text, kw) {
				return rule.specialty
			}
		}
	}
	return SpecialtyGeneralPhysician
}

// Select 选择第一个专科匹配的医生，否则目录第一位，目录为空返回 nil
func (d *Directory) Select(specialty Specialty) *Doctor {
	if d == nil || len(d.Doctors) == 0 {
		return nil
	}
	for i := range d.Doctors {
		if d.Doctors[i].Specialty == string(specialty) {
			doc := d.Doctors[i]
			return &doc
		}
	}
	doc := d.Doctors[0]
	return &doc
}

// Recommend 根据主诉推荐医生
func Recommend(dir *Directory, issue string) *Doctor {
	return dir.Select(InferSpecialty(issue))
}

// lexical severity 匹配顺序与数值区间一致
var severityLexicon = []struct {
	severity Severity
	terms    []string
}{
	{SeverityMild, []string{"1", "2", "3", "mild", "low"}},
	{SeverityModerate, []string{"4", "5", "6", "moderate", "medium"}},
	{SeveritySevere, []string{"7", "8", "severe", "high"}},
	{SeverityCritical, []string{"9", "10", "critical", "extreme", "worst"}},
}

// SeverityFromPainRating 疼痛评分转严重程度
// 先按有限数值区间判断，其余文本按子串匹配，均不命中时为 moderate
func SeverityFromPainRating(painRating string) Severity {
	text := strings.TrimSpace(painRating)
	if text == "" {
		return SeverityModerate
	}
	if n, err := strconv.ParseFloat(text, 64); err == nil && !math.IsNaN(n) && !math.IsInf(n, 0) {
		switch {
		case n <= 3:
			return SeverityMild
		case n <= 6:
			return SeverityModerate
		case n <= 8:
			return SeveritySevere
		default:
			return SeverityCritical
		}
	}
	lower := strings.ToLower(text)
	for _, entry := range severityLexicon {
		for _, term := range entry.terms {
			if strings.Contains(lower, term) {
				return entry.severity
			}
		}
	}
	return SeverityModerate
}

// FormatRecommendation 生成推荐医生的消息文本
func FormatRecommendation(doc *Doctor, now time.Time) string {
	if doc == nil {
		return GenericRecommendation
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Based on your symptoms, I recommend consulting with %s, a %s.\n\n", doc.Name, doc.Specialty)
	b.WriteString("**Doctor Details:**\n")
	fmt.Fprintf(&b, "- Name: %s\n", doc.Name)
	fmt.Fprintf(&b, "- Specialty: %s\n", doc.Specialty)
	fmt.Fprintf(&b, "- Qualifications: %s\n", doc.Qualifications)
	fmt.Fprintf(&b, "- Experience: %s\n", doc.Experience)
	fmt.Fprintf(&b, "- Rating: %s/5.0\n\n", doc.RatingText())
	b.WriteString("**Available Appointment Slots:**\n")
	for _, s := range doc.UpcomingSlots(now, MaxRecommendedSlots) {
		fmt.Fprintf(&b, "- %s at %s\n", s.Date, s.Time)
	}
	return b.String()
}
