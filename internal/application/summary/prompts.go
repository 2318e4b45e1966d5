package summary

import (
	"fmt"
	"strings"

	"github.com/mediverse/backend/internal/domain/appointment"
	domainllm "github.com/mediverse/backend/internal/domain/llm"
	"github.com/mediverse/backend/internal/domain/triage"
)

const (
	// transcriptWindow 摘要提示中保留的最近消息数
	transcriptWindow = 10
	// transcriptMessageLimit 单条消息保留的最大字符数
	transcriptMessageLimit = 200

	patientAppointmentLimit = 5
	patientRecordLimit      = 10
	patientSessionLimit     = 5
	recordDescriptionLimit  = 100
)

const queueSystemPrompt = "You are a medical assistant. Generate concise patient summaries for doctors."

const patientSystemPrompt = "You are a medical assistant helping doctors prepare for patient consultations. Generate clear, concise, and professional patient summaries."

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

// transcriptLines 最近 10 条消息，每条截断到 200 字符
func transcriptLines(messages []triage.Message) []string {
	if len(messages) > transcriptWindow {
		messages = messages[len(messages)-transcriptWindow:]
	}
	lines := make([]string, 0, len(messages))
	for _, m := range messages {
		lines = append(lines, fmt.Sprintf("- %s: %s", m.Sender, truncate(m.Content, transcriptMessageLimit)))
	}
	return lines
}

// historyDigest 病历摘要：数量 + 最近一条标题
func historyDigest(records []appointment.MedicalRecord) string {
	recent, ok := appointment.MostRecent(records)
	if !ok {
		return ""
	}
	return fmt.Sprintf("%d records found. Recent: %s", len(records), orDefault(recent.Title, "N/A"))
}

// buildQueuePrompt 候诊队列摘要提示
func buildQueuePrompt(req *Request, score appointment.TriageScore, transcript []string, digest string) []domainllm.Message {
	var b strings.Builder
	b.WriteString("Generate a concise patient summary for a doctor's queue. Based on the following information:\n\n")
	fmt.Fprintf(&b, "**Patient:** %s\n", req.PatientName)
	fmt.Fprintf(&b, "**Symptoms:** %s\n", orDefault(req.Symptoms, "Not specified"))
	fmt.Fprintf(&b, "**Pain Rating:** %s/10\n", orDefault(req.PainRating, "N/A"))
	fmt.Fprintf(&b, "**Triage Score:** %s\n", score)
	if len(transcript) > 0 {
		b.WriteString("\n**Recent Conversation:**\n")
		b.WriteString(strings.Join(transcript, "\n"))
		b.WriteString("\n")
	}
	if digest != "" {
		fmt.Fprintf(&b, "\n**Medical History:** %s\n", digest)
	}
	b.WriteString(`
Create a brief 2-3 sentence summary highlighting:
1. Main complaint/symptoms
2. Pain level and urgency
3. Key context from conversation

Respond in JSON format:
{
    "summary": "Brief patient summary",
    "triage_score": "`)
	b.WriteString(string(score))
	b.WriteString(`",
    "key_points": ["point1", "point2", "point3"]
}`)

	return []domainllm.Message{
		{Role: domainllm.RoleSystem, Content: queueSystemPrompt},
		{Role: domainllm.RoleUser, Content: b.String()},
	}
}

// buildPatientPrompt 问诊前的完整患者摘要提示
func buildPatientPrompt(name string, appointments []appointment.Appointment, records []appointment.MedicalRecord, sessions []triage.Session) []domainllm.Message {
	var b strings.Builder
	b.WriteString("You are a medical assistant helping a doctor prepare for a patient consultation. Generate a concise, professional patient summary based on the following information.\n\n")
	fmt.Fprintf(&b, "**Patient:** %s\n", name)

	if len(appointments) == 0 {
		b.WriteString("\n**Appointments:** No previous appointments found.\n")
	} else {
		b.WriteString("\n**Appointments:**\n")
		for _, apt := range appointments {
			fmt.Fprintf(&b, "- %s at %s: %s\n", apt.AppointmentDate, apt.AppointmentTime, orDefault(apt.Reason, "No reason provided"))
			if apt.Symptoms != "" {
				fmt.Fprintf(&b, "  Symptoms: %s\n", apt.Symptoms)
			}
			if apt.PainRating != "" {
				fmt.Fprintf(&b, "  Pain Rating: %s/10\n", apt.PainRating)
			}
		}
	}

	if len(records) == 0 {
		b.WriteString("\n**Medical Records:** No medical records found.\n")
	} else {
		b.WriteString("\n**Medical Records:**\n")
		for _, rec := range records {
			fmt.Fprintf(&b, "- %s - %s (%s): %s...\n", rec.Date, rec.Title, rec.RecordType, truncate(rec.Description, recordDescriptionLimit))
		}
	}

	if len(sessions) == 0 {
		b.WriteString("\n**Recent Triage Sessions:** No triage sessions found.\n")
	} else {
		b.WriteString("\n**Recent Triage Sessions:**\n")
		for _, s := range sessions {
			info := s.CollectedInfo
			fmt.Fprintf(&b, "- %s: %s (Pain: %s/10, Duration: %s)\n",
				s.CreatedAt.Format("2006-01-02"),
				orDefault(info.IssueText(), "Unknown"),
				orDefault(info.PainRatingText(), "N/A"),
				orDefault(info.DurationText(), "Unknown"),
			)
		}
	}

	b.WriteString(`
**Instructions:**
1. Create a comprehensive but concise summary (2-3 paragraphs)
2. Highlight key medical history, recent symptoms, and concerns
3. Identify patterns or recurring issues
4. Note any urgent or important information
5. Provide context for the upcoming consultation
6. Use professional medical terminology appropriately
7. Be empathetic and patient-focused

**Format your response as:**
- A brief overview paragraph
- Key medical history and patterns
- Current concerns and symptoms
- Recommendations for the consultation

Generate the summary now:`)

	return []domainllm.Message{
		{Role: domainllm.RoleSystem, Content: patientSystemPrompt},
		{Role: domainllm.RoleUser, Content: b.String()},
	}
}
