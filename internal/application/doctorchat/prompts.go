package doctorchat

import (
	"fmt"
	"strings"

	"github.com/mediverse/backend/internal/domain/appointment"
)

const (
	// appointmentContextLimit 上下文中最多列出的预约数
	appointmentContextLimit = 5
	// previewLimit 上下文预览的最大字符数
	previewLimit = 500
)

// ApologyMessage 模型不可用时的固定回复
const ApologyMessage = "I apologize, but I'm having trouble processing your request. Please try again."

const systemPromptTemplate = `You are an AI medical assistant helping a doctor in their practice. You have access to the current patient queue and appointment information.

**Your Capabilities:**
1. Answer questions about patients in the queue (their symptoms, triage level, appointment times)
2. Provide medical knowledge and clinical guidance
3. Help with differential diagnosis considerations
4. Suggest relevant lab tests or examinations
5. Answer general medical questions with evidence-based information

**Context Information:**
%s

**Response Guidelines:**
- Format your responses in clear, professional **Markdown**
- Use headers (##), bullet points, bold text, and other formatting for readability
- For medical information, cite general guidelines when applicable
- Be concise but thorough
- If asked about a specific patient, reference their data from the context
- If you don't have specific patient information, acknowledge it and provide general guidance
- Always maintain a professional, clinical tone
- For clinical questions, consider providing differential diagnoses, relevant tests, and management options`

func na(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

func nameOrUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}

// buildContext 由候诊队列与预约拼出 Markdown 上下文
func buildContext(doctorName string, queue []appointment.QueueEntry, appointments []appointment.Appointment) string {
	var parts []string
	if doctorName != "" {
		parts = append(parts, fmt.Sprintf("You are assisting %s.", doctorName))
	}

	if len(queue) > 0 {
		parts = append(parts, fmt.Sprintf("\n**Current Patient Queue (%d patients):**", len(queue)))
		for i, p := range queue {
			parts = append(parts, fmt.Sprintf(`
%d. **%s**
   - Appointment ID: %s
   - Date/Time: %s at %s
   - Status: %s
   - Triage Score: %s
   - Symptoms: %s
   - Pain Rating: %s/10
   - Summary: %s`,
				i+1, nameOrUnknown(p.PatientName),
				na(p.AppointmentID),
				na(p.AppointmentDate), na(p.AppointmentTime),
				na(string(p.Status)),
				na(string(p.TriageScore)),
				na(p.Symptoms),
				na(p.PainRating),
				na(p.Summary),
			))
		}
	} else {
		parts = append(parts, "\n**Current Patient Queue:** No patients in queue.")
	}

	if len(appointments) > 0 {
		parts = append(parts, fmt.Sprintf("\n**Scheduled Appointments (%d):**", len(appointments)))
		limit := min(len(appointments), appointmentContextLimit)
		for _, a := range appointments[:limit] {
			parts = append(parts, fmt.Sprintf(`
- **%s**: %s at %s
  Status: %s, Symptoms: %s`,
				nameOrUnknown(a.PatientName), na(a.AppointmentDate), na(a.AppointmentTime),
				na(string(a.Status)), na(a.Symptoms),
			))
		}
	}

	return strings.Join(parts, "\n")
}

func preview(text string) string {
	if len(text) > previewLimit {
		return text[:previewLimit] + "..."
	}
	return text
}
