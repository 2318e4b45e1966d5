package consultation

import (
	"fmt"

	domainllm "github.com/mediverse/backend/internal/domain/llm"
)

const extractionSystemPrompt = "You are a medical transcription AI that extracts structured information from doctor-patient consultations. Always respond with valid JSON only."

const extractionPromptTemplate = `Analyze this doctor-patient consultation transcript and extract the following information in JSON format.

The patient's name is %s and their chief complaint was: %s

Extract:
1. "call_summary": A brief 2-3 sentence professional summary of what was discussed
2. "symptoms": An array of symptoms mentioned by the patient (be specific)
3. "diagnosis": The doctor's diagnosis if mentioned, otherwise "Pending evaluation"
4. "prescriptions": An array of medications with "name", "dosage", "frequency", "duration" for each

IMPORTANT: Return ONLY valid JSON, no markdown or extra text.

Transcript:
%s

If the transcript is empty or unclear, provide reasonable defaults based on the chief complaint.`

func buildExtractionPrompt(patientName, chiefComplaint, transcript string) []domainllm.Message {
	return []domainllm.Message{
		{Role: domainllm.RoleSystem, Content: extractionSystemPrompt},
		{Role: domainllm.RoleUser, Content: fmt.Sprintf(extractionPromptTemplate, patientName, chiefComplaint, transcript)},
	}
}
