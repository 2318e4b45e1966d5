package mcp

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/mediverse/backend/internal/domain/appointment"
	"github.com/mediverse/backend/internal/domain/doctor"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// RecommendDoctorInput 推荐医生工具输入
type RecommendDoctorInput struct {
	Issue      string `json:"issue" jsonschema:"Main health concern"`
	PainRating string `json:"pain_rating,omitempty" jsonschema:"Pain rating 1-10 or descriptive word"`
	Duration   string `json:"duration,omitempty" jsonschema:"How long the symptoms have lasted"`
}

// RecommendDoctorOutput 推荐医生工具输出
type RecommendDoctorOutput struct {
	Specialty string         `json:"specialty" jsonschema:"Inferred specialty"`
	Severity  string         `json:"severity" jsonschema:"Severity derived from the pain rating"`
	Doctor    *doctor.Doctor `json:"doctor,omitempty" jsonschema:"Recommended doctor, absent when the directory is empty"`
	Message   string         `json:"message" jsonschema:"Recommendation text shown to patients"`
}

// ClassifySeverityInput 严重程度工具输入
type ClassifySeverityInput struct {
	PainRating string `json:"pain_rating" jsonschema:"Pain rating 1-10 or descriptive word"`
}

// ClassifySeverityOutput 严重程度工具输出
type ClassifySeverityOutput struct {
	Severity    string `json:"severity" jsonschema:"mild/moderate/severe/critical"`
	TriageScore string `json:"triage_score" jsonschema:"low/medium/high"`
}

// DoctorQueueInput 医生队列工具输入
type DoctorQueueInput struct {
	DoctorID string `json:"doctor_id" jsonschema:"Doctor ID"`
}

// DoctorQueueOutput 医生队列工具输出
type DoctorQueueOutput struct {
	DoctorID string                   `json:"doctor_id"`
	Patients []appointment.QueueEntry `json:"patients"`
	Total    int                      `json:"total"`
}

// recommendDoctorTool 推荐医生工具
func (s *MCPServer) recommendDoctorTool(
	ctx context.Context,
	req *mcp.CallToolRequest,
	input RecommendDoctorInput,
) (*mcp.CallToolResult, RecommendDoctorOutput, error) {
	issue := strings.TrimSpace(input.Issue)
	if issue == "" {
		return nil, RecommendDoctorOutput{}, errors.New("issue is required")
	}

	doc := doctor.Recommend(s.directory.Directory(), issue)
	s.logger.Debug("recommend_doctor called",
		"specialty", doctor.InferSpecialty(issue),
		"found", doc != nil,
	)

	return nil, RecommendDoctorOutput{
		Specialty: string(doctor.InferSpecialty(issue)),
		Severity:  string(doctor.SeverityFromPainRating(input.PainRating)),
		Doctor:    doc,
		Message:   doctor.FormatRecommendation(doc, time.Now()),
	}, nil
}

// classifySeverityTool 疼痛评分分级工具
func (s *MCPServer) classifySeverityTool(
	ctx context.Context,
	req *mcp.CallToolRequest,
	input ClassifySeverityInput,
) (*mcp.CallToolResult, ClassifySeverityOutput, error) {
	return nil, ClassifySeverityOutput{
		Severity:    string(doctor.SeverityFromPainRating(input.PainRating)),
		TriageScore: string(appointment.TriageScoreFromPain(input.PainRating)),
	}, nil
}

// getDoctorQueueTool 医生候诊队列工具
func (s *MCPServer) getDoctorQueueTool(
	ctx context.Context,
	req *mcp.CallToolRequest,
	input DoctorQueueInput,
) (*mcp.CallToolResult, DoctorQueueOutput, error) {
	if input.DoctorID == "" {
		return nil, DoctorQueueOutput{}, errors.New("doctor_id is required")
	}

	patients := s.appointments.DoctorQueue(input.DoctorID)

	return nil, DoctorQueueOutput{
		DoctorID: input.DoctorID,
		Patients: patients,
		Total:    len(patients),
	}, nil
}
