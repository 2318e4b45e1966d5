package mcp

import (
	"log/slog"
	"net/http"

	appAppointment "github.com/mediverse/backend/internal/application/appointment"
	"github.com/mediverse/backend/internal/domain/doctor"
	"github.com/mediverse/backend/internal/infrastructure/log"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// MCPServer MCP 服务器，向 agent 客户端暴露分诊辅助工具
type MCPServer struct {
	server       *mcp.Server
	handler      http.Handler
	directory    doctor.DirectoryProvider
	appointments *appAppointment.Service
	logger       *slog.Logger
}

// NewServer 创建 MCP 服务器
func NewServer(directory doctor.DirectoryProvider, appointments *appAppointment.Service) *MCPServer {
	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    log.ServiceName,
			Version: "0.1.0",
		},
		nil,
	)

	s := &MCPServer{
		server:       server,
		directory:    directory,
		appointments: appointments,
		logger:       log.NewModuleLogger("mcp", "server"),
	}

	mcp.AddTool(server, &mcp.Tool{
		Name: "recommend_doctor",
		Description: `Recommend a doctor from the directory for a patient's complaint.
Parameters:
- issue (string, required): Main health concern in the patient's words
- pain_rating (string, optional): Pain on a 1-10 scale or a descriptive word
- duration (string, optional): How long the symptoms have lasted

Returns: inferred specialty, severity, the recommended doctor (if the directory is not empty) and the recommendation message.`,
	}, s.recommendDoctorTool)

	mcp.AddTool(server, &mcp.Tool{
		Name: "classify_severity",
		Description: `Classify a pain rating.
Parameters:
- pain_rating (string, required): Pain on a 1-10 scale or a descriptive word

Returns: severity (mild/moderate/severe/critical) and queue triage score (low/medium/high).`,
	}, s.classifySeverityTool)

	mcp.AddTool(server, &mcp.Tool{
		Name: "get_doctor_queue",
		Description: `List the waiting queue of a doctor ordered by appointment date and time.
Parameters:
- doctor_id (string, required): Doctor ID

Returns: queue entries with AI summary lines and triage score, and the total count.`,
	}, s.getDoctorQueueTool)

	s.handler = mcp.NewSSEHandler(
		func(r *http.Request) *mcp.Server {
			return server
		},
		nil,
	)
	return s
}

// GetHandler 获取 HTTP Handler（挂载到 HTTP 服务器）
func (s *MCPServer) GetHandler() http.Handler {
	return s.handler
}
