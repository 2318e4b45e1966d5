package http

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"log/slog"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/mediverse/backend/internal/infrastructure/config"
	"github.com/mediverse/backend/internal/infrastructure/log"
	"github.com/mediverse/backend/internal/infrastructure/metrics"
	"github.com/mediverse/backend/internal/infrastructure/singleton"
	"github.com/mediverse/backend/internal/interfaces/http/handler"
	"github.com/mediverse/backend/internal/interfaces/http/middleware"
	"github.com/mediverse/backend/internal/interfaces/mcp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/mediverse/backend/docs" // Swagger docs
)

// Handlers 路由用到的全部处理器
type Handlers struct {
	Auth         *handler.AuthHandler
	Triage       *handler.TriageHandler
	Appointment  *handler.AppointmentHandler
	Record       *handler.RecordHandler
	Summary      *handler.SummaryHandler
	Consultation *handler.ConsultationHandler
	DoctorChat   *handler.DoctorChatHandler
	Notification *handler.NotificationHandler
}

// HTTPServer HTTP 服务器
type HTTPServer struct {
	router   *gin.Engine
	httpPort string
	server   *http.Server
	logger   *slog.Logger
}

// NewServer 创建 HTTP 服务器
func NewServer(
	cfg *config.ServerConfig,
	h *Handlers,
	m *metrics.Metrics,
	mcpServer *mcp.MCPServer,
) *HTTPServer {
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestID(), middleware.AccessLog())
	router.Use(cors.New(corsConfig(cfg.AllowOrigins)))

	logger := log.NewModuleLogger("http", "server")

	api := router.Group("/api/v1")
	{
		api.POST("/auth/login", h.Auth.Login)

		// 分诊
		triage := api.Group("/triage")
		{
			triage.POST("/start", h.Triage.Start)
			triage.POST("/message", h.Triage.SendMessage)
			triage.GET("/conversation/:session_id", h.Triage.GetConversation)
			triage.GET("/sessions", h.Triage.ListSessions)
			triage.DELETE("/session/:session_id", h.Triage.DeleteSession)
		}

		// 预约与候诊队列
		appointments := api.Group("/appointments")
		{
			appointments.POST("/schedule", h.Appointment.Schedule)
			appointments.GET("/patient/:patient_id", h.Appointment.ListByPatient)
			appointments.GET("/doctor/:doctor_id", h.Appointment.ListByDoctor)
			appointments.GET("/queue/doctor/:doctor_id", h.Appointment.DoctorQueue)
			appointments.GET("/:appointment_id", h.Appointment.Get)
			appointments.PATCH("/:appointment_id/status", h.Appointment.UpdateStatus)
		}

		// 病历
		records := api.Group("/medical-records")
		{
			records.POST("", h.Record.Create)
			records.GET("/patient/:patient_id", h.Record.ListByPatient)
			records.GET("/:record_id", h.Record.Get)
		}

		api.POST("/patient-summary", h.Summary.PatientSummary)

		// 问诊
		consultation := api.Group("/consultation")
		{
			consultation.POST("/process-recording", h.Consultation.ProcessRecording)
			consultation.POST("/save", h.Consultation.Save)
			consultation.GET("", h.Consultation.List)
			consultation.GET("/:consultation_id", h.Consultation.Get)
		}

		api.POST("/doctor-chat/chat", h.DoctorChat.Chat)
		api.GET("/doctor-chat/context/:doctor_id", h.DoctorChat.Context)

		api.GET("/notifications/doctor/:doctor_id", h.Notification.Recent)
		api.GET("/ws/queue/:doctor_id", h.Notification.QueueStream)
	}

	// 健康检查，单例锁也依赖这个端点识别已运行实例
	router.GET(singleton.HealthPath, func(c *gin.Context) {
		c.JSON(http.StatusOK, singleton.Health{Status: "healthy", Service: log.ServiceName})
	})

	router.GET("/metrics", gin.WrapH(m.Handler()))

	// Swagger UI
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// MCP SSE 端点
	if cfg.MCPEnabled && mcpServer != nil {
		router.Any("/mcp", gin.WrapH(mcpServer.GetHandler()))
	}

	return &HTTPServer{
		router:   router,
		httpPort: cfg.HTTPPort,
		logger:   logger,
	}
}

// corsConfig 来源为 "*" 时放开全部来源
func corsConfig(origins []string) cors.Config {
	c := cors.DefaultConfig()
	c.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	c.AllowHeaders = append(c.AllowHeaders, "Authorization", middleware.HeaderRequestID)
	c.ExposeHeaders = []string{middleware.HeaderRequestID}
	for _, o := range origins {
		if o == "*" {
			c.AllowAllOrigins = true
			return c
		}
	}
	if len(origins) == 0 {
		c.AllowAllOrigins = true
		return c
	}
	c.AllowCredentials = true
	c.AllowOrigins = origins
	return c
}

// Router 路由引擎（测试使用）
func (s *HTTPServer) Router() *gin.Engine {
	return s.router
}

// Start 启动服务器，listener 非空时复用单例锁持有的端口
func (s *HTTPServer) Start(listener net.Listener) error {
	s.server = &http.Server{
		Addr:              s.httpPort,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.logger.Info("HTTP server starting",
		"port", s.httpPort,
	)

	var err error
	if listener != nil {
		err = s.server.Serve(listener)
	} else {
		err = s.server.ListenAndServe()
	}
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown 优雅关闭
func (s *HTTPServer) Shutdown(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}

// Stop 停止服务器
func (s *HTTPServer) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.Shutdown(ctx)
}
