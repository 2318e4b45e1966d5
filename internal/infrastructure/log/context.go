package log

import (
	"context"
	"log/slog"
)

type ctxKey string

// 上下文键定义
const (
	// RequestContextID HTTP 请求 ID
	RequestContextID ctxKey = "request_id"

	// SessionContextID 分诊会话 ID
	SessionContextID ctxKey = "session_id"

	// UserContextID 用户（患者）ID
	UserContextID ctxKey = "user_id"

	// DoctorContextID 医生 ID
	DoctorContextID ctxKey = "doctor_id"

	// AppointmentContextID 预约 ID
	AppointmentContextID ctxKey = "appointment_id"
)

var contextKeys = []ctxKey{
	RequestContextID,
	SessionContextID,
	UserContextID,
	DoctorContextID,
	AppointmentContextID,
}

// WithRequestID 在上下文中添加请求 ID
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestContextID, requestID)
}

// WithSessionID 在上下文中添加会话 ID
func WithSessionID(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, SessionContextID, sessionID)
}

// WithUserID 在上下文中添加用户 ID
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, UserContextID, userID)
}

// WithDoctorID 在上下文中添加医生 ID
func WithDoctorID(ctx context.Context, doctorID string) context.Context {
	return context.WithValue(ctx, DoctorContextID, doctorID)
}

// WithAppointmentID 在上下文中添加预约 ID
func WithAppointmentID(ctx context.Context, appointmentID string) context.Context {
	return context.WithValue(ctx, AppointmentContextID, appointmentID)
}

// LogCtxFromContext 从上下文中提取日志字段
func LogCtxFromContext(ctx context.Context) []slog.Attr {
	var attrs []slog.Attr
	for _, key := range contextKeys {
		if v, ok := ctx.Value(key).(string); ok && v != "" {
			attrs = append(attrs, slog.String(string(key), v))
		}
	}
	return attrs
}

// FromContext 返回带有上下文字段的 logger
func FromContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	attrs := LogCtxFromContext(ctx)
	if len(attrs) == 0 {
		return logger
	}
	args := make([]any, 0, len(attrs))
	for _, a := range attrs {
		args = append(args, a)
	}
	return logger.With(args...)
}
