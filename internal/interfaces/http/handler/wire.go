package handler

import "github.com/google/wire"

// ProviderSet Handler ProviderSet
var ProviderSet = wire.NewSet(
	NewAuthHandler,
	NewTriageHandler,
	NewAppointmentHandler,
	NewRecordHandler,
	NewSummaryHandler,
	NewConsultationHandler,
	NewDoctorChatHandler,
	NewNotificationHandler,
)
