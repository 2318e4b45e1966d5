package application

import (
	"github.com/google/wire"
	"github.com/mediverse/backend/internal/application/appointment"
	"github.com/mediverse/backend/internal/application/auth"
	"github.com/mediverse/backend/internal/application/consultation"
	"github.com/mediverse/backend/internal/application/doctorchat"
	"github.com/mediverse/backend/internal/application/notification"
	"github.com/mediverse/backend/internal/application/records"
	"github.com/mediverse/backend/internal/application/summary"
	"github.com/mediverse/backend/internal/application/triage"
)

// ProviderSet Application 层总 ProviderSet
var ProviderSet = wire.NewSet(
	triage.ProviderSet,
	summary.ProviderSet,
	appointment.ProviderSet,
	consultation.ProviderSet,
	records.ProviderSet,
	auth.ProviderSet,
	doctorchat.ProviderSet,
	notification.ProviderSet,
)
