package schedule

import (
	"github.com/nextlab/researchdesk/internal/schedule/service"
	"go.uber.org/fx"
)

var Module = fx.Module("schedule.service",
	fx.Provide(service.NewService),
)
