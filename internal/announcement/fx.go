package announcement

import (
	"github.com/nextlab/researchdesk/internal/announcement/service"
	"go.uber.org/fx"
)

var Module = fx.Module("announcement.service",
	fx.Provide(service.NewService),
)
