package researcher

import (
	"github.com/nextlab/researchdesk/internal/researcher/service"
	"go.uber.org/fx"
)

var Module = fx.Module("researcher.service",
	fx.Provide(service.NewService),
)
