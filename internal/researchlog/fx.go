package researchlog

import (
	"github.com/nextlab/researchdesk/internal/researchlog/service"
	"go.uber.org/fx"
)

var Module = fx.Module("researchlog.service",
	fx.Provide(service.NewService),
)
