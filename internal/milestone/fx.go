package milestone

import (
	"github.com/nextlab/researchdesk/internal/milestone/service"
	"go.uber.org/fx"
)

var Module = fx.Module("milestone.service",
	fx.Provide(service.NewService),
)
