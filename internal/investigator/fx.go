package investigator

import (
	"github.com/nextlab/researchdesk/internal/investigator/service"
	"go.uber.org/fx"
)

var Module = fx.Module("investigator.service",
	fx.Provide(service.NewService),
)
