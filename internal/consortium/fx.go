package consortium

import (
	"github.com/nextlab/researchdesk/internal/consortium/service"
	"go.uber.org/fx"
)

var Module = fx.Module("consortium.service",
	fx.Provide(service.NewService),
)
