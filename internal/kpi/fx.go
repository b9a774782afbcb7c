package kpi

import (
	"github.com/nextlab/researchdesk/internal/kpi/service"
	"go.uber.org/fx"
)

var Module = fx.Module("kpi.service",
	fx.Provide(service.NewService),
)
