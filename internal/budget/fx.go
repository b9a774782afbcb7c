package budget

import (
	"github.com/nextlab/researchdesk/internal/budget/repository"
	"github.com/nextlab/researchdesk/internal/budget/service"
	"go.uber.org/fx"
)

var Module = fx.Module("budget.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
