package budgetitem

import (
	"github.com/nextlab/researchdesk/internal/budgetitem/repository"
	"github.com/nextlab/researchdesk/internal/budgetitem/service"
	"go.uber.org/fx"
)

var Module = fx.Module("budgetitem.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
