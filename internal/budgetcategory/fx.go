package budgetcategory

import (
	"github.com/nextlab/researchdesk/internal/budgetcategory/service"
	"go.uber.org/fx"
)

var Module = fx.Module("budgetcategory.service",
	fx.Provide(service.NewService),
)
