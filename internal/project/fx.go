package project

import (
	"github.com/nextlab/researchdesk/internal/project/repository"
	"github.com/nextlab/researchdesk/internal/project/service"
	"go.uber.org/fx"
)

var Module = fx.Module("project.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
