package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/nextlab/researchdesk/internal/config"
	"github.com/nextlab/researchdesk/internal/migration"
	"github.com/nextlab/researchdesk/internal/observability"
	"github.com/nextlab/researchdesk/internal/server"
	"github.com/nextlab/researchdesk/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		config.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		server.Module,
		migration.Module,
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
