package migration

import (
	announcementdomain "github.com/nextlab/researchdesk/internal/announcement/domain"
	budgetdomain "github.com/nextlab/researchdesk/internal/budget/domain"
	budgetcategorydomain "github.com/nextlab/researchdesk/internal/budgetcategory/domain"
	budgetitemdomain "github.com/nextlab/researchdesk/internal/budgetitem/domain"
	"github.com/nextlab/researchdesk/internal/config"
	consortiumdomain "github.com/nextlab/researchdesk/internal/consortium/domain"
	investigatordomain "github.com/nextlab/researchdesk/internal/investigator/domain"
	kpidomain "github.com/nextlab/researchdesk/internal/kpi/domain"
	milestonedomain "github.com/nextlab/researchdesk/internal/milestone/domain"
	organizationdomain "github.com/nextlab/researchdesk/internal/organization/domain"
	projectdomain "github.com/nextlab/researchdesk/internal/project/domain"
	researcherdomain "github.com/nextlab/researchdesk/internal/researcher/domain"
	researchlogdomain "github.com/nextlab/researchdesk/internal/researchlog/domain"
	scheduledomain "github.com/nextlab/researchdesk/internal/schedule/domain"
	"github.com/nextlab/researchdesk/internal/seed"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
		if cfg.DBType == "postgres" {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			if err := RunMigrations(sqlDB); err != nil {
				return err
			}
		} else {
			// The versioned migrations are written against postgres. Other
			// dialects are for local development only, so auto-migration is
			// good enough there.
			if err := autoMigrate(conn); err != nil {
				return err
			}
		}

		if cfg.SeedDefaults {
			return seed.EnsureDemoTenant(conn)
		}
		return nil
	}),
)

func autoMigrate(conn *gorm.DB) error {
	return conn.AutoMigrate(
		&organizationdomain.Organization{},
		&investigatordomain.Investigator{},
		&researcherdomain.Researcher{},
		&projectdomain.Project{},
		&budgetdomain.Budget{},
		&budgetcategorydomain.BudgetCategory{},
		&budgetitemdomain.BudgetItem{},
		&kpidomain.KPI{},
		&milestonedomain.Milestone{},
		&consortiumdomain.ConsortiumOrganization{},
		&consortiumdomain.ConsortiumMember{},
		&scheduledomain.ScheduleType{},
		&scheduledomain.Schedule{},
		&announcementdomain.Announcement{},
		&researchlogdomain.ResearchLog{},
	)
}
