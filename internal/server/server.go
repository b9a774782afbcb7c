package server

import (
	"context"
	"net/http"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/nextlab/researchdesk/internal/announcement"
	announcementdomain "github.com/nextlab/researchdesk/internal/announcement/domain"
	"github.com/nextlab/researchdesk/internal/budget"
	budgetdomain "github.com/nextlab/researchdesk/internal/budget/domain"
	"github.com/nextlab/researchdesk/internal/budgetcategory"
	budgetcategorydomain "github.com/nextlab/researchdesk/internal/budgetcategory/domain"
	"github.com/nextlab/researchdesk/internal/budgetitem"
	budgetitemdomain "github.com/nextlab/researchdesk/internal/budgetitem/domain"
	"github.com/nextlab/researchdesk/internal/config"
	"github.com/nextlab/researchdesk/internal/consortium"
	consortiumdomain "github.com/nextlab/researchdesk/internal/consortium/domain"
	"github.com/nextlab/researchdesk/internal/dashboard"
	dashboarddomain "github.com/nextlab/researchdesk/internal/dashboard/domain"
	"github.com/nextlab/researchdesk/internal/investigator"
	investigatordomain "github.com/nextlab/researchdesk/internal/investigator/domain"
	"github.com/nextlab/researchdesk/internal/kpi"
	kpidomain "github.com/nextlab/researchdesk/internal/kpi/domain"
	"github.com/nextlab/researchdesk/internal/milestone"
	milestonedomain "github.com/nextlab/researchdesk/internal/milestone/domain"
	"github.com/nextlab/researchdesk/internal/observability"
	obsmiddleware "github.com/nextlab/researchdesk/internal/observability/logger"
	obsmetrics "github.com/nextlab/researchdesk/internal/observability/metrics"
	obstracing "github.com/nextlab/researchdesk/internal/observability/tracing"
	"github.com/nextlab/researchdesk/internal/organization"
	organizationdomain "github.com/nextlab/researchdesk/internal/organization/domain"
	"github.com/nextlab/researchdesk/internal/project"
	projectdomain "github.com/nextlab/researchdesk/internal/project/domain"
	"github.com/nextlab/researchdesk/internal/ratelimit"
	"github.com/nextlab/researchdesk/internal/researcher"
	researcherdomain "github.com/nextlab/researchdesk/internal/researcher/domain"
	"github.com/nextlab/researchdesk/internal/researchlog"
	researchlogdomain "github.com/nextlab/researchdesk/internal/researchlog/domain"
	"github.com/nextlab/researchdesk/internal/schedule"
	scheduledomain "github.com/nextlab/researchdesk/internal/schedule/domain"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	organization.Module,
	investigator.Module,
	researcher.Module,
	project.Module,
	budget.Module,
	budgetcategory.Module,
	budgetitem.Module,
	kpi.Module,
	milestone.Module,
	consortium.Module,
	schedule.Module,
	announcement.Module,
	researchlog.Module,
	dashboard.Module,
	ratelimit.Module,
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obsmiddleware.GinMiddleware(obsmiddleware.MiddlewareConfig{
		Debug:           obsCfg.Debug(),
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(obstracing.GinMiddleware())
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	return NewEngine(obsCfg, httpMetrics)
}

func run(lc fx.Lifecycle, r *gin.Engine, cfg config.Config) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine *gin.Engine
	cfg    config.Config
	db     *gorm.DB
	genID  *snowflake.Node

	organizationSvc   organizationdomain.Service
	investigatorSvc   investigatordomain.Service
	researcherSvc     researcherdomain.Service
	projectSvc        projectdomain.Service
	budgetSvc         budgetdomain.Service
	budgetCategorySvc budgetcategorydomain.Service
	budgetItemSvc     budgetitemdomain.Service
	kpiSvc            kpidomain.Service
	milestoneSvc      milestonedomain.Service
	consortiumSvc     consortiumdomain.Service
	scheduleSvc       scheduledomain.Service
	announcementSvc   announcementdomain.Service
	researchLogSvc    researchlogdomain.Service
	dashboardSvc      dashboarddomain.Service
}

type ServerParams struct {
	fx.In

	Gin   *gin.Engine
	Cfg   config.Config
	DB    *gorm.DB
	GenID *snowflake.Node

	OrganizationSvc   organizationdomain.Service
	InvestigatorSvc   investigatordomain.Service
	ResearcherSvc     researcherdomain.Service
	ProjectSvc        projectdomain.Service
	BudgetSvc         budgetdomain.Service
	BudgetCategorySvc budgetcategorydomain.Service
	BudgetItemSvc     budgetitemdomain.Service
	KPISvc            kpidomain.Service
	MilestoneSvc      milestonedomain.Service
	ConsortiumSvc     consortiumdomain.Service
	ScheduleSvc       scheduledomain.Service
	AnnouncementSvc   announcementdomain.Service
	ResearchLogSvc    researchlogdomain.Service
	DashboardSvc      dashboarddomain.Service
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:            p.Gin,
		cfg:               p.Cfg,
		db:                p.DB,
		genID:             p.GenID,
		organizationSvc:   p.OrganizationSvc,
		investigatorSvc:   p.InvestigatorSvc,
		researcherSvc:     p.ResearcherSvc,
		projectSvc:        p.ProjectSvc,
		budgetSvc:         p.BudgetSvc,
		budgetCategorySvc: p.BudgetCategorySvc,
		budgetItemSvc:     p.BudgetItemSvc,
		kpiSvc:            p.KPISvc,
		milestoneSvc:      p.MilestoneSvc,
		consortiumSvc:     p.ConsortiumSvc,
		scheduleSvc:       p.ScheduleSvc,
		announcementSvc:   p.AnnouncementSvc,
		researchLogSvc:    p.ResearchLogSvc,
		dashboardSvc:      p.DashboardSvc,
	}

	svc.registerAPIRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api/v1", s.SessionRequired())

	api.GET("/dashboard", s.GetDashboard)

	api.POST("/organizations", s.CreateOrganization)
	api.GET("/organizations", s.ListOrganizations)
	api.GET("/organizations/:id", s.GetOrganizationByID)
	api.PATCH("/organizations/:id", s.UpdateOrganization)
	api.DELETE("/organizations/:id", s.DeleteOrganization)

	api.POST("/investigators", s.CreateInvestigator)
	api.GET("/investigators", s.ListInvestigators)
	api.GET("/investigators/:id", s.GetInvestigatorByID)
	api.PATCH("/investigators/:id", s.UpdateInvestigator)
	api.DELETE("/investigators/:id", s.DeleteInvestigator)

	api.POST("/researchers", s.CreateResearcher)
	api.GET("/researchers", s.ListResearchers)
	api.GET("/researchers/:id", s.GetResearcherByID)
	api.PATCH("/researchers/:id", s.UpdateResearcher)
	api.DELETE("/researchers/:id", s.DeleteResearcher)

	api.POST("/projects", s.CreateProject)
	api.GET("/projects", s.ListProjects)
	api.GET("/projects/:id", s.GetProjectByID)
	api.PATCH("/projects/:id", s.UpdateProject)
	api.DELETE("/projects/:id", s.DeleteProject)
	api.GET("/projects/:id/consortium", s.ListConsortium)

	api.POST("/budgets", s.CreateBudget)
	api.GET("/budgets", s.ListBudgets)
	api.GET("/budgets/:id", s.GetBudgetByID)
	api.PATCH("/budgets/:id", s.UpdateBudget)
	api.DELETE("/budgets/:id", s.DeleteBudget)

	api.POST("/budget-items", s.CreateBudgetItem)
	api.GET("/budget-items", s.ListBudgetItems)
	api.GET("/budget-items/:id", s.GetBudgetItemByID)
	api.PATCH("/budget-items/:id", s.UpdateBudgetItem)
	api.DELETE("/budget-items/:id", s.DeleteBudgetItem)

	api.POST("/budget-categories", s.CreateBudgetCategory)
	api.GET("/budget-categories", s.ListBudgetCategories)
	api.PATCH("/budget-categories/:id", s.UpdateBudgetCategory)
	api.DELETE("/budget-categories/:id", s.DeleteBudgetCategory)

	api.POST("/kpis", s.CreateKPI)
	api.GET("/kpis", s.ListKPIs)
	api.PATCH("/kpis/:id", s.UpdateKPI)
	api.DELETE("/kpis/:id", s.DeleteKPI)

	api.POST("/milestones", s.CreateMilestone)
	api.GET("/milestones", s.ListMilestones)
	api.PATCH("/milestones/:id", s.UpdateMilestone)
	api.DELETE("/milestones/:id", s.DeleteMilestone)

	api.POST("/consortium/organizations", s.AddConsortiumOrganization)
	api.DELETE("/consortium/organizations/:id", s.RemoveConsortiumOrganization)
	api.POST("/consortium/members", s.AddConsortiumMember)
	api.DELETE("/consortium/members/:id", s.RemoveConsortiumMember)

	api.POST("/schedules", s.CreateSchedule)
	api.GET("/schedules", s.ListSchedules)
	api.PATCH("/schedules/:id", s.UpdateSchedule)
	api.DELETE("/schedules/:id", s.DeleteSchedule)
	api.GET("/schedule-types", s.ListScheduleTypes)

	api.POST("/announcements", s.CreateAnnouncement)
	api.GET("/announcements", s.ListAnnouncements)
	api.GET("/announcements/:id", s.GetAnnouncementByID)
	api.PATCH("/announcements/:id", s.UpdateAnnouncement)
	api.DELETE("/announcements/:id", s.DeleteAnnouncement)

	api.POST("/research-logs", s.CreateResearchLog)
	api.GET("/research-logs", s.ListResearchLogs)
	api.GET("/research-logs/:id", s.GetResearchLogByID)
	api.PATCH("/research-logs/:id", s.UpdateResearchLog)
	api.DELETE("/research-logs/:id", s.DeleteResearchLog)
}
