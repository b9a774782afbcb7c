package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/nextlab/researchdesk/internal/schedule/domain"
	"github.com/nextlab/researchdesk/internal/tenantctx"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupScheduleService(t *testing.T) (domain.Service, *gorm.DB, *snowflake.Node) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	require.NoError(t, db.AutoMigrate(&domain.ScheduleType{}, &domain.Schedule{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := NewService(Params{
		DB:    db,
		Log:   zap.NewNop(),
		GenID: node,
	})
	return svc, db, node
}

func TestListTypesSeedsDefaultsOnce(t *testing.T) {
	svc, db, node := setupScheduleService(t)
	ctx := tenantctx.WithCompanyID(context.Background(), node.Generate())

	first, err := svc.ListTypes(ctx)
	require.NoError(t, err)
	require.Len(t, first.Types, len(defaultTypes))

	second, err := svc.ListTypes(ctx)
	require.NoError(t, err)
	require.Len(t, second.Types, len(defaultTypes))

	var count int64
	require.NoError(t, db.Model(&domain.ScheduleType{}).Count(&count).Error)
	require.EqualValues(t, len(defaultTypes), count)
}

func TestListTypesSeedsPerCompany(t *testing.T) {
	svc, db, node := setupScheduleService(t)
	ctxA := tenantctx.WithCompanyID(context.Background(), node.Generate())
	ctxB := tenantctx.WithCompanyID(context.Background(), node.Generate())

	_, err := svc.ListTypes(ctxA)
	require.NoError(t, err)
	_, err = svc.ListTypes(ctxB)
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&domain.ScheduleType{}).Count(&count).Error)
	require.EqualValues(t, 2*len(defaultTypes), count)
}

func TestCreateRejectsInvertedTimespan(t *testing.T) {
	svc, _, node := setupScheduleService(t)
	ctx := tenantctx.WithCompanyID(context.Background(), node.Generate())

	starts := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	ends := starts.Add(-time.Hour)
	_, err := svc.Create(ctx, domain.CreateScheduleRequest{
		Title:    "kickoff",
		StartsAt: starts,
		EndsAt:   &ends,
	})
	require.ErrorIs(t, err, domain.ErrInvalidTimespan)
}

func TestListFiltersByWindow(t *testing.T) {
	svc, _, node := setupScheduleService(t)
	ctx := tenantctx.WithCompanyID(context.Background(), node.Generate())

	inside := time.Date(2026, 9, 10, 9, 0, 0, 0, time.UTC)
	outside := time.Date(2026, 10, 5, 9, 0, 0, 0, time.UTC)

	_, err := svc.Create(ctx, domain.CreateScheduleRequest{Title: "inside", StartsAt: inside})
	require.NoError(t, err)
	_, err = svc.Create(ctx, domain.CreateScheduleRequest{Title: "outside", StartsAt: outside})
	require.NoError(t, err)

	from := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 9, 30, 23, 59, 59, 0, time.UTC)
	resp, err := svc.List(ctx, domain.ListScheduleRequest{From: &from, To: &to})
	require.NoError(t, err)
	require.Len(t, resp.Schedules, 1)
	require.Equal(t, "inside", resp.Schedules[0].Title)
}
