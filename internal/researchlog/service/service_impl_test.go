package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/nextlab/researchdesk/internal/researchlog/domain"
	"github.com/nextlab/researchdesk/internal/tenantctx"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupLogService(t *testing.T) (domain.Service, *snowflake.Node) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	require.NoError(t, db.AutoMigrate(&domain.ResearchLog{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := NewService(Params{
		DB:    db,
		Log:   zap.NewNop(),
		GenID: node,
	})
	return svc, node
}

func logCtx(companyID, memberID snowflake.ID) context.Context {
	ctx := tenantctx.WithCompanyID(context.Background(), companyID)
	return tenantctx.WithMemberID(ctx, memberID)
}

func TestCreateLogTruncatesDate(t *testing.T) {
	svc, node := setupLogService(t)
	ctx := logCtx(node.Generate(), node.Generate())

	created, err := svc.Create(ctx, domain.CreateResearchLogRequest{
		ProjectID: node.Generate().String(),
		LogDate:   time.Date(2026, 9, 1, 14, 30, 45, 0, time.UTC),
		Content:   "ran the second calibration batch",
	})
	require.NoError(t, err)
	require.Equal(t, time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), created.LogDate)
}

func TestUpdateLogOwnerOnly(t *testing.T) {
	svc, node := setupLogService(t)
	companyID := node.Generate()
	author := node.Generate()
	other := node.Generate()

	created, err := svc.Create(logCtx(companyID, author), domain.CreateResearchLogRequest{
		ProjectID: node.Generate().String(),
		LogDate:   time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC),
		Content:   "initial draft",
	})
	require.NoError(t, err)

	content := "revised"
	_, err = svc.Update(logCtx(companyID, other), domain.UpdateResearchLogRequest{
		ID:      created.ID.String(),
		Content: &content,
	})
	require.ErrorIs(t, err, domain.ErrNotOwner)

	updated, err := svc.Update(logCtx(companyID, author), domain.UpdateResearchLogRequest{
		ID:      created.ID.String(),
		Content: &content,
	})
	require.NoError(t, err)
	require.Equal(t, "revised", updated.Content)
}

func TestDeleteLogOwnerOnly(t *testing.T) {
	svc, node := setupLogService(t)
	companyID := node.Generate()
	author := node.Generate()
	other := node.Generate()

	created, err := svc.Create(logCtx(companyID, author), domain.CreateResearchLogRequest{
		ProjectID: node.Generate().String(),
		LogDate:   time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC),
		Content:   "entry",
	})
	require.NoError(t, err)

	err = svc.Delete(logCtx(companyID, other), domain.GetResearchLogRequest{ID: created.ID.String()})
	require.ErrorIs(t, err, domain.ErrNotOwner)

	err = svc.Delete(logCtx(companyID, author), domain.GetResearchLogRequest{ID: created.ID.String()})
	require.NoError(t, err)

	_, err = svc.GetByID(logCtx(companyID, author), domain.GetResearchLogRequest{ID: created.ID.String()})
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListLogsFiltersByMember(t *testing.T) {
	svc, node := setupLogService(t)
	companyID := node.Generate()
	memberA := node.Generate()
	memberB := node.Generate()
	projectID := node.Generate()

	for _, member := range []snowflake.ID{memberA, memberA, memberB} {
		_, err := svc.Create(logCtx(companyID, member), domain.CreateResearchLogRequest{
			ProjectID: projectID.String(),
			LogDate:   time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
			Content:   "daily log",
		})
		require.NoError(t, err)
	}

	resp, err := svc.List(logCtx(companyID, memberA), domain.ListResearchLogRequest{
		MemberID: memberA.String(),
	})
	require.NoError(t, err)
	require.Len(t, resp.Logs, 2)
}

func TestCreateLogRejectsEmptyContent(t *testing.T) {
	svc, node := setupLogService(t)
	ctx := logCtx(node.Generate(), node.Generate())

	_, err := svc.Create(ctx, domain.CreateResearchLogRequest{
		ProjectID: node.Generate().String(),
		LogDate:   time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		Content:   "   ",
	})
	require.ErrorIs(t, err, domain.ErrInvalidContent)
}
