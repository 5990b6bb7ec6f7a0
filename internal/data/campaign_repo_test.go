package data

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/betabounty/betabounty-api/internal/testutil"
)

func TestCampaignRepo_GetByID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	repo := NewCampaignRepo(db, &RealTimeProvider{})
	ctx := context.Background()

	campaignID := testutil.SeedCampaign(t, db, testutil.CampaignFixture{
		DailyUserCap: 4,
		AssetSlots:   2,
	})

	c, err := repo.GetByID(ctx, campaignID)
	require.NoError(t, err)
	assert.Equal(t, 4, c.DailyUserCap)
	assert.Equal(t, 2, c.AssetSlots)
	assert.Nil(t, c.ReportSummary)

	_, err = repo.GetByID(ctx, "00000000-0000-0000-0000-000000000000")
	assert.ErrorIs(t, err, ErrCampaignNotFound)
}

func TestCampaignRepo_SetReportSummary(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	repo := NewCampaignRepo(db, &RealTimeProvider{})
	ctx := context.Background()

	campaignID := testutil.SeedCampaign(t, db, testutil.CampaignFixture{})

	require.NoError(t, repo.SetReportSummary(ctx, campaignID, "First draft."))
	require.NoError(t, repo.SetReportSummary(ctx, campaignID, "Regenerated report."))

	c, err := repo.GetByID(ctx, campaignID)
	require.NoError(t, err)
	require.NotNil(t, c.ReportSummary)
	assert.Equal(t, "Regenerated report.", *c.ReportSummary)

	err = repo.SetReportSummary(ctx, "00000000-0000-0000-0000-000000000000", "orphan")
	assert.ErrorIs(t, err, ErrCampaignNotFound)
}

func TestUserRepo_GetByID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	repo := NewUserRepo(db)
	ctx := context.Background()

	userID := testutil.SeedUser(t, db, "lookup@example.com")
	u, err := repo.GetByID(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, "lookup@example.com", u.Email)
	assert.False(t, u.CreatedAt.IsZero())

	_, err = repo.GetByID(ctx, "00000000-0000-0000-0000-000000000000")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
