package repo_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ngohub/casework/internal/domain"
	"github.com/ngohub/casework/internal/repo"
	"github.com/ngohub/casework/testutil"
)

func newActivityRepo(t *testing.T) repo.ActivityRepo {
	t.Helper()
	return repo.NewActivityRepo(testutil.NewTx(t))
}

func day(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func activityFixture() domain.Activity {
	capacity := 30
	return domain.Activity{
		Name:                "Riverside cleanup",
		Location:            "Tamsui",
		Description:         "Bring gloves",
		StartDate:           day(2025, 6, 1),
		EndDate:             day(2025, 6, 2),
		SignupDeadline:      day(2025, 5, 25),
		CurrentParticipants: 12,
		MaxParticipants:     &capacity,
		Status:              domain.StatusUpcoming,
		Category:            "environment",
		TargetAudience:      "families",
	}
}

func TestActivityRepo_Create(t *testing.T) {
	r := newActivityRepo(t)

	in := activityFixture()
	got, err := r.Create(context.Background(), in)

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, got.ID)
	assert.Equal(t, in.Name, got.Name)
	require.NotNil(t, got.StartDate)
	assert.True(t, got.StartDate.Equal(*in.StartDate))
	require.NotNil(t, got.SignupDeadline)
	assert.True(t, got.SignupDeadline.Equal(*in.SignupDeadline))
	require.NotNil(t, got.MaxParticipants)
	assert.Equal(t, 30, *got.MaxParticipants)
	assert.Equal(t, 12, got.CurrentParticipants)
	assert.Equal(t, "environment", got.Category)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestActivityRepo_Create_NullableFields(t *testing.T) {
	r := newActivityRepo(t)

	got, err := r.Create(context.Background(), domain.Activity{Name: "Undated talk"})

	require.NoError(t, err)
	assert.Nil(t, got.StartDate)
	assert.Nil(t, got.EndDate)
	assert.Nil(t, got.SignupDeadline)
	assert.Nil(t, got.MaxParticipants)
	assert.Empty(t, got.Status)
}

func TestActivityRepo_GetByID_NotFound(t *testing.T) {
	r := newActivityRepo(t)

	_, err := r.GetByID(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestActivityRepo_ListPaged_FiltersAndCounts(t *testing.T) {
	r := newActivityRepo(t)
	ctx := context.Background()

	for i, cat := range []string{"environment", "environment", "sports"} {
		a := activityFixture()
		a.StartDate = day(2025, 6, 1+i)
		a.Category = cat
		_, err := r.Create(ctx, a)
		require.NoError(t, err)
	}

	page1, total, err := r.ListPaged(ctx,
		domain.ActivityFilter{Category: "environment"},
		domain.PaginationParams{Page: 1, PageSize: 1})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, page1, 1)
	// Newest start date first.
	assert.True(t, page1[0].StartDate.Equal(*day(2025, 6, 2)))

	page2, _, err := r.ListPaged(ctx,
		domain.ActivityFilter{Category: "environment"},
		domain.PaginationParams{Page: 2, PageSize: 1})
	require.NoError(t, err)
	require.Len(t, page2, 1)
	assert.NotEqual(t, page1[0].ID, page2[0].ID)
}

func TestActivityRepo_ListPaged_Query(t *testing.T) {
	r := newActivityRepo(t)
	ctx := context.Background()

	a := activityFixture()
	a.Name = "Elderly tea afternoon"
	_, err := r.Create(ctx, a)
	require.NoError(t, err)

	got, total, err := r.ListPaged(ctx, domain.ActivityFilter{Query: "TEA"}, domain.PaginationParams{Page: 1, PageSize: 20})

	require.NoError(t, err)
	assert.GreaterOrEqual(t, total, 1)
	assert.NotEmpty(t, got)
}

func TestActivityRepo_Update(t *testing.T) {
	r := newActivityRepo(t)
	ctx := context.Background()

	created, err := r.Create(ctx, activityFixture())
	require.NoError(t, err)

	created.Name = "Renamed"
	created.MaxParticipants = nil
	created.Status = domain.StatusOngoing
	got, err := r.Update(ctx, created)

	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Name)
	assert.Nil(t, got.MaxParticipants)
	assert.Equal(t, domain.StatusOngoing, got.Status)
	assert.False(t, got.UpdatedAt.Before(created.UpdatedAt))
}

func TestActivityRepo_Update_NotFound(t *testing.T) {
	r := newActivityRepo(t)

	a := activityFixture()
	a.ID = uuid.New()
	_, err := r.Update(context.Background(), a)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestActivityRepo_Delete(t *testing.T) {
	r := newActivityRepo(t)
	ctx := context.Background()

	created, err := r.Create(ctx, activityFixture())
	require.NoError(t, err)

	require.NoError(t, r.Delete(ctx, created.ID))
	_, err = r.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.ErrorIs(t, r.Delete(ctx, created.ID), domain.ErrNotFound)
}
