package schedule

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"fstrack/internal/database"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&database.User{},
		&database.Operator{},
		&database.Schedule{},
	))

	return db
}

func floatPtr(v float64) *float64 { return &v }

func workDate(day int) time.Time {
	return time.Date(2026, 3, day, 0, 0, 0, 0, time.UTC)
}

func TestCreateAlwaysOpen(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)

	sched, err := svc.Create(CreateInput{
		WorkDate: workDate(9),
		Pattern:  "A1",
	})
	require.NoError(t, err)

	assert.Equal(t, database.ScheduleStatusOpen, sched.Status)
	assert.NotEmpty(t, sched.ID)

	var stored database.Schedule
	require.NoError(t, db.First(&stored, "id = ?", sched.ID).Error)
	assert.Equal(t, database.ScheduleStatusOpen, stored.Status)
}

func TestCreateWithIntegralOperatorID(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)

	sched, err := svc.Create(CreateInput{
		WorkDate:   workDate(9),
		Pattern:    "A1",
		OperatorID: floatPtr(4),
	})
	require.NoError(t, err)
	require.NotNil(t, sched.OperatorID)
	assert.Equal(t, 4, *sched.OperatorID)
}

func TestCreateRejectsFractionalOperatorID(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)

	_, err := svc.Create(CreateInput{
		WorkDate:   workDate(9),
		Pattern:    "A1",
		OperatorID: floatPtr(4.5),
	})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "operator_id", verr.Field)
}

func TestAssignOperatorClosesSchedule(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)

	require.NoError(t, db.Create(&database.Operator{ID: 4}).Error)
	sched, err := svc.Create(CreateInput{WorkDate: workDate(9), Pattern: "A1"})
	require.NoError(t, err)

	updated, err := svc.AssignOperator(sched.ID, 4)
	require.NoError(t, err)

	assert.Equal(t, database.ScheduleStatusClosed, updated.Status)
	require.NotNil(t, updated.OperatorID)
	assert.Equal(t, 4, *updated.OperatorID)
}

func TestAssignOperatorUnknownSchedule(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)

	_, err := svc.AssignOperator("1e0a8e2e-0000-0000-0000-000000000000", 4)
	assert.ErrorIs(t, err, ErrScheduleNotFound)
}

func TestAssignOperatorUnknownOperator(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)

	sched, err := svc.Create(CreateInput{WorkDate: workDate(9), Pattern: "A1"})
	require.NoError(t, err)

	_, err = svc.AssignOperator(sched.ID, 42)
	assert.ErrorIs(t, err, ErrOperatorNotFound)

	stored, err := svc.GetByID(sched.ID)
	require.NoError(t, err)
	assert.Equal(t, database.ScheduleStatusOpen, stored.Status, "failed assignment leaves the record untouched")
}

func TestAssignOperatorTerminalStates(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)

	require.NoError(t, db.Create(&database.Operator{ID: 4}).Error)

	for i, status := range []string{database.ScheduleStatusClosed, database.ScheduleStatusCancel} {
		sched := database.Schedule{
			ID:       fmt.Sprintf("0b1e9a00-0000-0000-0000-0000000000%02d", i),
			WorkDate: workDate(9),
			Pattern:  "A1",
			Status:   status,
		}
		require.NoError(t, db.Create(&sched).Error)

		_, err := svc.AssignOperator(sched.ID, 4)

		var terr *InvalidTransitionError
		require.ErrorAs(t, err, &terr)
		assert.Equal(t, status, terr.From)
		assert.Equal(t, database.ScheduleStatusClosed, terr.To)

		stored, err := svc.GetByID(sched.ID)
		require.NoError(t, err)
		assert.Equal(t, status, stored.Status)
		assert.Nil(t, stored.OperatorID)
	}
}

func TestCancelOpenSchedule(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)

	sched, err := svc.Create(CreateInput{WorkDate: workDate(9), Pattern: "A1"})
	require.NoError(t, err)

	cancelled, err := svc.Cancel(sched.ID)
	require.NoError(t, err)
	assert.Equal(t, database.ScheduleStatusCancel, cancelled.Status)
}

func TestCancelIsTerminal(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)

	sched, err := svc.Create(CreateInput{WorkDate: workDate(9), Pattern: "A1"})
	require.NoError(t, err)

	_, err = svc.Cancel(sched.ID)
	require.NoError(t, err)

	_, err = svc.Cancel(sched.ID)
	var terr *InvalidTransitionError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, database.ScheduleStatusCancel, terr.From)
}

func TestCancelClosedSchedule(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)

	require.NoError(t, db.Create(&database.Operator{ID: 4}).Error)
	sched, err := svc.Create(CreateInput{WorkDate: workDate(9), Pattern: "A1"})
	require.NoError(t, err)

	_, err = svc.AssignOperator(sched.ID, 4)
	require.NoError(t, err)

	_, err = svc.Cancel(sched.ID)
	var terr *InvalidTransitionError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, database.ScheduleStatusClosed, terr.From)
	assert.Equal(t, database.ScheduleStatusCancel, terr.To)
}

func TestListPagination(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)

	for i := 0; i < 25; i++ {
		_, err := svc.Create(CreateInput{
			WorkDate: workDate(1 + i%5),
			Pattern:  "A1",
		})
		require.NoError(t, err)
	}

	page, err := svc.List(1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(25), page.Total)
	assert.Equal(t, 3, page.TotalPages)
	assert.Len(t, page.Data, 10)

	last, err := svc.List(3, 10)
	require.NoError(t, err)
	assert.Len(t, last.Data, 5)
}

func TestListOrderedByWorkDateDesc(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)

	for _, day := range []int{3, 9, 6} {
		_, err := svc.Create(CreateInput{WorkDate: workDate(day), Pattern: "A1"})
		require.NoError(t, err)
	}

	page, err := svc.List(1, 10)
	require.NoError(t, err)
	require.Len(t, page.Data, 3)

	assert.Equal(t, workDate(9).Day(), page.Data[0].WorkDate.Day())
	assert.Equal(t, workDate(6).Day(), page.Data[1].WorkDate.Day())
	assert.Equal(t, workDate(3).Day(), page.Data[2].WorkDate.Day())
}

func TestListBounds(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)

	for _, tc := range []struct {
		page, limit int
		field       string
	}{
		{0, 10, "page"},
		{-1, 10, "page"},
		{1, 0, "limit"},
		{1, 101, "limit"},
	} {
		_, err := svc.List(tc.page, tc.limit)

		var verr *ValidationError
		require.ErrorAs(t, err, &verr, "List(%d, %d)", tc.page, tc.limit)
		assert.Equal(t, tc.field, verr.Field)
	}

	_, err := svc.List(1, 100)
	assert.NoError(t, err)
}
