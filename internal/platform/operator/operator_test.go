package operator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"fstrack/internal/database"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&database.User{}, &database.Operator{}))

	return db
}

func TestGetByID(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)

	require.NoError(t, db.Create(&database.Operator{ID: 7}).Error)

	op, err := svc.GetByID(7)
	require.NoError(t, err)
	assert.Equal(t, 7, op.ID)

	_, err = svc.GetByID(99)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListSortsByFullname(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)

	users := []database.User{
		{ID: 1, Username: "siti", Fullname: "Siti Rahma", Role: database.RoleOperator},
		{ID: 2, Username: "agus", Fullname: "Agus Wijaya", Role: database.RoleOperator},
	}
	require.NoError(t, db.Create(&users).Error)

	one, two := 1, 2
	operators := []database.Operator{
		{ID: 1, UserID: &one},
		{ID: 2, UserID: &two},
		{ID: 3},
	}
	require.NoError(t, db.Create(&operators).Error)

	views, err := svc.List()
	require.NoError(t, err)
	require.Len(t, views, 3)

	assert.Equal(t, "Unknown", views[0].OperatorName, "operator without user sorts first on NULL name")
	assert.Equal(t, "Agus Wijaya", views[1].OperatorName)
	assert.Equal(t, "Siti Rahma", views[2].OperatorName)
}

func TestListEmpty(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)

	views, err := svc.List()
	require.NoError(t, err)
	assert.Empty(t, views)
}
