package user

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"fstrack/internal/database"
)

var ErrNotFound = errors.New("user not found")

type UserService struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

func (s *UserService) GetUserByID(userID int) (*database.User, error) {
	var user database.User
	result := s.db.First(&user, "id = ?", userID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, result.Error
	}
	return &user, nil
}

func (s *UserService) GetUserByUsername(username string) (*database.User, error) {
	var user database.User
	result := s.db.First(&user, "username = ?", username)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, result.Error
	}
	return &user, nil
}

// IncrementFailedAttempts bumps the counter server-side and returns the new
// value. The increment and the read are one statement so concurrent failed
// attempts cannot lose an update or race a re-read.
func (s *UserService) IncrementFailedAttempts(userID int) (int, error) {
	var count int
	result := s.db.Raw(
		"UPDATE users SET failed_login_attempts = failed_login_attempts + 1 WHERE id = ? RETURNING failed_login_attempts",
		userID,
	).Scan(&count)
	if result.Error != nil {
		return 0, result.Error
	}
	return count, nil
}

// ResetFailedAttempts clears the counter and the lock together; the two
// fields always change as a pair.
func (s *UserService) ResetFailedAttempts(userID int) error {
	return s.db.Exec(
		"UPDATE users SET failed_login_attempts = 0, locked_until = NULL WHERE id = ?",
		userID,
	).Error
}

func (s *UserService) LockAccount(userID int, until time.Time) error {
	return s.db.Exec(
		"UPDATE users SET locked_until = ? WHERE id = ?",
		until, userID,
	).Error
}

// ClearExpiredLockout is called when a login attempt arrives after the lock
// has run out, before the password is checked.
func (s *UserService) ClearExpiredLockout(userID int) error {
	return s.ResetFailedAttempts(userID)
}

func (s *UserService) UpdateLastLogin(userID int, at time.Time) error {
	return s.db.Exec(
		"UPDATE users SET last_login = ? WHERE id = ?",
		at, userID,
	).Error
}

func (s *UserService) UpdateFirstTime(userID int, isFirstTime bool) error {
	return s.db.Model(&database.User{}).
		Where("id = ?", userID).
		Update("is_first_time", isFirstTime).Error
}
