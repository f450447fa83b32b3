package auth

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"

	jwtauth "fstrack/internal/auth"
	"fstrack/internal/database"
	"fstrack/internal/platform/user"
	"fstrack/pkg/utils"
)

const (
	maxFailedAttempts = 10
	lockDuration      = 30 * time.Minute
	sessionDuration   = 14 * 24 * time.Hour
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// AccountLockedError reports how long the caller has to wait, rounded up to
// whole minutes for user messaging.
type AccountLockedError struct {
	RemainingMinutes int
}

func (e *AccountLockedError) Error() string {
	return fmt.Sprintf("account locked, try again in %d minutes", e.RemainingMinutes)
}

type AuthService struct {
	users     *user.UserService
	jwtSecret string

	now func() time.Time
}

func NewService(db *gorm.DB, jwtSecret string) *AuthService {
	return &AuthService{
		users:     user.NewService(db),
		jwtSecret: jwtSecret,
		now:       time.Now,
	}
}

// ValidateCredentials checks a username/password pair against the store and
// enforces the lockout policy. Steps run in a fixed order: lookup, lock
// check, expired-lock clear, password compare, counter update. A locked
// account returns before the password is ever compared so the response does
// not depend on the submitted password.
func (s *AuthService) ValidateCredentials(username, password string) (*database.User, error) {
	account, err := s.users.GetUserByUsername(username)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			// Same error as a wrong password, so usernames cannot be probed.
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if account.LockedUntil != nil {
		if now := s.now(); now.Before(*account.LockedUntil) {
			remaining := int(math.Ceil(account.LockedUntil.Sub(now).Minutes()))
			return nil, &AccountLockedError{RemainingMinutes: remaining}
		}

		if err := s.users.ClearExpiredLockout(account.ID); err != nil {
			return nil, err
		}
		account.FailedLoginAttempts = 0
		account.LockedUntil = nil
	}

	if !utils.VerifyPassword(password, account.PasswordHash) {
		count, err := s.users.IncrementFailedAttempts(account.ID)
		if err != nil {
			return nil, err
		}
		if count >= maxFailedAttempts {
			until := s.now().Add(lockDuration)
			if err := s.users.LockAccount(account.ID, until); err != nil {
				return nil, err
			}
			return nil, &AccountLockedError{RemainingMinutes: int(lockDuration.Minutes())}
		}
		return nil, ErrInvalidCredentials
	}

	if err := s.users.ResetFailedAttempts(account.ID); err != nil {
		return nil, err
	}
	now := s.now()
	if err := s.users.UpdateLastLogin(account.ID, now); err != nil {
		return nil, err
	}
	account.FailedLoginAttempts = 0
	account.LockedUntil = nil
	account.LastLogin = &now

	return account, nil
}

type SessionUser struct {
	ID                int     `json:"id"`
	Username          string  `json:"username"`
	Fullname          string  `json:"fullname"`
	Role              string  `json:"role"`
	PlantationGroupID *string `json:"plantation_group_id"`
	IsFirstTime       bool    `json:"is_first_time"`
}

type Session struct {
	AccessToken string      `json:"access_token"`
	User        SessionUser `json:"user"`
}

// IssueSession signs a token for an already validated account. No side
// effects; the projection excludes the hash and the lockout counters.
func (s *AuthService) IssueSession(account *database.User) (*Session, error) {
	now := s.now()
	token, err := jwtauth.GenerateJWT(s.jwtSecret, jwt.MapClaims{
		"sub":                 account.ID,
		"username":            account.Username,
		"role":                account.Role,
		"plantation_group_id": account.PlantationGroupID,
		"iat":                 now.Unix(),
		"exp":                 now.Add(sessionDuration).Unix(),
	})
	if err != nil {
		return nil, err
	}

	return &Session{
		AccessToken: token,
		User: SessionUser{
			ID:                account.ID,
			Username:          account.Username,
			Fullname:          account.Fullname,
			Role:              account.Role,
			PlantationGroupID: account.PlantationGroupID,
			IsFirstTime:       account.IsFirstTime,
		},
	}, nil
}
