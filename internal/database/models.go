package database

import (
	"time"
)

const (
	RoleSuperadmin = "SUPERADMIN"
	RoleManager    = "MANAGER"
	RoleKasiePG    = "KASIE_PG"
	RoleKasieFE    = "KASIE_FE"
	RoleOperator   = "OPERATOR"
)

const (
	ScheduleStatusOpen   = "OPEN"
	ScheduleStatusClosed = "CLOSED"
	ScheduleStatusCancel = "CANCEL"
)

// ValidRole reports whether id is one of the known role identifiers.
func ValidRole(id string) bool {
	switch id {
	case RoleSuperadmin, RoleManager, RoleKasiePG, RoleKasieFE, RoleOperator:
		return true
	}
	return false
}

type User struct {
	ID                  int        `json:"id" gorm:"primaryKey"`
	Username            string     `json:"username" gorm:"size:50;uniqueIndex"`
	PasswordHash        string     `json:"-" gorm:"column:password"`
	Fullname            string     `json:"fullname" gorm:"size:255"`
	Role                string     `json:"role" gorm:"column:role_id;size:32"`
	PlantationGroupID   *string    `json:"plantation_group_id" gorm:"size:10"`
	IsFirstTime         bool       `json:"is_first_time" gorm:"default:true"`
	FailedLoginAttempts int        `json:"-" gorm:"default:0"`
	LockedUntil         *time.Time `json:"-"`
	LastLogin           *time.Time `json:"-"`
	CreatedAt           time.Time  `json:"-"`
	UpdatedAt           time.Time  `json:"-"`
}

func (u *User) TableName() string {
	return "users"
}

type Role struct {
	ID   string `json:"id" gorm:"size:32;primaryKey"`
	Name string `json:"name" gorm:"size:255"`
}

func (r *Role) TableName() string {
	return "roles"
}

type PlantationGroup struct {
	ID   string `json:"id" gorm:"size:10;primaryKey"`
	Name string `json:"name" gorm:"size:255"`
}

func (g *PlantationGroup) TableName() string {
	return "plantation_groups"
}

type Operator struct {
	ID     int     `json:"id" gorm:"primaryKey"`
	UserID *int    `json:"user_id"`
	UnitID *string `json:"unit_id" gorm:"size:16"`
	User   *User   `json:"-" gorm:"foreignKey:UserID"`
}

func (o *Operator) TableName() string {
	return "operators"
}

type Unit struct {
	ID   string `json:"id" gorm:"size:16;primaryKey"`
	Name string `json:"name" gorm:"size:255"`
}

func (u *Unit) TableName() string {
	return "units"
}

type Location struct {
	ID   string `json:"id" gorm:"size:32;primaryKey"`
	Name string `json:"name" gorm:"size:255"`
}

func (l *Location) TableName() string {
	return "locations"
}

type Schedule struct {
	ID         string     `json:"id" gorm:"type:uuid;primaryKey"`
	WorkDate   time.Time  `json:"work_date" gorm:"type:date"`
	Pattern    string     `json:"pattern" gorm:"size:16"`
	Shift      *string    `json:"shift" gorm:"size:16"`
	Status     string     `json:"status" gorm:"size:16;default:'OPEN';check:status IN ('OPEN','CLOSED','CANCEL')"`
	StartTime  *time.Time `json:"start_time"`
	EndTime    *time.Time `json:"end_time"`
	Notes      *string    `json:"notes"`
	LocationID *string    `json:"location_id" gorm:"size:32"`
	UnitID     *string    `json:"unit_id" gorm:"size:16"`
	OperatorID *int       `json:"operator_id"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

func (s *Schedule) TableName() string {
	return "schedules"
}
