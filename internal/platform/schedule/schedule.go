package schedule

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"fstrack/internal/database"
	"fstrack/internal/platform/operator"
)

var (
	ErrScheduleNotFound = errors.New("schedule not found")
	ErrOperatorNotFound = errors.New("operator not found")
)

// Transitions out of OPEN are the only ones permitted; CLOSED and CANCEL are
// terminal. The data layer carries the matching check constraint.
var validTransitions = map[string][]string{
	database.ScheduleStatusOpen:   {database.ScheduleStatusClosed, database.ScheduleStatusCancel},
	database.ScheduleStatusClosed: {},
	database.ScheduleStatusCancel: {},
}

type InvalidTransitionError struct {
	From string
	To   string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid status transition from %s to %s", e.From, e.To)
}

type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

type CreateInput struct {
	WorkDate   time.Time
	Pattern    string
	Shift      *string
	LocationID *string
	UnitID     *string
	OperatorID *float64
	Notes      *string
}

type Page struct {
	Data       []database.Schedule `json:"data"`
	Total      int64               `json:"total"`
	Page       int                 `json:"page"`
	Limit      int                 `json:"limit"`
	TotalPages int                 `json:"total_pages"`
}

type ScheduleService struct {
	db        *gorm.DB
	operators *operator.OperatorService
}

func NewService(db *gorm.DB) *ScheduleService {
	return &ScheduleService{db: db, operators: operator.NewService(db)}
}

// Create persists a new work plan. Status is always OPEN; callers cannot
// choose it. An operator reference must be integral: clients sending floats
// would otherwise silently truncate into a wrong foreign key.
func (s *ScheduleService) Create(input CreateInput) (*database.Schedule, error) {
	var operatorID *int
	if input.OperatorID != nil {
		if *input.OperatorID != math.Trunc(*input.OperatorID) {
			return nil, &ValidationError{Field: "operator_id", Message: "must be an integer"}
		}
		id := int(*input.OperatorID)
		operatorID = &id
	}

	sched := database.Schedule{
		ID:         uuid.NewString(),
		WorkDate:   input.WorkDate,
		Pattern:    input.Pattern,
		Shift:      input.Shift,
		Status:     database.ScheduleStatusOpen,
		LocationID: input.LocationID,
		UnitID:     input.UnitID,
		OperatorID: operatorID,
		Notes:      input.Notes,
	}

	if result := s.db.Create(&sched); result.Error != nil {
		return nil, result.Error
	}
	return &sched, nil
}

func (s *ScheduleService) GetByID(id string) (*database.Schedule, error) {
	var sched database.Schedule
	result := s.db.First(&sched, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrScheduleNotFound
		}
		return nil, result.Error
	}
	return &sched, nil
}

// AssignOperator sets the operator and closes the schedule. This is the only
// way OPEN becomes CLOSED.
func (s *ScheduleService) AssignOperator(id string, operatorID int) (*database.Schedule, error) {
	sched, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if sched.Status != database.ScheduleStatusOpen {
		return nil, &InvalidTransitionError{From: sched.Status, To: database.ScheduleStatusClosed}
	}

	if _, err := s.operators.GetByID(operatorID); err != nil {
		if errors.Is(err, operator.ErrNotFound) {
			return nil, ErrOperatorNotFound
		}
		return nil, err
	}

	sched.OperatorID = &operatorID
	sched.Status = database.ScheduleStatusClosed
	if result := s.db.Save(sched); result.Error != nil {
		return nil, result.Error
	}
	return sched, nil
}

func (s *ScheduleService) Cancel(id string) (*database.Schedule, error) {
	sched, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if !canTransition(sched.Status, database.ScheduleStatusCancel) {
		return nil, &InvalidTransitionError{From: sched.Status, To: database.ScheduleStatusCancel}
	}

	sched.Status = database.ScheduleStatusCancel
	if result := s.db.Save(sched); result.Error != nil {
		return nil, result.Error
	}
	return sched, nil
}

// List returns one page ordered by work date, newest first, with creation
// time as the tie-break. The limit cap keeps result sets bounded.
func (s *ScheduleService) List(page, limit int) (*Page, error) {
	if page < 1 {
		return nil, &ValidationError{Field: "page", Message: "must be at least 1"}
	}
	if limit < 1 {
		return nil, &ValidationError{Field: "limit", Message: "must be at least 1"}
	}
	if limit > 100 {
		return nil, &ValidationError{Field: "limit", Message: "must be at most 100"}
	}

	var total int64
	if result := s.db.Model(&database.Schedule{}).Count(&total); result.Error != nil {
		return nil, result.Error
	}

	var data []database.Schedule
	result := s.db.
		Order("work_date DESC, created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&data)
	if result.Error != nil {
		return nil, result.Error
	}

	return &Page{
		Data:       data,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: int(math.Ceil(float64(total) / float64(limit))),
	}, nil
}

func canTransition(from, to string) bool {
	for _, allowed := range validTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}
