package operator

import (
	"errors"

	"github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"

	"fstrack/internal/database"
)

var ErrNotFound = errors.New("operator not found")

type OperatorService struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *OperatorService {
	return &OperatorService{db: db}
}

func (s *OperatorService) GetByID(operatorID int) (*database.Operator, error) {
	var op database.Operator
	result := s.db.First(&op, "id = ?", operatorID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, result.Error
	}
	return &op, nil
}

type OperatorView struct {
	ID           int     `json:"id"`
	OperatorName string  `json:"operator_name"`
	UnitID       *string `json:"unit_id"`
}

// List returns all operators sorted by name. An operator without a linked
// user still shows up, named "Unknown". An empty fleet is not an error.
func (s *OperatorService) List() ([]OperatorView, error) {
	var operators []database.Operator
	result := s.db.
		Joins("LEFT JOIN users ON users.id = operators.user_id").
		Order("users.fullname ASC").
		Preload("User").
		Find(&operators)
	if result.Error != nil {
		return nil, result.Error
	}

	views := make([]OperatorView, 0, len(operators))
	for _, op := range operators {
		name := "Unknown"
		if op.User != nil {
			name = op.User.Fullname
		} else {
			log.Warnf("operator without user: operator_id=%d", op.ID)
		}
		views = append(views, OperatorView{
			ID:           op.ID,
			OperatorName: name,
			UnitID:       op.UnitID,
		})
	}
	return views, nil
}
