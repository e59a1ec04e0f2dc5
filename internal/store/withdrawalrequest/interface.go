package withdrawalrequest

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/dwarvesf/funds-backend/internal/model"
)

type ListFilter struct {
	UserID     uint
	PlatformID uint
	Status     model.RequestStatus
	Limit      int
	Offset     int
}

// TerminalFields is the one write a request receives after creation.
type TerminalFields struct {
	Status      model.RequestStatus
	ProcessedAt time.Time
	ProcessedBy uint
	AdminNotes  string
}

type IStore interface {
	Create(tx *gorm.DB, request *model.WithdrawalRequest) (*model.WithdrawalRequest, error)
	GetByID(tx *gorm.DB, id uint) (*model.WithdrawalRequest, error)

	// GetByIDForUpdate re-reads the request holding a row lock until tx ends.
	GetByIDForUpdate(tx *gorm.DB, id uint) (*model.WithdrawalRequest, error)

	ListByUser(tx *gorm.DB, userID uint) ([]*model.WithdrawalRequest, error)
	ListByStatus(tx *gorm.DB, status model.RequestStatus) ([]*model.WithdrawalRequest, error)
	List(tx *gorm.DB, filter ListFilter) ([]*model.WithdrawalRequest, int64, error)

	// SumPendingByUser totals amount + fee over the user's pending requests.
	SumPendingByUser(tx *gorm.DB, userID uint) (decimal.Decimal, error)
	CountByStatus(tx *gorm.DB, status model.RequestStatus) (int64, error)
	CountByPlatform(tx *gorm.DB, platformID uint) (int64, error)

	// UpdateTerminal writes the adjudication only while the row is still
	// pending and returns the number of rows it changed (0 or 1).
	UpdateTerminal(tx *gorm.DB, id uint, fields TerminalFields) (int64, error)
	Delete(tx *gorm.DB, id uint) error
}
