package depositrecord

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

type TerminalFields struct {
	Status         model.RequestStatus
	ProcessedAt    time.Time
	ProcessedBy    uint
	AdminNotes     string
	CreditedAmount decimal.NullDecimal
}

type IStore interface {
	Create(tx *gorm.DB, record *model.DepositRecord) (*model.DepositRecord, error)
	GetByID(tx *gorm.DB, id uint) (*model.DepositRecord, error)

	// GetByIDForUpdate re-reads the record holding a row lock until tx ends.
	GetByIDForUpdate(tx *gorm.DB, id uint) (*model.DepositRecord, error)

	ListByUser(tx *gorm.DB, userID uint) ([]*model.DepositRecord, error)
	ListByStatus(tx *gorm.DB, status model.RequestStatus) ([]*model.DepositRecord, error)
	List(tx *gorm.DB, filter ListFilter) ([]*model.DepositRecord, int64, error)

	CountByStatus(tx *gorm.DB, status model.RequestStatus) (int64, error)
	CountByPlatform(tx *gorm.DB, platformID uint) (int64, error)

	// UpdateTerminal writes the adjudication only while the row is still
	// pending and returns the number of rows it changed (0 or 1).
	UpdateTerminal(tx *gorm.DB, id uint, fields TerminalFields) (int64, error)
	Delete(tx *gorm.DB, id uint) error
}
