package withdrawalplatform

import (
	"gorm.io/gorm"

	"github.com/dwarvesf/funds-backend/internal/model"
)

type IStore interface {
	Create(tx *gorm.DB, platform *model.WithdrawalPlatform) (*model.WithdrawalPlatform, error)
	Update(tx *gorm.DB, platform *model.WithdrawalPlatform) (*model.WithdrawalPlatform, error)
	GetByID(tx *gorm.DB, id uint) (*model.WithdrawalPlatform, error)
	All(tx *gorm.DB) ([]*model.WithdrawalPlatform, error)
	Active(tx *gorm.DB) ([]*model.WithdrawalPlatform, error)
	Delete(tx *gorm.DB, id uint) error
}
