package depositplatform

import (
	"gorm.io/gorm"

	"github.com/dwarvesf/funds-backend/internal/model"
)

type IStore interface {
	Create(tx *gorm.DB, platform *model.DepositPlatform) (*model.DepositPlatform, error)
	Update(tx *gorm.DB, platform *model.DepositPlatform) (*model.DepositPlatform, error)
	GetByID(tx *gorm.DB, id uint) (*model.DepositPlatform, error)
	All(tx *gorm.DB) ([]*model.DepositPlatform, error)
	Active(tx *gorm.DB) ([]*model.DepositPlatform, error)
	Delete(tx *gorm.DB, id uint) error
}
