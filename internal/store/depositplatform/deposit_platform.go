package depositplatform

import (
	"gorm.io/gorm"

	"github.com/dwarvesf/funds-backend/internal/model"
)

type store struct{}

func New() IStore {
	return &store{}
}

func (s *store) Create(tx *gorm.DB, platform *model.DepositPlatform) (*model.DepositPlatform, error) {
	return platform, tx.Create(platform).Error
}

// Update writes every column, so is_active=false and a cleared max_amount persist.
func (s *store) Update(tx *gorm.DB, platform *model.DepositPlatform) (*model.DepositPlatform, error) {
	return platform, tx.Save(platform).Error
}

func (s *store) GetByID(tx *gorm.DB, id uint) (*model.DepositPlatform, error) {
	var platform model.DepositPlatform
	if err := tx.Where("id = ?", id).First(&platform).Error; err != nil {
		return nil, err
	}
	return &platform, nil
}

func (s *store) All(tx *gorm.DB) ([]*model.DepositPlatform, error) {
	var platforms []*model.DepositPlatform
	return platforms, tx.Order("id ASC").Find(&platforms).Error
}

func (s *store) Active(tx *gorm.DB) ([]*model.DepositPlatform, error) {
	var platforms []*model.DepositPlatform
	return platforms, tx.Where("is_active = ?", true).Order("id ASC").Find(&platforms).Error
}

func (s *store) Delete(tx *gorm.DB, id uint) error {
	return tx.Where("id = ?", id).Delete(&model.DepositPlatform{}).Error
}
