package withdrawalplatform

import (
	"gorm.io/gorm"

	"github.com/dwarvesf/funds-backend/internal/model"
)

type store struct{}

func New() IStore {
	return &store{}
}

func (s *store) Create(tx *gorm.DB, platform *model.WithdrawalPlatform) (*model.WithdrawalPlatform, error) {
	return platform, tx.Create(platform).Error
}

// Update writes every column, so is_active=false and a cleared max_amount persist.
func (s *store) Update(tx *gorm.DB, platform *model.WithdrawalPlatform) (*model.WithdrawalPlatform, error) {
	return platform, tx.Save(platform).Error
}

func (s *store) GetByID(tx *gorm.DB, id uint) (*model.WithdrawalPlatform, error) {
	var platform model.WithdrawalPlatform
	if err := tx.Where("id = ?", id).First(&platform).Error; err != nil {
		return nil, err
	}
	return &platform, nil
}

func (s *store) All(tx *gorm.DB) ([]*model.WithdrawalPlatform, error) {
	var platforms []*model.WithdrawalPlatform
	return platforms, tx.Order("id ASC").Find(&platforms).Error
}

func (s *store) Active(tx *gorm.DB) ([]*model.WithdrawalPlatform, error) {
	var platforms []*model.WithdrawalPlatform
	return platforms, tx.Where("is_active = ?", true).Order("id ASC").Find(&platforms).Error
}

func (s *store) Delete(tx *gorm.DB, id uint) error {
	return tx.Where("id = ?", id).Delete(&model.WithdrawalPlatform{}).Error
}
