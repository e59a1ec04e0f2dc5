package depositrecord

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/dwarvesf/funds-backend/internal/model"
)

type store struct {
}

func New() IStore {
	return &store{}
}

func (s *store) Create(tx *gorm.DB, record *model.DepositRecord) (*model.DepositRecord, error) {
	return record, tx.Create(record).Error
}

func (s *store) GetByID(tx *gorm.DB, id uint) (*model.DepositRecord, error) {
	var record model.DepositRecord
	err := tx.Where("id = ?", id).First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (s *store) GetByIDForUpdate(tx *gorm.DB, id uint) (*model.DepositRecord, error) {
	var record model.DepositRecord
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", id).First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (s *store) ListByUser(tx *gorm.DB, userID uint) ([]*model.DepositRecord, error) {
	var records []*model.DepositRecord
	err := tx.Where("user_id = ?", userID).Order("id DESC").Find(&records).Error
	return records, err
}

func (s *store) ListByStatus(tx *gorm.DB, status model.RequestStatus) ([]*model.DepositRecord, error) {
	var records []*model.DepositRecord
	err := tx.Where("status = ?", status).Order("id ASC").Find(&records).Error
	return records, err
}

func (s *store) List(tx *gorm.DB, filter ListFilter) ([]*model.DepositRecord, int64, error) {
	var records []*model.DepositRecord
	var total int64

	if err := filtered(tx, filter).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := filtered(tx, filter).Order("id DESC")
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}
	if err := query.Find(&records).Error; err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

func filtered(tx *gorm.DB, filter ListFilter) *gorm.DB {
	query := tx.Model(&model.DepositRecord{})
	if filter.UserID != 0 {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.PlatformID != 0 {
		query = query.Where("platform_id = ?", filter.PlatformID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	return query
}

func (s *store) CountByStatus(tx *gorm.DB, status model.RequestStatus) (int64, error) {
	var count int64
	err := tx.Model(&model.DepositRecord{}).Where("status = ?", status).Count(&count).Error
	return count, err
}

func (s *store) CountByPlatform(tx *gorm.DB, platformID uint) (int64, error) {
	var count int64
	err := tx.Model(&model.DepositRecord{}).Where("platform_id = ?", platformID).Count(&count).Error
	return count, err
}

func (s *store) UpdateTerminal(tx *gorm.DB, id uint, fields TerminalFields) (int64, error) {
	res := tx.Model(&model.DepositRecord{}).
		Where("id = ? AND status = ?", id, model.RequestStatusPending).
		Updates(map[string]interface{}{
			"status":          fields.Status,
			"processed_at":    fields.ProcessedAt,
			"processed_by":    fields.ProcessedBy,
			"admin_notes":     fields.AdminNotes,
			"credited_amount": fields.CreditedAmount,
			"updated_at":      time.Now(),
		})
	return res.RowsAffected, res.Error
}

func (s *store) Delete(tx *gorm.DB, id uint) error {
	return tx.Where("id = ?", id).Delete(&model.DepositRecord{}).Error
}
