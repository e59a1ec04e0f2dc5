package withdrawalrequest

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/dwarvesf/funds-backend/internal/model"
)

type store struct {
}

func New() IStore {
	return &store{}
}

func (s *store) Create(tx *gorm.DB, request *model.WithdrawalRequest) (*model.WithdrawalRequest, error) {
	return request, tx.Create(request).Error
}

func (s *store) GetByID(tx *gorm.DB, id uint) (*model.WithdrawalRequest, error) {
	var request model.WithdrawalRequest
	err := tx.Where("id = ?", id).First(&request).Error
	if err != nil {
		return nil, err
	}
	return &request, nil
}

func (s *store) GetByIDForUpdate(tx *gorm.DB, id uint) (*model.WithdrawalRequest, error) {
	var request model.WithdrawalRequest
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", id).First(&request).Error
	if err != nil {
		return nil, err
	}
	return &request, nil
}

func (s *store) ListByUser(tx *gorm.DB, userID uint) ([]*model.WithdrawalRequest, error) {
	var requests []*model.WithdrawalRequest
	err := tx.Where("user_id = ?", userID).Order("id DESC").Find(&requests).Error
	return requests, err
}

func (s *store) ListByStatus(tx *gorm.DB, status model.RequestStatus) ([]*model.WithdrawalRequest, error) {
	var requests []*model.WithdrawalRequest
	err := tx.Where("status = ?", status).Order("id ASC").Find(&requests).Error
	return requests, err
}

func (s *store) List(tx *gorm.DB, filter ListFilter) ([]*model.WithdrawalRequest, int64, error) {
	var requests []*model.WithdrawalRequest
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
	if err := query.Find(&requests).Error; err != nil {
		return nil, 0, err
	}
	return requests, total, nil
}

func filtered(tx *gorm.DB, filter ListFilter) *gorm.DB {
	query := tx.Model(&model.WithdrawalRequest{})
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

func (s *store) SumPendingByUser(tx *gorm.DB, userID uint) (decimal.Decimal, error) {
	var pending []*model.WithdrawalRequest
	err := tx.Select("amount", "fee").
		Where("user_id = ? AND status = ?", userID, model.RequestStatusPending).
		Find(&pending).Error
	if err != nil {
		return decimal.Zero, err
	}

	sum := decimal.Zero
	for _, r := range pending {
		sum = sum.Add(r.TotalDebit())
	}
	return sum, nil
}

func (s *store) CountByStatus(tx *gorm.DB, status model.RequestStatus) (int64, error) {
	var count int64
	err := tx.Model(&model.WithdrawalRequest{}).Where("status = ?", status).Count(&count).Error
	return count, err
}

func (s *store) CountByPlatform(tx *gorm.DB, platformID uint) (int64, error) {
	var count int64
	err := tx.Model(&model.WithdrawalRequest{}).Where("platform_id = ?", platformID).Count(&count).Error
	return count, err
}

func (s *store) UpdateTerminal(tx *gorm.DB, id uint, fields TerminalFields) (int64, error) {
	res := tx.Model(&model.WithdrawalRequest{}).
		Where("id = ? AND status = ?", id, model.RequestStatusPending).
		Updates(map[string]interface{}{
			"status":       fields.Status,
			"processed_at": fields.ProcessedAt,
			"processed_by": fields.ProcessedBy,
			"admin_notes":  fields.AdminNotes,
			"updated_at":   time.Now(),
		})
	return res.RowsAffected, res.Error
}

func (s *store) Delete(tx *gorm.DB, id uint) error {
	return tx.Where("id = ?", id).Delete(&model.WithdrawalRequest{}).Error
}
