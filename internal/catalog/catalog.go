package catalog

import (
	"context"
	"strconv"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/dwarvesf/funds-backend/internal/funds"
	"github.com/dwarvesf/funds-backend/internal/model"
	"github.com/dwarvesf/funds-backend/internal/monitoring"
	"github.com/dwarvesf/funds-backend/internal/store"
	"github.com/dwarvesf/funds-backend/internal/utils/logger"
)

const (
	activeWithdrawalKey = "withdrawal_platforms:active"
	activeDepositKey    = "deposit_platforms:active"
)

type Catalog struct {
	db      *gorm.DB
	store   *store.Store
	cache   *cache.Cache
	metrics *monitoring.FundsMetrics
	logger  *logger.Logger
}

func New(db *gorm.DB, s *store.Store, cacheTTL time.Duration, metrics *monitoring.FundsMetrics, logger *logger.Logger) ICatalog {
	return &Catalog{
		db:      db,
		store:   s,
		cache:   cache.New(cacheTTL, 2*cacheTTL),
		metrics: metrics,
		logger:  logger,
	}
}

func (c *Catalog) GetWithdrawalPlatform(ctx context.Context, id uint) (*model.WithdrawalPlatform, error) {
	platform, err := c.store.WithdrawalPlatform.GetByID(c.db.WithContext(ctx), id)
	if err != nil {
		return nil, c.lookupError("GetWithdrawalPlatform", id, err)
	}
	return platform, nil
}

func (c *Catalog) GetDepositPlatform(ctx context.Context, id uint) (*model.DepositPlatform, error) {
	platform, err := c.store.DepositPlatform.GetByID(c.db.WithContext(ctx), id)
	if err != nil {
		return nil, c.lookupError("GetDepositPlatform", id, err)
	}
	return platform, nil
}

func (c *Catalog) lookupError(fn string, id uint, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return funds.ErrPlatformNotFound
	}
	c.logger.Error("["+fn+"][GetByID]", map[string]string{
		"platform_id": strconv.FormatUint(uint64(id), 10),
		"error":       err.Error(),
	})
	return errors.Wrap(err, "load platform")
}

func (c *Catalog) ListActiveWithdrawalPlatforms(ctx context.Context) ([]*model.WithdrawalPlatform, error) {
	cached, ok := c.cache.Get(activeWithdrawalKey)
	c.metrics.RecordCatalogCache(activeWithdrawalKey, ok)
	if ok {
		return cached.([]*model.WithdrawalPlatform), nil
	}

	platforms, err := c.store.WithdrawalPlatform.Active(c.db.WithContext(ctx))
	if err != nil {
		c.logger.Error("[ListActiveWithdrawalPlatforms][Active]", map[string]string{
			"error": err.Error(),
		})
		return nil, errors.Wrap(err, "list active withdrawal platforms")
	}

	c.cache.SetDefault(activeWithdrawalKey, platforms)
	return platforms, nil
}

func (c *Catalog) ListActiveDepositPlatforms(ctx context.Context) ([]*model.DepositPlatform, error) {
	cached, ok := c.cache.Get(activeDepositKey)
	c.metrics.RecordCatalogCache(activeDepositKey, ok)
	if ok {
		return cached.([]*model.DepositPlatform), nil
	}

	platforms, err := c.store.DepositPlatform.Active(c.db.WithContext(ctx))
	if err != nil {
		c.logger.Error("[ListActiveDepositPlatforms][Active]", map[string]string{
			"error": err.Error(),
		})
		return nil, errors.Wrap(err, "list active deposit platforms")
	}

	c.cache.SetDefault(activeDepositKey, platforms)
	return platforms, nil
}

func (c *Catalog) ListWithdrawalPlatforms(ctx context.Context) ([]*model.WithdrawalPlatform, error) {
	platforms, err := c.store.WithdrawalPlatform.All(c.db.WithContext(ctx))
	if err != nil {
		return nil, errors.Wrap(err, "list withdrawal platforms")
	}
	return platforms, nil
}

func (c *Catalog) ListDepositPlatforms(ctx context.Context) ([]*model.DepositPlatform, error) {
	platforms, err := c.store.DepositPlatform.All(c.db.WithContext(ctx))
	if err != nil {
		return nil, errors.Wrap(err, "list deposit platforms")
	}
	return platforms, nil
}

func (c *Catalog) CreateWithdrawalPlatform(ctx context.Context, platform *model.WithdrawalPlatform) (*model.WithdrawalPlatform, error) {
	if err := platform.Validate(); err != nil {
		return nil, funds.ErrInvalidPlatform.WithMessage(err.Error())
	}

	created, err := c.store.WithdrawalPlatform.Create(c.db.WithContext(ctx), platform)
	if err != nil {
		c.logger.Error("[CreateWithdrawalPlatform][Create]", map[string]string{
			"name":  platform.Name,
			"error": err.Error(),
		})
		return nil, errors.Wrap(err, "create withdrawal platform")
	}

	c.cache.Delete(activeWithdrawalKey)
	c.logger.Info("[CreateWithdrawalPlatform] platform created", map[string]string{
		"platform_id": strconv.FormatUint(uint64(created.ID), 10),
		"symbol":      created.Symbol,
	})
	return created, nil
}

func (c *Catalog) UpdateWithdrawalPlatform(ctx context.Context, platform *model.WithdrawalPlatform) (*model.WithdrawalPlatform, error) {
	if err := platform.Validate(); err != nil {
		return nil, funds.ErrInvalidPlatform.WithMessage(err.Error())
	}

	existing, err := c.GetWithdrawalPlatform(ctx, platform.ID)
	if err != nil {
		return nil, err
	}
	platform.CreatedAt = existing.CreatedAt

	updated, err := c.store.WithdrawalPlatform.Update(c.db.WithContext(ctx), platform)
	if err != nil {
		c.logger.Error("[UpdateWithdrawalPlatform][Update]", map[string]string{
			"platform_id": strconv.FormatUint(uint64(platform.ID), 10),
			"error":       err.Error(),
		})
		return nil, errors.Wrap(err, "update withdrawal platform")
	}

	c.cache.Delete(activeWithdrawalKey)
	return updated, nil
}

func (c *Catalog) DeleteWithdrawalPlatform(ctx context.Context, id uint) error {
	if _, err := c.GetWithdrawalPlatform(ctx, id); err != nil {
		return err
	}
	if c.IsWithdrawalPlatformInUse(ctx, id) {
		return funds.ErrPlatformInUse
	}

	if err := c.store.WithdrawalPlatform.Delete(c.db.WithContext(ctx), id); err != nil {
		c.logger.Error("[DeleteWithdrawalPlatform][Delete]", map[string]string{
			"platform_id": strconv.FormatUint(uint64(id), 10),
			"error":       err.Error(),
		})
		return errors.Wrap(err, "delete withdrawal platform")
	}

	c.cache.Delete(activeWithdrawalKey)
	return nil
}

func (c *Catalog) CreateDepositPlatform(ctx context.Context, platform *model.DepositPlatform) (*model.DepositPlatform, error) {
	if err := platform.Validate(); err != nil {
		return nil, funds.ErrInvalidPlatform.WithMessage(err.Error())
	}

	created, err := c.store.DepositPlatform.Create(c.db.WithContext(ctx), platform)
	if err != nil {
		c.logger.Error("[CreateDepositPlatform][Create]", map[string]string{
			"name":  platform.Name,
			"error": err.Error(),
		})
		return nil, errors.Wrap(err, "create deposit platform")
	}

	c.cache.Delete(activeDepositKey)
	c.logger.Info("[CreateDepositPlatform] platform created", map[string]string{
		"platform_id": strconv.FormatUint(uint64(created.ID), 10),
		"symbol":      created.Symbol,
	})
	return created, nil
}

func (c *Catalog) UpdateDepositPlatform(ctx context.Context, platform *model.DepositPlatform) (*model.DepositPlatform, error) {
	if err := platform.Validate(); err != nil {
		return nil, funds.ErrInvalidPlatform.WithMessage(err.Error())
	}

	existing, err := c.GetDepositPlatform(ctx, platform.ID)
	if err != nil {
		return nil, err
	}
	platform.CreatedAt = existing.CreatedAt

	updated, err := c.store.DepositPlatform.Update(c.db.WithContext(ctx), platform)
	if err != nil {
		c.logger.Error("[UpdateDepositPlatform][Update]", map[string]string{
			"platform_id": strconv.FormatUint(uint64(platform.ID), 10),
			"error":       err.Error(),
		})
		return nil, errors.Wrap(err, "update deposit platform")
	}

	c.cache.Delete(activeDepositKey)
	return updated, nil
}

func (c *Catalog) DeleteDepositPlatform(ctx context.Context, id uint) error {
	if _, err := c.GetDepositPlatform(ctx, id); err != nil {
		return err
	}
	if c.IsDepositPlatformInUse(ctx, id) {
		return funds.ErrPlatformInUse
	}

	if err := c.store.DepositPlatform.Delete(c.db.WithContext(ctx), id); err != nil {
		c.logger.Error("[DeleteDepositPlatform][Delete]", map[string]string{
			"platform_id": strconv.FormatUint(uint64(id), 10),
			"error":       err.Error(),
		})
		return errors.Wrap(err, "delete deposit platform")
	}

	c.cache.Delete(activeDepositKey)
	return nil
}

func (c *Catalog) IsWithdrawalPlatformInUse(ctx context.Context, id uint) bool {
	count, err := c.store.WithdrawalRequest.CountByPlatform(c.db.WithContext(ctx), id)
	if err != nil {
		c.logger.Warn("[IsWithdrawalPlatformInUse][CountByPlatform] treating platform as in use", map[string]string{
			"platform_id": strconv.FormatUint(uint64(id), 10),
			"error":       err.Error(),
		})
		return true
	}
	return count > 0
}

func (c *Catalog) IsDepositPlatformInUse(ctx context.Context, id uint) bool {
	count, err := c.store.DepositRecord.CountByPlatform(c.db.WithContext(ctx), id)
	if err != nil {
		c.logger.Warn("[IsDepositPlatformInUse][CountByPlatform] treating platform as in use", map[string]string{
			"platform_id": strconv.FormatUint(uint64(id), 10),
			"error":       err.Error(),
		})
		return true
	}
	return count > 0
}
