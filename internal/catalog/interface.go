package catalog

import (
	"context"

	"github.com/dwarvesf/funds-backend/internal/model"
)

type ICatalog interface {
	// GetWithdrawalPlatform returns the platform whatever its active flag;
	// funds.ErrPlatformNotFound when it does not exist.
	GetWithdrawalPlatform(ctx context.Context, id uint) (*model.WithdrawalPlatform, error)
	GetDepositPlatform(ctx context.Context, id uint) (*model.DepositPlatform, error)

	// ListActive* serve the user-facing lists from an in-memory cache that
	// every admin write invalidates.
	ListActiveWithdrawalPlatforms(ctx context.Context) ([]*model.WithdrawalPlatform, error)
	ListActiveDepositPlatforms(ctx context.Context) ([]*model.DepositPlatform, error)

	ListWithdrawalPlatforms(ctx context.Context) ([]*model.WithdrawalPlatform, error)
	ListDepositPlatforms(ctx context.Context) ([]*model.DepositPlatform, error)

	CreateWithdrawalPlatform(ctx context.Context, platform *model.WithdrawalPlatform) (*model.WithdrawalPlatform, error)
	UpdateWithdrawalPlatform(ctx context.Context, platform *model.WithdrawalPlatform) (*model.WithdrawalPlatform, error)
	DeleteWithdrawalPlatform(ctx context.Context, id uint) error

	CreateDepositPlatform(ctx context.Context, platform *model.DepositPlatform) (*model.DepositPlatform, error)
	UpdateDepositPlatform(ctx context.Context, platform *model.DepositPlatform) (*model.DepositPlatform, error)
	DeleteDepositPlatform(ctx context.Context, id uint) error

	// IsWithdrawalPlatformInUse reports whether any request references the
	// platform. Lookup failures report true.
	IsWithdrawalPlatformInUse(ctx context.Context, id uint) bool
	IsDepositPlatformInUse(ctx context.Context, id uint) bool
}
