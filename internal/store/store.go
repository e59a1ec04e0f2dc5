package store

import (
	"github.com/dwarvesf/funds-backend/internal/store/depositplatform"
	"github.com/dwarvesf/funds-backend/internal/store/depositrecord"
	"github.com/dwarvesf/funds-backend/internal/store/userbalance"
	"github.com/dwarvesf/funds-backend/internal/store/withdrawalplatform"
	"github.com/dwarvesf/funds-backend/internal/store/withdrawalrequest"
)

type Store struct {
	WithdrawalPlatform withdrawalplatform.IStore
	DepositPlatform    depositplatform.IStore
	WithdrawalRequest  withdrawalrequest.IStore
	DepositRecord      depositrecord.IStore
	UserBalance        userbalance.IStore
}

func New() *Store {
	return &Store{
		WithdrawalPlatform: withdrawalplatform.New(),
		DepositPlatform:    depositplatform.New(),
		WithdrawalRequest:  withdrawalrequest.New(),
		DepositRecord:      depositrecord.New(),
		UserBalance:        userbalance.New(),
	}
}
