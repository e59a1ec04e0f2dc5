package model

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestPlatformConstraints_Validate(t *testing.T) {
	tests := []struct {
		name    string
		input   PlatformConstraints
		wantErr error
	}{
		{
			name:  "bounded range",
			input: PlatformConstraints{MinAmount: decimal.NewFromInt(10), MaxAmount: decimal.NewNullDecimal(decimal.NewFromInt(1000)), Fee: decimal.NewFromInt(1)},
		},
		{
			name:  "unbounded max",
			input: PlatformConstraints{MinAmount: decimal.Zero},
		},
		{
			name:  "max equal to min",
			input: PlatformConstraints{MinAmount: decimal.NewFromInt(5), MaxAmount: decimal.NewNullDecimal(decimal.NewFromInt(5))},
		},
		{
			name:    "negative min",
			input:   PlatformConstraints{MinAmount: decimal.NewFromInt(-1)},
			wantErr: ErrNegativeMinAmount,
		},
		{
			name:    "max below min",
			input:   PlatformConstraints{MinAmount: decimal.NewFromInt(10), MaxAmount: decimal.NewNullDecimal(decimal.NewFromInt(9))},
			wantErr: ErrMaxBelowMinAmount,
		},
		{
			name:    "negative fee",
			input:   PlatformConstraints{Fee: decimal.NewFromInt(-2)},
			wantErr: ErrNegativeFee,
		},
		{
			name:    "min finer than the stored scale",
			input:   PlatformConstraints{MinAmount: decimal.RequireFromString("0.0000000000000000001")},
			wantErr: ErrAmountPrecision,
		},
		{
			name:    "fee finer than the stored scale",
			input:   PlatformConstraints{Fee: decimal.RequireFromString("1.0000000000000000005")},
			wantErr: ErrAmountPrecision,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.input.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestDepositPlatform_ConstraintsHaveNoFee(t *testing.T) {
	p := DepositPlatform{ID: 3, Name: "Bank", Symbol: "USD", MinAmount: decimal.NewFromInt(1), IsActive: true}

	c := p.Constraints()
	assert.True(t, c.Fee.IsZero())
	assert.Equal(t, uint(3), c.ID)
	assert.NoError(t, p.Validate())

	p.Symbol = ""
	assert.ErrorIs(t, p.Validate(), ErrPlatformSymbolEmpty)
}

func TestWithdrawalPlatform_Validate(t *testing.T) {
	p := WithdrawalPlatform{Symbol: "USDT", MinAmount: decimal.NewFromInt(1)}
	assert.ErrorIs(t, p.Validate(), ErrPlatformNameMissing)

	p.Name = "Tether"
	p.Fee = decimal.RequireFromString("0.5")
	assert.NoError(t, p.Validate())
}

func TestWithdrawalRequest_TotalDebit(t *testing.T) {
	w := WithdrawalRequest{Amount: decimal.RequireFromString("100.12345678"), Fee: decimal.RequireFromString("0.00000001")}
	assert.True(t, w.TotalDebit().Equal(decimal.RequireFromString("100.12345679")))
}

func TestAdjudication_Consistent(t *testing.T) {
	now := time.Now()
	admin := uint(7)

	assert.True(t, NewPendingAdjudication().Consistent())
	assert.False(t, Adjudication{Status: RequestStatusPending, ProcessedAt: &now}.Consistent())
	assert.True(t, Adjudication{Status: RequestStatusApproved, ProcessedAt: &now, ProcessedBy: &admin}.Consistent())
	assert.False(t, Adjudication{Status: RequestStatusRejected}.Consistent())
	assert.False(t, Adjudication{Status: "cancelled", ProcessedAt: &now, ProcessedBy: &admin}.Consistent())
}

func TestRequestStatus(t *testing.T) {
	assert.False(t, RequestStatusPending.IsTerminal())
	assert.True(t, RequestStatusApproved.IsTerminal())
	assert.True(t, RequestStatusRejected.IsTerminal())
	assert.True(t, RequestStatusPending.IsValid())
	assert.False(t, RequestStatus("cancelled").IsValid())
}

func TestFitsAmountScale(t *testing.T) {
	assert.True(t, FitsAmountScale(decimal.RequireFromString("45.000000000000000001")))
	assert.True(t, FitsAmountScale(decimal.RequireFromString("45.0000000000000000000")))
	assert.False(t, FitsAmountScale(decimal.RequireFromString("45.0000000000000000004")))
}
