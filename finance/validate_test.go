package finance_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/savings-ledger/finance"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// =============================================================================
// IDENTIFIER RULES
// =============================================================================

func TestValidateIdentifier(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr string
	}{
		{"uuid", "550e8400-e29b-41d4-a716-446655440000", ""},
		{"slug", "user_42", ""},
		{"surrounding whitespace ok", "  user-1  ", ""},
		{"empty", "", "Owner ID is required"},
		{"whitespace only", "   ", "Owner ID is required"},
		{"inner space", "user 1", "Owner ID is not a valid identifier"},
		{"punctuation", "user@1", "Owner ID is not a valid identifier"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := finance.ValidateIdentifier("Owner ID", tt.value)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.EqualError(t, err, tt.wantErr)
			assert.True(t, finance.IsValidation(err))
		})
	}
}

// =============================================================================
// NAME RULES
// =============================================================================

func TestValidateName(t *testing.T) {
	assert.NoError(t, finance.ValidateName("Name", "Vacation fund"))
	assert.NoError(t, finance.ValidateName("Name", "  ok  "))

	for _, bad := range []string{"", " ", "x", "  x  "} {
		err := finance.ValidateName("Name", bad)
		require.Error(t, err, "value %q should fail", bad)
		assert.EqualError(t, err, "Name must be at least 2 characters")
		assert.True(t, finance.IsValidation(err))
	}
}

// =============================================================================
// AMOUNT RULES
// =============================================================================

func TestValidateAmount(t *testing.T) {
	tests := []struct {
		name      string
		value     string
		allowZero bool
		wantErr   string
	}{
		{"positive integer", "1000", false, ""},
		{"two decimals", "99.99", false, ""},
		{"trailing zeros collapse", "1.100", false, ""},
		{"zero rejected", "0", false, "Target amount must be greater than 0"},
		{"negative rejected", "-5", false, "Target amount must be greater than 0"},
		{"zero allowed", "0", true, ""},
		{"negative with allowZero", "-0.01", true, "Target amount cannot be negative"},
		{"three decimals", "1.005", false, "Target amount cannot have more than 2 decimal places"},
		{"tiny fraction", "0.001", false, "Target amount cannot have more than 2 decimal places"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := finance.ValidateAmount("Target amount", dec(tt.value), tt.allowZero)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.EqualError(t, err, tt.wantErr)
			assert.True(t, finance.IsValidation(err))
		})
	}
}

// =============================================================================
// TAXONOMY HELPERS
// =============================================================================

func TestErrorKinds(t *testing.T) {
	v := &finance.ValidationError{Field: "Name", Message: "Name is required"}
	nf := &finance.NotFoundError{Message: "Goal not found"}
	az := &finance.AuthorizationError{Message: "You do not have permission to access this goal"}

	assert.True(t, finance.IsValidation(v))
	assert.False(t, finance.IsValidation(nf))

	assert.True(t, finance.IsNotFound(nf))
	assert.False(t, finance.IsNotFound(az))

	assert.True(t, finance.IsAuthorization(az))
	assert.False(t, finance.IsAuthorization(v))

	assert.True(t, finance.IsRetryable(finance.ErrConcurrentModification))
	assert.False(t, finance.IsRetryable(v))
}
