package identity

import (
	"testing"

	"github.com/invoicing/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBusiness(t *testing.T) {
	t.Run("creates active business", func(t *testing.T) {
		business, err := NewBusiness("Rimon Consulting", "123456789", BusinessTypeLicensedDealer)
		require.NoError(t, err)
		assert.Equal(t, BusinessStatusActive, business.Status)
		assert.Equal(t, "Asia/Jerusalem", business.Timezone)
		assert.Equal(t, int64(1), business.StartingInvoiceNumber, "first document of a fresh business is number 1")
		assert.False(t, business.IsVATExempt())
		assert.Len(t, business.GetDomainEvents(), 1)
	})

	t.Run("rejects short tax id", func(t *testing.T) {
		_, err := NewBusiness("Rimon Consulting", "12345", BusinessTypeCompany)
		require.Error(t, err)
		domainErr, ok := err.(*shared.DomainError)
		require.True(t, ok)
		assert.Equal(t, "INVALID_TAX_ID", domainErr.Code)
	})

	t.Run("rejects non-numeric tax id", func(t *testing.T) {
		_, err := NewBusiness("Rimon Consulting", "12345678a", BusinessTypeCompany)
		assert.Error(t, err)
	})

	t.Run("rejects unknown type", func(t *testing.T) {
		_, err := NewBusiness("Rimon Consulting", "123456789", BusinessType("partnership"))
		assert.Error(t, err)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := NewBusiness("", "123456789", BusinessTypeCompany)
		assert.Error(t, err)
	})
}

func TestBusiness_IsVATExempt(t *testing.T) {
	tests := []struct {
		businessType BusinessType
		exempt       bool
	}{
		{BusinessTypeExemptDealer, true},
		{BusinessTypeLicensedDealer, false},
		{BusinessTypeCompany, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.businessType), func(t *testing.T) {
			business, err := NewBusiness("Test", "123456789", tt.businessType)
			require.NoError(t, err)
			assert.Equal(t, tt.exempt, business.IsVATExempt())
		})
	}
}

func TestBusiness_SetNumbering(t *testing.T) {
	business, err := NewBusiness("Test", "123456789", BusinessTypeCompany)
	require.NoError(t, err)

	t.Run("sets prefix and starting number", func(t *testing.T) {
		require.NoError(t, business.SetNumbering(" inv ", 1000))
		assert.Equal(t, "INV", business.InvoiceNumberPrefix)
		assert.Equal(t, int64(1000), business.StartingInvoiceNumber)
	})

	t.Run("rejects long prefix", func(t *testing.T) {
		err := business.SetNumbering("ABCDEFGHIJKLMNOPQ", 1)
		assert.Error(t, err)
	})

	t.Run("rejects starting number below one", func(t *testing.T) {
		err := business.SetNumbering("INV", 0)
		assert.Error(t, err)

		err = business.SetNumbering("INV", -1)
		assert.Error(t, err)
	})
}

func TestBusiness_SuspendActivate(t *testing.T) {
	business, err := NewBusiness("Test", "123456789", BusinessTypeCompany)
	require.NoError(t, err)

	require.NoError(t, business.Suspend())
	assert.False(t, business.IsActive())
	assert.Error(t, business.Suspend())

	require.NoError(t, business.Activate())
	assert.True(t, business.IsActive())
	assert.Error(t, business.Activate())
}
