package sale

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockpilot/internal/core/id"
	"stockpilot/internal/core/types"
)

func TestComputeTotals(t *testing.T) {
	doc := New("user-1", id.New())
	doc.AddItem(id.New(), 2, types.MustMoney("50.00"))
	doc.AddItem(id.New(), 1, types.MustMoney("30.00"))

	assert.True(t, doc.Subtotal.Equal(types.MustMoney("130.00")))
	assert.True(t, doc.TotalAmount.Equal(types.MustMoney("130.00")))
}

func TestComputeTotals_DiscountAndTax(t *testing.T) {
	doc := New("user-1", id.New())
	doc.AddItem(id.New(), 2, types.MustMoney("50.00"))
	doc.Discount = types.MustMoney("10.00")
	doc.Tax = types.MustMoney("8.50")
	doc.PaidAmount = types.MustMoney("50.00")
	doc.ComputeTotals()

	assert.True(t, doc.Subtotal.Equal(types.MustMoney("100.00")))
	assert.True(t, doc.TotalAmount.Equal(types.MustMoney("98.50")))
	assert.True(t, doc.DueAmount.Equal(types.MustMoney("48.50")))
}

func TestValidate(t *testing.T) {
	ctx := context.Background()

	doc := New("user-1", id.New())
	doc.AddItem(id.New(), 1, types.MustMoney("5.00"))
	require.NoError(t, doc.Validate(ctx))

	t.Run("missing store", func(t *testing.T) {
		bad := New("user-1", id.Nil())
		bad.AddItem(id.New(), 1, types.MustMoney("5.00"))
		assert.Error(t, bad.Validate(ctx))
	})

	t.Run("negative discount", func(t *testing.T) {
		bad := New("user-1", id.New())
		bad.AddItem(id.New(), 1, types.MustMoney("5.00"))
		bad.Discount = types.MustMoney("-1.00")
		assert.Error(t, bad.Validate(ctx))
	})

	t.Run("no items", func(t *testing.T) {
		bad := New("user-1", id.New())
		assert.Error(t, bad.Validate(ctx))
	})

	t.Run("anonymous customer is allowed", func(t *testing.T) {
		doc := New("user-1", id.New())
		doc.AddItem(id.New(), 1, types.MustMoney("5.00"))
		doc.CustomerID = nil
		assert.NoError(t, doc.Validate(ctx))
	})
}
