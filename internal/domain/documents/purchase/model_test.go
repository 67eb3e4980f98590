package purchase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockpilot/internal/core/apperror"
	"stockpilot/internal/core/id"
	"stockpilot/internal/core/types"
)

func TestComputeTotals(t *testing.T) {
	doc := New("user-1", id.New(), id.New())
	doc.AddItem(id.New(), 10, types.MustMoney("12.50"))
	doc.AddItem(id.New(), 3, types.MustMoney("7.00"))

	assert.True(t, doc.Items[0].TotalPrice.Equal(types.MustMoney("125.00")))
	assert.True(t, doc.Items[1].TotalPrice.Equal(types.MustMoney("21.00")))
	assert.True(t, doc.TotalAmount.Equal(types.MustMoney("146.00")))
	assert.True(t, doc.DueAmount.Equal(types.MustMoney("146.00")))
}

func TestComputeTotals_PartialPayment(t *testing.T) {
	doc := New("user-1", id.New(), id.New())
	doc.AddItem(id.New(), 4, types.MustMoney("25.00"))
	doc.PaidAmount = types.MustMoney("60.00")
	doc.ComputeTotals()

	assert.True(t, doc.TotalAmount.Equal(types.MustMoney("100.00")))
	assert.True(t, doc.DueAmount.Equal(types.MustMoney("40.00")))
}

func TestValidate(t *testing.T) {
	ctx := context.Background()

	doc := New("user-1", id.New(), id.New())
	doc.AddItem(id.New(), 5, types.MustMoney("10.00"))
	require.NoError(t, doc.Validate(ctx))

	t.Run("missing vendor", func(t *testing.T) {
		bad := New("user-1", id.Nil(), id.New())
		bad.AddItem(id.New(), 1, types.MustMoney("1.00"))
		assertValidationError(t, bad.Validate(ctx))
	})

	t.Run("missing store", func(t *testing.T) {
		bad := New("user-1", id.New(), id.Nil())
		bad.AddItem(id.New(), 1, types.MustMoney("1.00"))
		assertValidationError(t, bad.Validate(ctx))
	})

	t.Run("no items", func(t *testing.T) {
		bad := New("user-1", id.New(), id.New())
		assertValidationError(t, bad.Validate(ctx))
	})

	t.Run("zero quantity", func(t *testing.T) {
		bad := New("user-1", id.New(), id.New())
		bad.AddItem(id.New(), 0, types.MustMoney("1.00"))
		assertValidationError(t, bad.Validate(ctx))
	})

	t.Run("negative price", func(t *testing.T) {
		bad := New("user-1", id.New(), id.New())
		bad.AddItem(id.New(), 1, types.MustMoney("-1.00"))
		assertValidationError(t, bad.Validate(ctx))
	})

	t.Run("unknown status", func(t *testing.T) {
		bad := New("user-1", id.New(), id.New())
		bad.AddItem(id.New(), 1, types.MustMoney("1.00"))
		bad.Status = Status("SHIPPED")
		assertValidationError(t, bad.Validate(ctx))
	})
}

func TestMovementLines(t *testing.T) {
	productA, productB := id.New(), id.New()

	doc := New("user-1", id.New(), id.New())
	doc.AddItem(productA, 5, types.MustMoney("10.00"))
	doc.AddItem(productB, 2, types.MustMoney("3.00"))

	lines := doc.MovementLines()
	require.Len(t, lines, 2)
	assert.Equal(t, productA, lines[0].ProductID)
	assert.Equal(t, int64(5), lines[0].Quantity)
	assert.Equal(t, productB, lines[1].ProductID)
	assert.Equal(t, int64(2), lines[1].Quantity)
}

func assertValidationError(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
}
