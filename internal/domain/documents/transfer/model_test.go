package transfer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockpilot/internal/core/id"
)

func TestValidate(t *testing.T) {
	ctx := context.Background()

	doc := New("user-1", id.New(), id.New())
	doc.AddItem(id.New(), 5)
	require.NoError(t, doc.Validate(ctx))

	t.Run("same source and destination", func(t *testing.T) {
		storeID := id.New()
		bad := New("user-1", storeID, storeID)
		bad.AddItem(id.New(), 5)
		assert.Error(t, bad.Validate(ctx))
	})

	t.Run("missing source store", func(t *testing.T) {
		bad := New("user-1", id.Nil(), id.New())
		bad.AddItem(id.New(), 5)
		assert.Error(t, bad.Validate(ctx))
	})

	t.Run("missing destination store", func(t *testing.T) {
		bad := New("user-1", id.New(), id.Nil())
		bad.AddItem(id.New(), 5)
		assert.Error(t, bad.Validate(ctx))
	})

	t.Run("no items", func(t *testing.T) {
		bad := New("user-1", id.New(), id.New())
		assert.Error(t, bad.Validate(ctx))
	})

	t.Run("zero quantity", func(t *testing.T) {
		bad := New("user-1", id.New(), id.New())
		bad.AddItem(id.New(), 0)
		assert.Error(t, bad.Validate(ctx))
	})
}

func TestMovementLines(t *testing.T) {
	productID := id.New()

	doc := New("user-1", id.New(), id.New())
	doc.AddItem(productID, 7)

	lines := doc.MovementLines()
	require.Len(t, lines, 1)
	assert.Equal(t, productID, lines[0].ProductID)
	assert.Equal(t, int64(7), lines[0].Quantity)
}
