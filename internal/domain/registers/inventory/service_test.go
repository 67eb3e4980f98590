package inventory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockpilot/internal/core/actor"
	"stockpilot/internal/core/apperror"
	"stockpilot/internal/core/id"
	"stockpilot/internal/domain"
)

// fakeRepo is an in-memory ledger keyed by row ID.
type fakeRepo struct {
	rows map[id.ID]Row
}

func newFakeRepo(rows ...Row) *fakeRepo {
	r := &fakeRepo{rows: make(map[id.ID]Row)}
	for _, row := range rows {
		r.rows[row.ID] = row
	}
	return r
}

func (f *fakeRepo) GetQuantity(ctx context.Context, productID, storeID id.ID) (int64, error) {
	for _, row := range f.rows {
		if row.ProductID == productID && row.StoreID == storeID {
			return row.Quantity, nil
		}
	}
	return 0, nil
}

func (f *fakeRepo) GetForUpdate(ctx context.Context, productID, storeID id.ID) (Row, error) {
	for _, row := range f.rows {
		if row.ProductID == productID && row.StoreID == storeID {
			return row, nil
		}
	}
	return Row{ProductID: productID, StoreID: storeID}, nil
}

func (f *fakeRepo) Increase(ctx context.Context, productID, storeID id.ID, delta int64) error {
	for rowID, row := range f.rows {
		if row.ProductID == productID && row.StoreID == storeID {
			row.Quantity += delta
			f.rows[rowID] = row
			return nil
		}
	}
	rowID := id.New()
	f.rows[rowID] = Row{ID: rowID, ProductID: productID, StoreID: storeID, Quantity: delta}
	return nil
}

func (f *fakeRepo) Decrease(ctx context.Context, productID, storeID id.ID, delta int64) error {
	for rowID, row := range f.rows {
		if row.ProductID == productID && row.StoreID == storeID {
			if row.Quantity < delta {
				return apperror.NewInsufficientStock(productID.String(), delta, row.Quantity)
			}
			row.Quantity -= delta
			f.rows[rowID] = row
			return nil
		}
	}
	return apperror.NewInsufficientStock(productID.String(), delta, 0)
}

func (f *fakeRepo) GetByID(ctx context.Context, rowID id.ID, companyID string) (Row, error) {
	row, ok := f.rows[rowID]
	if !ok {
		return Row{}, apperror.NewNotFound("inventory", rowID.String())
	}
	return row, nil
}

func (f *fakeRepo) List(ctx context.Context, companyID string, filter ListFilter) (domain.ListResult[Row], error) {
	items := make([]Row, 0, len(f.rows))
	for _, row := range f.rows {
		items = append(items, row)
	}
	return domain.ListResult[Row]{Items: items, TotalCount: int64(len(items))}, nil
}

func (f *fakeRepo) ListLowStock(ctx context.Context, companyID string, filter ListFilter) (domain.ListResult[Row], error) {
	var items []Row
	for _, row := range f.rows {
		if row.Quantity <= row.ReorderLevel {
			items = append(items, row)
		}
	}
	return domain.ListResult[Row]{Items: items, TotalCount: int64(len(items))}, nil
}

func (f *fakeRepo) SetQuantity(ctx context.Context, rowID id.ID, quantity int64) error {
	row, ok := f.rows[rowID]
	if !ok {
		return apperror.NewNotFound("inventory", rowID.String())
	}
	row.Quantity = quantity
	f.rows[rowID] = row
	return nil
}

// fakeTxManager runs the function without a real transaction.
type fakeTxManager struct{}

func (fakeTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func testActor() *actor.Actor {
	return &actor.Actor{UserID: "user-1", CompanyID: "company-1"}
}

func TestAdjust(t *testing.T) {
	ctx := context.Background()
	rowID := id.New()
	repo := newFakeRepo(Row{ID: rowID, ProductID: id.New(), StoreID: id.New(), Quantity: 10})
	svc := NewService(repo, fakeTxManager{})

	row, err := svc.Adjust(ctx, rowID, -4, testActor())
	require.NoError(t, err)
	assert.Equal(t, int64(6), row.Quantity)

	row, err = svc.Adjust(ctx, rowID, 14, testActor())
	require.NoError(t, err)
	assert.Equal(t, int64(20), row.Quantity)
}

func TestAdjust_NegativeResultRejected(t *testing.T) {
	ctx := context.Background()
	rowID := id.New()
	repo := newFakeRepo(Row{ID: rowID, ProductID: id.New(), StoreID: id.New(), Quantity: 3})
	svc := NewService(repo, fakeTxManager{})

	_, err := svc.Adjust(ctx, rowID, -4, testActor())
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeInvalidInput, appErr.Code)

	// quantity untouched after the failed adjustment
	row, err := svc.Get(ctx, rowID, testActor())
	require.NoError(t, err)
	assert.Equal(t, int64(3), row.Quantity)
}

func TestAdjust_ToExactlyZero(t *testing.T) {
	ctx := context.Background()
	rowID := id.New()
	repo := newFakeRepo(Row{ID: rowID, ProductID: id.New(), StoreID: id.New(), Quantity: 5})
	svc := NewService(repo, fakeTxManager{})

	row, err := svc.Adjust(ctx, rowID, -5, testActor())
	require.NoError(t, err)
	assert.Equal(t, int64(0), row.Quantity)
}

func TestAdjust_UnknownRow(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	svc := NewService(repo, fakeTxManager{})

	_, err := svc.Adjust(ctx, id.New(), 1, testActor())
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeNotFound, appErr.Code)
}

func TestService_RequiresCompany(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newFakeRepo(), fakeTxManager{})

	_, err := svc.List(ctx, &actor.Actor{UserID: "user-1"}, ListFilter{})
	require.Error(t, err)
}
