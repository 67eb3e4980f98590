package purchasereturn

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockpilot/internal/core/actor"
	"stockpilot/internal/core/apperror"
	"stockpilot/internal/core/id"
	"stockpilot/internal/core/numerator"
	"stockpilot/internal/core/types"
	"stockpilot/internal/domain"
	"stockpilot/internal/domain/documents/purchase"
	"stockpilot/internal/domain/movement"
	"stockpilot/internal/domain/registers/inventory"
)

const testCompany = "company-1"

type fakeRepo struct {
	docs  map[id.ID]*PurchaseReturn
	items map[id.ID][]Item
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		docs:  make(map[id.ID]*PurchaseReturn),
		items: make(map[id.ID][]Item),
	}
}

func (f *fakeRepo) Create(ctx context.Context, doc *PurchaseReturn) error {
	copied := *doc
	f.docs[doc.ID] = &copied
	return nil
}

func (f *fakeRepo) GetByID(ctx context.Context, docID id.ID, companyID string) (*PurchaseReturn, error) {
	doc, ok := f.docs[docID]
	if !ok {
		return nil, apperror.NewNotFound("purchase return", docID.String())
	}
	copied := *doc
	return &copied, nil
}

func (f *fakeRepo) Update(ctx context.Context, doc *PurchaseReturn) error {
	if _, ok := f.docs[doc.ID]; !ok {
		return apperror.NewNotFound("purchase return", doc.ID.String())
	}
	copied := *doc
	f.docs[doc.ID] = &copied
	return nil
}

func (f *fakeRepo) Delete(ctx context.Context, docID id.ID) error {
	delete(f.docs, docID)
	return nil
}

func (f *fakeRepo) GetItems(ctx context.Context, docID id.ID) ([]Item, error) {
	return f.items[docID], nil
}

func (f *fakeRepo) SaveItems(ctx context.Context, docID id.ID, items []Item) error {
	f.items[docID] = items
	return nil
}

func (f *fakeRepo) DeleteItems(ctx context.Context, docID id.ID) error {
	delete(f.items, docID)
	return nil
}

func (f *fakeRepo) List(ctx context.Context, companyID string, filter ListFilter) (domain.ListResult[*PurchaseReturn], error) {
	items := make([]*PurchaseReturn, 0, len(f.docs))
	for _, doc := range f.docs {
		items = append(items, doc)
	}
	return domain.ListResult[*PurchaseReturn]{Items: items, TotalCount: int64(len(items))}, nil
}

// fakePurchases serves the originating document lookups.
type fakePurchases struct {
	purchase.Repository
	docs  map[id.ID]*purchase.Purchase
	items map[id.ID][]purchase.Item
}

func (f *fakePurchases) GetByID(ctx context.Context, docID id.ID, companyID string) (*purchase.Purchase, error) {
	doc, ok := f.docs[docID]
	if !ok {
		return nil, apperror.NewNotFound("purchase", docID.String())
	}
	return doc, nil
}

func (f *fakePurchases) GetItems(ctx context.Context, docID id.ID) ([]purchase.Item, error) {
	return f.items[docID], nil
}

type stockKey struct {
	product id.ID
	store   id.ID
}

type fakeLedger struct {
	inventory.Repository
	stock map[stockKey]int64
}

func (f *fakeLedger) GetQuantity(ctx context.Context, productID, storeID id.ID) (int64, error) {
	return f.stock[stockKey{productID, storeID}], nil
}

func (f *fakeLedger) Increase(ctx context.Context, productID, storeID id.ID, delta int64) error {
	f.stock[stockKey{productID, storeID}] += delta
	return nil
}

func (f *fakeLedger) Decrease(ctx context.Context, productID, storeID id.ID, delta int64) error {
	key := stockKey{productID, storeID}
	if f.stock[key] < delta {
		return apperror.NewInsufficientStock(productID.String(), delta, f.stock[key])
	}
	f.stock[key] -= delta
	return nil
}

type fakeTxManager struct{}

func (fakeTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixture struct {
	svc        *Service
	repo       *fakeRepo
	ledger     *fakeLedger
	purchaseID id.ID
	vendorID   id.ID
	storeID    id.ID
	productID  id.ID
}

// newFixture seeds an originating purchase of 10 units at 12.50 and a
// ledger holding 10 units at the store.
func newFixture() *fixture {
	vendorID, storeID, productID := id.New(), id.New(), id.New()

	original := purchase.New("user-1", vendorID, storeID)
	original.AddItem(productID, 10, types.MustMoney("12.50"))

	purchases := &fakePurchases{
		docs:  map[id.ID]*purchase.Purchase{original.ID: original},
		items: map[id.ID][]purchase.Item{original.ID: original.Items},
	}

	repo := newFakeRepo()
	ledger := &fakeLedger{stock: map[stockKey]int64{{productID, storeID}: 10}}
	validator := movement.NewValidator(nil, nil, nil, nil, ledger)

	return &fixture{
		svc:        NewService(repo, purchases, validator, ledger, &numerator.MockGenerator{}, fakeTxManager{}),
		repo:       repo,
		ledger:     ledger,
		purchaseID: original.ID,
		vendorID:   vendorID,
		storeID:    storeID,
		productID:  productID,
	}
}

func testActor() *actor.Actor {
	return &actor.Actor{UserID: "user-1", CompanyID: testCompany}
}

func TestCreate(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	doc := New("user-1", f.purchaseID)
	doc.AddItem(f.productID, 4)

	created, err := f.svc.Create(ctx, doc, testActor())
	require.NoError(t, err)

	assert.Regexp(t, `^PRET-\d{6}-\d{4}$`, created.Number)
	// vendor, store and price resolved from the original
	assert.Equal(t, f.vendorID, created.VendorID)
	assert.Equal(t, f.storeID, created.StoreID)
	require.Len(t, created.Items, 1)
	assert.True(t, created.Items[0].UnitPrice.Equal(types.MustMoney("12.50")))
	assert.True(t, created.RefundAmount.Equal(types.MustMoney("50.00")))

	qty, _ := f.ledger.GetQuantity(ctx, f.productID, f.storeID)
	assert.Equal(t, int64(6), qty)
}

func TestCreate_FullReturn(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	doc := New("user-1", f.purchaseID)
	doc.AddItem(f.productID, 10)

	created, err := f.svc.Create(ctx, doc, testActor())
	require.NoError(t, err)
	assert.True(t, created.RefundAmount.Equal(types.MustMoney("125.00")))

	qty, _ := f.ledger.GetQuantity(ctx, f.productID, f.storeID)
	assert.Equal(t, int64(0), qty)
}

func TestCreate_ExceedsOriginal(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	doc := New("user-1", f.purchaseID)
	doc.AddItem(f.productID, 11)

	_, err := f.svc.Create(ctx, doc, testActor())
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeReturnExceedsOriginal, appErr.Code)
	assert.Empty(t, f.repo.docs)
}

func TestCreate_ProductNotInOriginal(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	doc := New("user-1", f.purchaseID)
	doc.AddItem(id.New(), 1)

	_, err := f.svc.Create(ctx, doc, testActor())
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeInvalidInput, appErr.Code)
}

func TestCreate_StockAlreadyGone(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	// goods were sold after the purchase; nothing left to send back
	f.ledger.stock[stockKey{f.productID, f.storeID}] = 2

	doc := New("user-1", f.purchaseID)
	doc.AddItem(f.productID, 4)

	_, err := f.svc.Create(ctx, doc, testActor())
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeInsufficientStock, appErr.Code)
	assert.Empty(t, f.repo.docs)
}

func TestCreate_UnknownPurchase(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	doc := New("user-1", id.New())
	doc.AddItem(f.productID, 1)

	_, err := f.svc.Create(ctx, doc, testActor())
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeNotFound, appErr.Code)
}

func TestUpdate_OriginKeptImmutable(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	doc := New("user-1", f.purchaseID)
	doc.AddItem(f.productID, 4)
	created, err := f.svc.Create(ctx, doc, testActor())
	require.NoError(t, err)

	changed := New("user-1", id.New())
	changed.ID = created.ID
	changed.Status = StatusApproved
	changed.AddItem(f.productID, 2)

	updated, err := f.svc.Update(ctx, changed, testActor())
	require.NoError(t, err)

	assert.Equal(t, f.purchaseID, updated.PurchaseID)
	assert.Equal(t, f.vendorID, updated.VendorID)
	assert.Equal(t, created.Number, updated.Number)
	assert.True(t, updated.RefundAmount.Equal(types.MustMoney("25.00")))
}
