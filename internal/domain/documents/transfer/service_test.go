package transfer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockpilot/internal/core/actor"
	"stockpilot/internal/core/apperror"
	"stockpilot/internal/core/id"
	"stockpilot/internal/core/numerator"
	"stockpilot/internal/domain"
	"stockpilot/internal/domain/catalogs"
	"stockpilot/internal/domain/movement"
	"stockpilot/internal/domain/registers/inventory"
)

const testCompany = "company-1"

type fakeRepo struct {
	docs  map[id.ID]*Transfer
	items map[id.ID][]Item
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		docs:  make(map[id.ID]*Transfer),
		items: make(map[id.ID][]Item),
	}
}

func (f *fakeRepo) Create(ctx context.Context, doc *Transfer) error {
	copied := *doc
	f.docs[doc.ID] = &copied
	return nil
}

func (f *fakeRepo) GetByID(ctx context.Context, docID id.ID, companyID string) (*Transfer, error) {
	doc, ok := f.docs[docID]
	if !ok {
		return nil, apperror.NewNotFound("transfer", docID.String())
	}
	copied := *doc
	return &copied, nil
}

func (f *fakeRepo) Update(ctx context.Context, doc *Transfer) error {
	if _, ok := f.docs[doc.ID]; !ok {
		return apperror.NewNotFound("transfer", doc.ID.String())
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

func (f *fakeRepo) List(ctx context.Context, companyID string, filter ListFilter) (domain.ListResult[*Transfer], error) {
	items := make([]*Transfer, 0, len(f.docs))
	for _, doc := range f.docs {
		items = append(items, doc)
	}
	return domain.ListResult[*Transfer]{Items: items, TotalCount: int64(len(items))}, nil
}

type fakeStores struct {
	stores map[id.ID]*catalogs.Store
}

func (f *fakeStores) GetByID(ctx context.Context, storeID id.ID, companyID string) (*catalogs.Store, error) {
	if s, ok := f.stores[storeID]; ok && s.CompanyID == companyID {
		return s, nil
	}
	return nil, apperror.NewNotFound("store", storeID.String())
}

func (f *fakeStores) Exists(ctx context.Context, storeID id.ID, companyID string) (bool, error) {
	s, ok := f.stores[storeID]
	return ok && s.CompanyID == companyID, nil
}

type fakeProducts struct {
	existing map[id.ID]bool
}

func (f *fakeProducts) GetByID(ctx context.Context, productID id.ID, companyID string) (*catalogs.Product, error) {
	if f.existing[productID] {
		return &catalogs.Product{ID: productID}, nil
	}
	return nil, apperror.NewNotFound("product", productID.String())
}

func (f *fakeProducts) Exists(ctx context.Context, productID id.ID, companyID string) (bool, error) {
	return f.existing[productID], nil
}

type stockKey struct {
	product id.ID
	store   id.ID
}

type fakeLedger struct {
	inventory.Repository
	stock map[stockKey]int64
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{stock: make(map[stockKey]int64)}
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
	svc       *Service
	repo      *fakeRepo
	ledger    *fakeLedger
	fromStore id.ID
	toStore   id.ID
	productID id.ID
}

func newFixture() *fixture {
	fromStore, toStore, productID := id.New(), id.New(), id.New()

	stores := &fakeStores{stores: map[id.ID]*catalogs.Store{
		fromStore: {ID: fromStore, CompanyID: testCompany, Name: "Main Warehouse"},
		toStore:   {ID: toStore, CompanyID: testCompany, Name: "Outlet"},
	}}
	products := &fakeProducts{existing: map[id.ID]bool{productID: true}}

	repo := newFakeRepo()
	ledger := newFakeLedger()
	ledger.stock[stockKey{productID, fromStore}] = 15
	validator := movement.NewValidator(products, stores, nil, nil, ledger)

	return &fixture{
		svc:       NewService(repo, validator, ledger, &numerator.MockGenerator{}, fakeTxManager{}),
		repo:      repo,
		ledger:    ledger,
		fromStore: fromStore,
		toStore:   toStore,
		productID: productID,
	}
}

func testActor() *actor.Actor {
	return &actor.Actor{UserID: "user-1", CompanyID: testCompany}
}

func TestCreate(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	doc := New("user-1", f.fromStore, f.toStore)
	doc.AddItem(f.productID, 6)

	created, err := f.svc.Create(ctx, doc, testActor())
	require.NoError(t, err)

	assert.Regexp(t, `^TRF-\d{6}-\d{4}$`, created.Number)

	fromQty, _ := f.ledger.GetQuantity(ctx, f.productID, f.fromStore)
	toQty, _ := f.ledger.GetQuantity(ctx, f.productID, f.toStore)
	assert.Equal(t, int64(9), fromQty)
	assert.Equal(t, int64(6), toQty)
}

func TestCreate_SameStore(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	doc := New("user-1", f.fromStore, f.fromStore)
	doc.AddItem(f.productID, 1)

	_, err := f.svc.Create(ctx, doc, testActor())
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeInvalidInput, appErr.Code)
	assert.Empty(t, f.repo.docs)
}

func TestCreate_InsufficientAtSource(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	doc := New("user-1", f.fromStore, f.toStore)
	doc.AddItem(f.productID, 16)

	_, err := f.svc.Create(ctx, doc, testActor())
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeInsufficientStock, appErr.Code)

	// no partial movement
	assert.Empty(t, f.repo.docs)
	fromQty, _ := f.ledger.GetQuantity(ctx, f.productID, f.fromStore)
	toQty, _ := f.ledger.GetQuantity(ctx, f.productID, f.toStore)
	assert.Equal(t, int64(15), fromQty)
	assert.Equal(t, int64(0), toQty)
}

func TestCreate_DestinationRowCreatedLazily(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	// destination store had no ledger row for the product
	doc := New("user-1", f.fromStore, f.toStore)
	doc.AddItem(f.productID, 15)

	_, err := f.svc.Create(ctx, doc, testActor())
	require.NoError(t, err)

	toQty, _ := f.ledger.GetQuantity(ctx, f.productID, f.toStore)
	assert.Equal(t, int64(15), toQty)
}

func TestCreate_UnknownDestinationStore(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	doc := New("user-1", f.fromStore, id.New())
	doc.AddItem(f.productID, 1)

	_, err := f.svc.Create(ctx, doc, testActor())
	require.Error(t, err)
	assert.Empty(t, f.repo.docs)
}
