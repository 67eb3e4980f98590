package sale

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
	"stockpilot/internal/domain/catalogs"
	"stockpilot/internal/domain/movement"
	"stockpilot/internal/domain/registers/inventory"
)

const testCompany = "company-1"

type fakeRepo struct {
	docs       map[id.ID]*Sale
	items      map[id.ID][]Item
	hasReturns map[id.ID]bool
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		docs:       make(map[id.ID]*Sale),
		items:      make(map[id.ID][]Item),
		hasReturns: make(map[id.ID]bool),
	}
}

func (f *fakeRepo) Create(ctx context.Context, doc *Sale) error {
	copied := *doc
	f.docs[doc.ID] = &copied
	return nil
}

func (f *fakeRepo) GetByID(ctx context.Context, docID id.ID, companyID string) (*Sale, error) {
	doc, ok := f.docs[docID]
	if !ok {
		return nil, apperror.NewNotFound("sale", docID.String())
	}
	copied := *doc
	return &copied, nil
}

func (f *fakeRepo) Update(ctx context.Context, doc *Sale) error {
	if _, ok := f.docs[doc.ID]; !ok {
		return apperror.NewNotFound("sale", doc.ID.String())
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

func (f *fakeRepo) List(ctx context.Context, companyID string, filter ListFilter) (domain.ListResult[*Sale], error) {
	items := make([]*Sale, 0, len(f.docs))
	for _, doc := range f.docs {
		items = append(items, doc)
	}
	return domain.ListResult[*Sale]{Items: items, TotalCount: int64(len(items))}, nil
}

func (f *fakeRepo) HasReturns(ctx context.Context, docID id.ID) (bool, error) {
	return f.hasReturns[docID], nil
}

func (f *fakeRepo) SetStatus(ctx context.Context, docID id.ID, status Status) error {
	doc, ok := f.docs[docID]
	if !ok {
		return apperror.NewNotFound("sale", docID.String())
	}
	doc.Status = status
	return nil
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

type fakeCustomers struct {
	customers map[id.ID]*catalogs.Customer
}

func (f *fakeCustomers) GetByID(ctx context.Context, customerID id.ID, companyID string) (*catalogs.Customer, error) {
	if c, ok := f.customers[customerID]; ok && c.CompanyID == companyID {
		return c, nil
	}
	return nil, apperror.NewNotFound("customer", customerID.String())
}

func (f *fakeCustomers) Exists(ctx context.Context, customerID id.ID, companyID string) (bool, error) {
	c, ok := f.customers[customerID]
	return ok && c.CompanyID == companyID, nil
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
	svc        *Service
	repo       *fakeRepo
	ledger     *fakeLedger
	storeID    id.ID
	customerID id.ID
	productID  id.ID
}

func newFixture() *fixture {
	storeID, customerID, productID := id.New(), id.New(), id.New()

	stores := &fakeStores{stores: map[id.ID]*catalogs.Store{
		storeID: {ID: storeID, CompanyID: testCompany, Name: "Main Warehouse"},
	}}
	customers := &fakeCustomers{customers: map[id.ID]*catalogs.Customer{
		customerID: {ID: customerID, CompanyID: testCompany, Name: "Jordan Reed"},
	}}
	products := &fakeProducts{existing: map[id.ID]bool{productID: true}}

	repo := newFakeRepo()
	ledger := newFakeLedger()
	ledger.stock[stockKey{productID, storeID}] = 20
	validator := movement.NewValidator(products, stores, nil, customers, ledger)

	return &fixture{
		svc:        NewService(repo, validator, ledger, &numerator.MockGenerator{}, fakeTxManager{}),
		repo:       repo,
		ledger:     ledger,
		storeID:    storeID,
		customerID: customerID,
		productID:  productID,
	}
}

func testActor() *actor.Actor {
	return &actor.Actor{UserID: "user-1", CompanyID: testCompany}
}

func TestCreate(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	doc := New("user-1", f.storeID)
	doc.CustomerID = &f.customerID
	doc.AddItem(f.productID, 2, types.MustMoney("50.00"))
	doc.Discount = types.MustMoney("10.00")
	doc.Tax = types.MustMoney("8.50")

	created, err := f.svc.Create(ctx, doc, testActor())
	require.NoError(t, err)

	assert.Regexp(t, `^SAL-\d{6}-\d{4}$`, created.Number)
	assert.True(t, created.TotalAmount.Equal(types.MustMoney("98.50")))

	qty, _ := f.ledger.GetQuantity(ctx, f.productID, f.storeID)
	assert.Equal(t, int64(18), qty)
}

func TestCreate_AnonymousCustomer(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	doc := New("user-1", f.storeID)
	doc.AddItem(f.productID, 1, types.MustMoney("5.00"))

	created, err := f.svc.Create(ctx, doc, testActor())
	require.NoError(t, err)
	assert.Nil(t, created.CustomerID)
}

func TestCreate_InsufficientStock(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	doc := New("user-1", f.storeID)
	doc.AddItem(f.productID, 21, types.MustMoney("5.00"))

	_, err := f.svc.Create(ctx, doc, testActor())
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeInsufficientStock, appErr.Code)

	// nothing persisted, stock untouched
	assert.Empty(t, f.repo.docs)
	qty, _ := f.ledger.GetQuantity(ctx, f.productID, f.storeID)
	assert.Equal(t, int64(20), qty)
}

func TestCreate_SellingToExactlyZero(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	doc := New("user-1", f.storeID)
	doc.AddItem(f.productID, 20, types.MustMoney("5.00"))

	_, err := f.svc.Create(ctx, doc, testActor())
	require.NoError(t, err)

	qty, _ := f.ledger.GetQuantity(ctx, f.productID, f.storeID)
	assert.Equal(t, int64(0), qty)
}

func TestCreate_UnknownCustomer(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	unknown := id.New()
	doc := New("user-1", f.storeID)
	doc.CustomerID = &unknown
	doc.AddItem(f.productID, 1, types.MustMoney("5.00"))

	_, err := f.svc.Create(ctx, doc, testActor())
	require.Error(t, err)
	assert.Empty(t, f.repo.docs)
}

func TestDelete_BlockedByReturns(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	doc := New("user-1", f.storeID)
	doc.AddItem(f.productID, 1, types.MustMoney("5.00"))
	created, err := f.svc.Create(ctx, doc, testActor())
	require.NoError(t, err)

	f.repo.hasReturns[created.ID] = true

	err = f.svc.Delete(ctx, created.ID, testActor())
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeHasDependentReturns, appErr.Code)
}
