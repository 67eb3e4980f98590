package salereturn

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
	"stockpilot/internal/domain/documents/sale"
	"stockpilot/internal/domain/movement"
	"stockpilot/internal/domain/registers/inventory"
)

const testCompany = "company-1"

type fakeRepo struct {
	docs  map[id.ID]*SaleReturn
	items map[id.ID][]Item
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		docs:  make(map[id.ID]*SaleReturn),
		items: make(map[id.ID][]Item),
	}
}

func (f *fakeRepo) Create(ctx context.Context, doc *SaleReturn) error {
	copied := *doc
	f.docs[doc.ID] = &copied
	return nil
}

func (f *fakeRepo) GetByID(ctx context.Context, docID id.ID, companyID string) (*SaleReturn, error) {
	doc, ok := f.docs[docID]
	if !ok {
		return nil, apperror.NewNotFound("sale return", docID.String())
	}
	copied := *doc
	return &copied, nil
}

func (f *fakeRepo) Update(ctx context.Context, doc *SaleReturn) error {
	if _, ok := f.docs[doc.ID]; !ok {
		return apperror.NewNotFound("sale return", doc.ID.String())
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

func (f *fakeRepo) List(ctx context.Context, companyID string, filter ListFilter) (domain.ListResult[*SaleReturn], error) {
	items := make([]*SaleReturn, 0, len(f.docs))
	for _, doc := range f.docs {
		items = append(items, doc)
	}
	return domain.ListResult[*SaleReturn]{Items: items, TotalCount: int64(len(items))}, nil
}

// fakeSales serves originating document lookups and status updates.
type fakeSales struct {
	sale.Repository
	docs  map[id.ID]*sale.Sale
	items map[id.ID][]sale.Item
}

func (f *fakeSales) GetByID(ctx context.Context, docID id.ID, companyID string) (*sale.Sale, error) {
	doc, ok := f.docs[docID]
	if !ok {
		return nil, apperror.NewNotFound("sale", docID.String())
	}
	return doc, nil
}

func (f *fakeSales) GetItems(ctx context.Context, docID id.ID) ([]sale.Item, error) {
	return f.items[docID], nil
}

func (f *fakeSales) SetStatus(ctx context.Context, docID id.ID, status sale.Status) error {
	doc, ok := f.docs[docID]
	if !ok {
		return apperror.NewNotFound("sale", docID.String())
	}
	doc.Status = status
	return nil
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
	sales      *fakeSales
	ledger     *fakeLedger
	saleID     id.ID
	customerID id.ID
	storeID    id.ID
	productID  id.ID
}

// newFixture seeds an originating sale of 3 units at 45.00; the store
// has no stock left for the product.
func newFixture() *fixture {
	storeID, customerID, productID := id.New(), id.New(), id.New()

	original := sale.New("user-1", storeID)
	original.CustomerID = &customerID
	original.AddItem(productID, 3, types.MustMoney("45.00"))

	sales := &fakeSales{
		docs:  map[id.ID]*sale.Sale{original.ID: original},
		items: map[id.ID][]sale.Item{original.ID: original.Items},
	}

	repo := newFakeRepo()
	ledger := &fakeLedger{stock: make(map[stockKey]int64)}
	validator := movement.NewValidator(nil, nil, nil, nil, ledger)

	return &fixture{
		svc:        NewService(repo, sales, validator, ledger, &numerator.MockGenerator{}, fakeTxManager{}),
		repo:       repo,
		sales:      sales,
		ledger:     ledger,
		saleID:     original.ID,
		customerID: customerID,
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

	doc := New("user-1", f.saleID)
	doc.AddItem(f.productID, 2)

	created, err := f.svc.Create(ctx, doc, testActor())
	require.NoError(t, err)

	assert.Regexp(t, `^RET-\d{6}-\d{4}$`, created.Number)
	assert.Equal(t, f.storeID, created.StoreID)
	require.NotNil(t, created.CustomerID)
	assert.Equal(t, f.customerID, *created.CustomerID)
	require.Len(t, created.Items, 1)
	assert.True(t, created.Items[0].UnitPrice.Equal(types.MustMoney("45.00")))
	assert.True(t, created.RefundAmount.Equal(types.MustMoney("90.00")))

	// goods come back to the store even when it had no row before
	qty, _ := f.ledger.GetQuantity(ctx, f.productID, f.storeID)
	assert.Equal(t, int64(2), qty)

	// originating sale is marked returned
	assert.Equal(t, sale.StatusReturned, f.sales.docs[f.saleID].Status)
}

func TestCreate_ExceedsOriginal(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	doc := New("user-1", f.saleID)
	doc.AddItem(f.productID, 4)

	_, err := f.svc.Create(ctx, doc, testActor())
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeReturnExceedsOriginal, appErr.Code)

	// sale status untouched on failure
	assert.NotEqual(t, sale.StatusReturned, f.sales.docs[f.saleID].Status)
	assert.Empty(t, f.repo.docs)
}

func TestCreate_ProductNotInOriginal(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	doc := New("user-1", f.saleID)
	doc.AddItem(id.New(), 1)

	_, err := f.svc.Create(ctx, doc, testActor())
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeInvalidInput, appErr.Code)
}

func TestCreate_UnknownSale(t *testing.T) {
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

func TestCreate_MultipleLinesSameProduct(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	doc := New("user-1", f.saleID)
	doc.AddItem(f.productID, 2)
	doc.AddItem(f.productID, 1)

	created, err := f.svc.Create(ctx, doc, testActor())
	require.NoError(t, err)

	qty, _ := f.ledger.GetQuantity(ctx, f.productID, f.storeID)
	assert.Equal(t, int64(3), qty)
	assert.True(t, created.RefundAmount.Equal(types.MustMoney("135.00")))
}
