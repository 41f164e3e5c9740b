package service

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/mrops-br/products-api/internal/app/dto"
	"github.com/mrops-br/products-api/internal/domain"
	"github.com/mrops-br/products-api/internal/infrastructure/repository/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace/noop"
)

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) Insert(ctx context.Context, product *domain.Product) domain.Result[bool] {
	return m.Called(ctx, product).Get(0).(domain.Result[bool])
}

func (m *mockRepository) Update(ctx context.Context, product *domain.Product) domain.Result[bool] {
	return m.Called(ctx, product).Get(0).(domain.Result[bool])
}

func (m *mockRepository) Delete(ctx context.Context, id uuid.UUID) domain.Result[bool] {
	return m.Called(ctx, id).Get(0).(domain.Result[bool])
}

func (m *mockRepository) SelectAll(ctx context.Context) domain.Result[[]*domain.Product] {
	return m.Called(ctx).Get(0).(domain.Result[[]*domain.Product])
}

func (m *mockRepository) SelectByID(ctx context.Context, id uuid.UUID) domain.Result[*domain.Product] {
	return m.Called(ctx, id).Get(0).(domain.Result[*domain.Product])
}

func newTestService(repo domain.ProductRepository) *ProductService {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewProductService(
		repo,
		noop.NewTracerProvider().Tracer("test"),
		metricnoop.NewMeterProvider().Meter("test"),
		logger,
	)
}

func newMemoryService() *ProductService {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	repo := memory.NewProductRepository(noop.NewTracerProvider().Tracer("test"), logger)
	return newTestService(repo)
}

func TestPost(t *testing.T) {
	repo := new(mockRepository)
	repo.On("Insert", mock.Anything, mock.MatchedBy(func(p *domain.Product) bool {
		return p.ID == uuid.Nil && p.Name == "Widget" && p.UnitPrice.Equal(decimal.RequireFromString("9.99"))
	})).Return(domain.Success(true))

	res := newTestService(repo).Post(context.Background(), &dto.CreateProductRequest{
		ProductName:        "Widget",
		ProductDescription: "A widget",
		UnitPrice:          decimal.RequireFromString("9.99"),
	})

	assert.True(t, res.IsSuccessful)
	assert.True(t, res.Payload)
	assert.Equal(t, domain.StatusOK, res.StatusCode)
	repo.AssertExpectations(t)
}

func TestPost_Rejections(t *testing.T) {
	repo := new(mockRepository)
	svc := newTestService(repo)

	res := svc.Post(context.Background(), nil)
	assert.Equal(t, domain.StatusBadRequest, res.StatusCode)

	res = svc.Post(context.Background(), &dto.CreateProductRequest{ProductName: "x", UnitPrice: decimal.NewFromInt(-1)})
	assert.Equal(t, domain.StatusBadRequest, res.StatusCode)

	repo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestPost_PriceOutOfRange(t *testing.T) {
	repo := new(mockRepository)
	svc := newTestService(repo)

	for _, price := range []string{"1e30000000", "1e16", "0.001", "1e-30000000"} {
		res := svc.Post(context.Background(), &dto.CreateProductRequest{
			ProductName: "w",
			UnitPrice:   decimal.RequireFromString(price),
		})
		assert.Equal(t, domain.StatusBadRequest, res.StatusCode, price)
		assert.Equal(t, msgPriceOutOfRange, res.ErrorMessage, price)
	}

	repo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestStorablePrice(t *testing.T) {
	tests := []struct {
		price string
		want  bool
	}{
		{"0", true},
		{"9.99", true},
		{"1.500", true},
		{"9999999999999999.99", true},
		{"1e15", true},
		{"0e-30", false},
		{"1e16", false},
		{"10000000000000000", false},
		{"0.001", false},
		{"1.005", false},
		{"1e30000000", false},
		{"1e-30000000", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, storablePrice(decimal.RequireFromString(tt.price)), tt.price)
	}
}

func TestPost_GatewayFailureIsInternal(t *testing.T) {
	repo := new(mockRepository)
	repo.On("Insert", mock.Anything, mock.Anything).
		Return(domain.Failure[bool](domain.StatusBadRequest, domain.MsgProductNotInserted))

	res := newTestService(repo).Post(context.Background(), &dto.CreateProductRequest{ProductName: "x"})

	assert.False(t, res.IsSuccessful)
	assert.False(t, res.Payload)
	assert.Equal(t, domain.StatusInternalServerError, res.StatusCode)
	assert.Equal(t, domain.MsgProductNotInserted, res.ErrorMessage)
}

func TestPut(t *testing.T) {
	id := uuid.New()
	repo := new(mockRepository)
	repo.On("Update", mock.Anything, &domain.Product{
		ID:          id,
		Name:        "Gadget",
		Description: "d",
		UnitPrice:   decimal.NewFromInt(2),
	}).Return(domain.Success(true))

	res := newTestService(repo).Put(context.Background(), &dto.UpdateProductRequest{
		ID:                 id,
		ProductName:        "Gadget",
		ProductDescription: "d",
		UnitPrice:          decimal.NewFromInt(2),
	})

	assert.True(t, res.IsSuccessful)
	repo.AssertExpectations(t)
}

func TestPut_Rejections(t *testing.T) {
	repo := new(mockRepository)
	svc := newTestService(repo)

	assert.Equal(t, domain.StatusBadRequest, svc.Put(context.Background(), nil).StatusCode)
	assert.Equal(t, domain.StatusBadRequest, svc.Put(context.Background(), &dto.UpdateProductRequest{ProductName: "x"}).StatusCode)
	assert.Equal(t, domain.StatusBadRequest, svc.Put(context.Background(), &dto.UpdateProductRequest{
		ID:          uuid.New(),
		ProductName: "x",
		UnitPrice:   decimal.RequireFromString("1e30000000"),
	}).StatusCode)

	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestPut_ZeroRowsIsInternal(t *testing.T) {
	repo := new(mockRepository)
	repo.On("Update", mock.Anything, mock.Anything).
		Return(domain.Failure[bool](domain.StatusInternalServerError, domain.MsgProductNotUpdated))

	res := newTestService(repo).Put(context.Background(), &dto.UpdateProductRequest{ID: uuid.New(), ProductName: "x"})

	assert.Equal(t, domain.StatusInternalServerError, res.StatusCode)
	assert.Equal(t, domain.MsgProductNotUpdated, res.ErrorMessage)
}

func TestDelete_UsesResolvedID(t *testing.T) {
	requested := uuid.New()
	resolved := uuid.New()

	repo := new(mockRepository)
	repo.On("SelectByID", mock.Anything, requested).
		Return(domain.Success(&domain.Product{ID: resolved, Name: "x"}))
	repo.On("Delete", mock.Anything, resolved).Return(domain.Success(true))

	res := newTestService(repo).Delete(context.Background(), &dto.DeleteProductRequest{ID: requested})

	assert.True(t, res.IsSuccessful)
	repo.AssertExpectations(t)
	repo.AssertNotCalled(t, "Delete", mock.Anything, requested)
}

func TestDelete_MissingProductNeverDeletes(t *testing.T) {
	id := uuid.New()
	repo := new(mockRepository)
	repo.On("SelectByID", mock.Anything, id).
		Return(domain.Failure[*domain.Product](domain.StatusNotFound, domain.MsgProductNotFound))

	res := newTestService(repo).Delete(context.Background(), &dto.DeleteProductRequest{ID: id})

	assert.Equal(t, domain.StatusNotFound, res.StatusCode)
	assert.Equal(t, domain.MsgProductNotFound, res.ErrorMessage)
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestDelete_LookupWithoutIdentityNeverDeletes(t *testing.T) {
	id := uuid.New()
	repo := new(mockRepository)
	repo.On("SelectByID", mock.Anything, id).Return(domain.Success(&domain.Product{Name: "x"}))

	res := newTestService(repo).Delete(context.Background(), &dto.DeleteProductRequest{ID: id})

	assert.Equal(t, domain.StatusNotFound, res.StatusCode)
	assert.Equal(t, domain.MsgProductNotFound, res.ErrorMessage)
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestDelete_Rejections(t *testing.T) {
	repo := new(mockRepository)
	svc := newTestService(repo)

	assert.Equal(t, domain.StatusBadRequest, svc.Delete(context.Background(), nil).StatusCode)
	assert.Equal(t, domain.StatusBadRequest, svc.Delete(context.Background(), &dto.DeleteProductRequest{}).StatusCode)

	repo.AssertNotCalled(t, "SelectByID", mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestDelete_LookupFaultIsInternal(t *testing.T) {
	repo := new(mockRepository)
	repo.On("SelectByID", mock.Anything, mock.Anything).
		Return(domain.Failure[*domain.Product](domain.StatusInternalServerError, "Error Message : timeout"))

	res := newTestService(repo).Delete(context.Background(), &dto.DeleteProductRequest{ID: uuid.New()})

	assert.Equal(t, domain.StatusInternalServerError, res.StatusCode)
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestDelete_GatewayFailureIsInternal(t *testing.T) {
	id := uuid.New()
	repo := new(mockRepository)
	repo.On("SelectByID", mock.Anything, id).Return(domain.Success(&domain.Product{ID: id}))
	repo.On("Delete", mock.Anything, id).
		Return(domain.Failure[bool](domain.StatusInternalServerError, domain.MsgProductNotDeleted))

	res := newTestService(repo).Delete(context.Background(), &dto.DeleteProductRequest{ID: id})

	assert.Equal(t, domain.StatusInternalServerError, res.StatusCode)
	assert.Equal(t, domain.MsgProductNotDeleted, res.ErrorMessage)
}

func TestGetAll_PreservesOrder(t *testing.T) {
	products := []*domain.Product{
		{ID: uuid.New(), Name: "first"},
		{ID: uuid.New(), Name: "second"},
		{ID: uuid.New(), Name: "third"},
	}
	repo := new(mockRepository)
	repo.On("SelectAll", mock.Anything).Return(domain.Success(products))

	res := newTestService(repo).GetAll(context.Background())

	require.True(t, res.IsSuccessful)
	require.Len(t, res.Payload.GetByIdProductDtos, 3)
	for i, p := range products {
		assert.Equal(t, p.ID, res.Payload.GetByIdProductDtos[i].ID)
		assert.Equal(t, p.Name, res.Payload.GetByIdProductDtos[i].ProductName)
	}
}

func TestGetAll_EmptyIsNotFound(t *testing.T) {
	repo := new(mockRepository)
	repo.On("SelectAll", mock.Anything).Return(domain.Success([]*domain.Product{}))

	res := newTestService(repo).GetAll(context.Background())

	assert.False(t, res.IsSuccessful)
	assert.Nil(t, res.Payload)
	assert.Equal(t, domain.StatusNotFound, res.StatusCode)
	assert.Equal(t, domain.MsgProductsNotFound, res.ErrorMessage)
}

func TestGetAll_NilCollectionIsNotFound(t *testing.T) {
	repo := new(mockRepository)
	repo.On("SelectAll", mock.Anything).
		Return(domain.Failure[[]*domain.Product](domain.StatusNotFound, domain.MsgProductsNotFound))

	res := newTestService(repo).GetAll(context.Background())

	assert.Equal(t, domain.StatusNotFound, res.StatusCode)
	assert.Equal(t, domain.MsgProductsNotFound, res.ErrorMessage)
}

func TestGetAll_StoreFaultIsInternal(t *testing.T) {
	repo := new(mockRepository)
	repo.On("SelectAll", mock.Anything).
		Return(domain.Failure[[]*domain.Product](domain.StatusInternalServerError, "Error Message : timeout"))

	res := newTestService(repo).GetAll(context.Background())

	assert.Equal(t, domain.StatusInternalServerError, res.StatusCode)
}

func TestGetByID(t *testing.T) {
	id := uuid.New()
	repo := new(mockRepository)
	repo.On("SelectByID", mock.Anything, id).
		Return(domain.Success(&domain.Product{ID: id, Name: "Widget", UnitPrice: decimal.NewFromInt(1)}))

	res := newTestService(repo).GetByID(context.Background(), id)

	require.True(t, res.IsSuccessful)
	assert.Equal(t, id, res.Payload.ID)
	assert.Equal(t, "Widget", res.Payload.ProductName)
}

func TestGetByID_EmptyIDSkipsGateway(t *testing.T) {
	repo := new(mockRepository)

	res := newTestService(repo).GetByID(context.Background(), uuid.Nil)

	assert.Equal(t, domain.StatusBadRequest, res.StatusCode)
	repo.AssertNotCalled(t, "SelectByID", mock.Anything, mock.Anything)
}

func TestGetByID_NotFound(t *testing.T) {
	repo := new(mockRepository)
	repo.On("SelectByID", mock.Anything, mock.Anything).
		Return(domain.Failure[*domain.Product](domain.StatusNotFound, domain.MsgProductNotFound))

	res := newTestService(repo).GetByID(context.Background(), uuid.New())

	assert.Equal(t, domain.StatusNotFound, res.StatusCode)
	assert.Nil(t, res.Payload)
}

func TestLifecycle(t *testing.T) {
	ctx := context.Background()
	svc := newMemoryService()

	assert.Equal(t, domain.StatusNotFound, svc.GetAll(ctx).StatusCode)

	created := svc.Post(ctx, &dto.CreateProductRequest{
		ProductName:        "Widget",
		ProductDescription: "A widget",
		UnitPrice:          decimal.RequireFromString("9.99"),
	})
	require.True(t, created.IsSuccessful)

	list := svc.GetAll(ctx)
	require.True(t, list.IsSuccessful)
	require.Len(t, list.Payload.GetByIdProductDtos, 1)
	entry := list.Payload.GetByIdProductDtos[0]
	assert.NotEqual(t, uuid.Nil, entry.ID)
	assert.Equal(t, "Widget", entry.ProductName)
	assert.Equal(t, "A widget", entry.ProductDescription)
	assert.True(t, decimal.RequireFromString("9.99").Equal(entry.UnitPrice))

	updated := svc.Put(ctx, &dto.UpdateProductRequest{
		ID:                 entry.ID,
		ProductName:        "Gadget",
		ProductDescription: "",
		UnitPrice:          decimal.NewFromInt(12),
	})
	require.True(t, updated.IsSuccessful)

	got := svc.GetByID(ctx, entry.ID)
	require.True(t, got.IsSuccessful)
	assert.Equal(t, entry.ID, got.Payload.ID)
	assert.Equal(t, "Gadget", got.Payload.ProductName)
	assert.Empty(t, got.Payload.ProductDescription)
	assert.True(t, decimal.NewFromInt(12).Equal(got.Payload.UnitPrice))

	deleted := svc.Delete(ctx, &dto.DeleteProductRequest{ID: entry.ID})
	require.True(t, deleted.IsSuccessful)
	assert.Equal(t, domain.StatusNotFound, svc.GetByID(ctx, entry.ID).StatusCode)
	assert.Equal(t, domain.StatusNotFound, svc.Delete(ctx, &dto.DeleteProductRequest{ID: entry.ID}).StatusCode)
}
