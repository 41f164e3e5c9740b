package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/mrops-br/products-api/internal/app/dto"
	"github.com/mrops-br/products-api/internal/domain"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const (
	msgModelIsNull       = "Model is null ."
	msgIDIsEmpty         = "Id is empty ."
	msgNegativePrice     = "Unit price must not be negative ."
	msgPriceOutOfRange   = "Unit price must be below 10^16 with at most 2 decimal places ."
	priceScale           = 2
	maxPriceIntegerDigit = 16
)

// ProductService handles product use cases
type ProductService struct {
	repo                  domain.ProductRepository
	tracer                trace.Tracer
	logger                *slog.Logger
	productCreatedCounter metric.Int64Counter
	productOperations     metric.Int64Counter
}

// NewProductService creates a new product service
func NewProductService(
	repo domain.ProductRepository,
	tracer trace.Tracer,
	meter metric.Meter,
	logger *slog.Logger,
) *ProductService {
	productCreatedCounter, _ := meter.Int64Counter(
		"products.created.total",
		metric.WithDescription("Total number of products created"),
	)

	productOperations, _ := meter.Int64Counter(
		"products.operations",
		metric.WithDescription("Total number of product operations"),
	)

	return &ProductService{
		repo:                  repo,
		tracer:                tracer,
		logger:                logger,
		productCreatedCounter: productCreatedCounter,
		productOperations:     productOperations,
	}
}

// Post creates a new product
func (s *ProductService) Post(ctx context.Context, req *dto.CreateProductRequest) domain.Result[bool] {
	ctx, span := s.tracer.Start(ctx, "ProductService.Post")
	defer span.End()

	if req == nil {
		return fail[bool](ctx, s, span, "create", domain.StatusBadRequest, msgModelIsNull)
	}
	if req.UnitPrice.IsNegative() {
		return fail[bool](ctx, s, span, "create", domain.StatusBadRequest, msgNegativePrice)
	}
	if !storablePrice(req.UnitPrice) {
		return fail[bool](ctx, s, span, "create", domain.StatusBadRequest, msgPriceOutOfRange)
	}

	span.SetAttributes(
		attribute.String("product.name", req.ProductName),
		attribute.String("product.unit_price", req.UnitPrice.String()),
	)

	s.logger.InfoContext(ctx, "Creating product",
		slog.String("name", req.ProductName),
		slog.String("unit_price", req.UnitPrice.String()),
	)

	result := s.repo.Insert(ctx, req.ToProduct())
	if !result.IsSuccessful {
		return fail[bool](ctx, s, span, "create", domain.StatusInternalServerError, result.ErrorMessage)
	}

	s.productCreatedCounter.Add(ctx, 1)
	s.succeed(ctx, span, "create")
	return domain.Success(true)
}

// Put replaces the name, description and unit price of an existing product
func (s *ProductService) Put(ctx context.Context, req *dto.UpdateProductRequest) domain.Result[bool] {
	ctx, span := s.tracer.Start(ctx, "ProductService.Put")
	defer span.End()

	if req == nil {
		return fail[bool](ctx, s, span, "update", domain.StatusBadRequest, msgModelIsNull)
	}
	if req.ID == uuid.Nil {
		return fail[bool](ctx, s, span, "update", domain.StatusBadRequest, msgIDIsEmpty)
	}
	if req.UnitPrice.IsNegative() {
		return fail[bool](ctx, s, span, "update", domain.StatusBadRequest, msgNegativePrice)
	}
	if !storablePrice(req.UnitPrice) {
		return fail[bool](ctx, s, span, "update", domain.StatusBadRequest, msgPriceOutOfRange)
	}

	span.SetAttributes(attribute.String("product.id", req.ID.String()))

	s.logger.InfoContext(ctx, "Updating product",
		slog.String("product_id", req.ID.String()),
	)

	result := s.repo.Update(ctx, req.ToProduct())
	if !result.IsSuccessful {
		return fail[bool](ctx, s, span, "update", domain.StatusInternalServerError, result.ErrorMessage)
	}

	s.succeed(ctx, span, "update")
	return domain.Success(true)
}

// Delete removes a product after confirming it exists
func (s *ProductService) Delete(ctx context.Context, req *dto.DeleteProductRequest) domain.Result[bool] {
	ctx, span := s.tracer.Start(ctx, "ProductService.Delete")
	defer span.End()

	if req == nil {
		return fail[bool](ctx, s, span, "delete", domain.StatusBadRequest, "deleteProductDto is null .")
	}
	if req.ID == uuid.Nil {
		return fail[bool](ctx, s, span, "delete", domain.StatusBadRequest, msgIDIsEmpty)
	}

	span.SetAttributes(attribute.String("product.id", req.ID.String()))

	found := s.repo.SelectByID(ctx, req.ID)
	if !found.IsSuccessful || !found.Payload.HasID() {
		status := domain.StatusNotFound
		if found.StatusCode == domain.StatusInternalServerError {
			status = domain.StatusInternalServerError
		}
		return fail[bool](ctx, s, span, "delete", status, notFoundMessage(found.ErrorMessage))
	}

	// Delete by the stored identity, not the caller-supplied one.
	deleted := s.repo.Delete(ctx, found.Payload.ID)
	if !deleted.IsSuccessful {
		return fail[bool](ctx, s, span, "delete", domain.StatusInternalServerError, deleted.ErrorMessage)
	}

	s.logger.InfoContext(ctx, "Product deleted",
		slog.String("product_id", found.Payload.ID.String()),
	)

	s.succeed(ctx, span, "delete")
	return domain.Success(true)
}

// GetAll retrieves all products
func (s *ProductService) GetAll(ctx context.Context) domain.Result[*dto.ProductListResponse] {
	ctx, span := s.tracer.Start(ctx, "ProductService.GetAll")
	defer span.End()

	s.logger.InfoContext(ctx, "Listing all products")

	result := s.repo.SelectAll(ctx)
	if !result.IsSuccessful && result.StatusCode == domain.StatusInternalServerError {
		return fail[*dto.ProductListResponse](ctx, s, span, "list", domain.StatusInternalServerError, result.ErrorMessage)
	}
	if len(result.Payload) == 0 {
		msg := result.ErrorMessage
		if msg == "" {
			msg = domain.MsgProductsNotFound
		}
		return fail[*dto.ProductListResponse](ctx, s, span, "list", domain.StatusNotFound, msg)
	}

	span.SetAttributes(attribute.Int("product.count", len(result.Payload)))

	s.logger.InfoContext(ctx, "Products listed successfully",
		slog.Int("count", len(result.Payload)),
	)

	s.succeed(ctx, span, "list")
	return domain.Success(dto.ToProductListResponse(result.Payload))
}

// GetByID retrieves a product by ID
func (s *ProductService) GetByID(ctx context.Context, id uuid.UUID) domain.Result[*dto.ProductResponse] {
	ctx, span := s.tracer.Start(ctx, "ProductService.GetByID")
	defer span.End()

	if id == uuid.Nil {
		return fail[*dto.ProductResponse](ctx, s, span, "read", domain.StatusBadRequest, msgIDIsEmpty)
	}

	span.SetAttributes(attribute.String("product.id", id.String()))

	s.logger.InfoContext(ctx, "Getting product by ID",
		slog.String("product_id", id.String()),
	)

	result := s.repo.SelectByID(ctx, id)
	if !result.IsSuccessful || !result.Payload.HasID() {
		status := domain.StatusNotFound
		if result.StatusCode == domain.StatusInternalServerError {
			status = domain.StatusInternalServerError
		}
		return fail[*dto.ProductResponse](ctx, s, span, "read", status, notFoundMessage(result.ErrorMessage))
	}

	s.succeed(ctx, span, "read")
	return domain.Success(dto.ToProductResponse(result.Payload))
}

func notFoundMessage(msg string) string {
	if msg == "" {
		return domain.MsgProductNotFound
	}
	return msg
}

// storablePrice reports whether p fits NUMERIC(18, 2). It inspects only the
// exponent and coefficient digits, so it never expands p's power of ten.
func storablePrice(p decimal.Decimal) bool {
	exp := int(p.Exponent())
	if exp > maxPriceIntegerDigit || exp < -(priceScale+maxPriceIntegerDigit) {
		return false
	}
	if !p.IsZero() && exp+p.NumDigits() > maxPriceIntegerDigit {
		return false
	}
	return exp >= -priceScale || p.Equal(p.Truncate(priceScale))
}

func (s *ProductService) succeed(ctx context.Context, span trace.Span, operation string) {
	s.productOperations.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("operation", operation),
			attribute.String("result", "success"),
		),
	)
	span.SetStatus(codes.Ok, "")
}

// fail records the failed operation and returns the matching result
func fail[T any](ctx context.Context, s *ProductService, span trace.Span, operation string, status domain.Status, msg string) domain.Result[T] {
	span.SetStatus(codes.Error, msg)
	span.SetAttributes(attribute.String("result", status.String()))

	level := slog.LevelWarn
	if status == domain.StatusInternalServerError {
		level = slog.LevelError
	}
	s.logger.Log(ctx, level, "Product operation failed",
		slog.String("operation", operation),
		slog.String("status", status.String()),
		slog.String("error", msg),
	)

	s.productOperations.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("operation", operation),
			attribute.String("result", status.String()),
		),
	)
	return domain.Failure[T](status, msg)
}
