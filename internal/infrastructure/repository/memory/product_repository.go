package memory

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/mrops-br/products-api/internal/domain"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// ProductRepository is an in-memory implementation of domain.ProductRepository.
// It follows the same contract as the stored procedures: ids are assigned on
// insert and SelectAll returns products in insertion order.
type ProductRepository struct {
	mu       sync.RWMutex
	products map[uuid.UUID]*domain.Product
	order    []uuid.UUID
	tracer   trace.Tracer
	logger   *slog.Logger
}

// NewProductRepository creates a new in-memory product repository
func NewProductRepository(tracer trace.Tracer, logger *slog.Logger) *ProductRepository {
	return &ProductRepository{
		products: make(map[uuid.UUID]*domain.Product),
		tracer:   tracer,
		logger:   logger,
	}
}

// Insert stores a new product under a freshly assigned ID
func (r *ProductRepository) Insert(ctx context.Context, product *domain.Product) domain.Result[bool] {
	ctx, span := r.tracer.Start(ctx, "ProductRepository.Insert")
	defer span.End()

	if product == nil {
		span.SetStatus(codes.Error, domain.MsgProductIsNull)
		return domain.Failure[bool](domain.StatusBadRequest, domain.MsgProductIsNull)
	}
	if err := ctx.Err(); err != nil {
		return storeFault[bool](ctx, r, span, err)
	}

	stored := *product
	stored.ID = uuid.New()

	r.mu.Lock()
	r.products[stored.ID] = &stored
	r.order = append(r.order, stored.ID)
	r.mu.Unlock()

	span.SetAttributes(
		attribute.String("product.id", stored.ID.String()),
		attribute.String("product.name", stored.Name),
	)

	r.logger.InfoContext(ctx, "Product inserted in repository",
		slog.String("product_id", stored.ID.String()),
		slog.String("product_name", stored.Name),
	)

	span.SetStatus(codes.Ok, "Product inserted successfully")
	return domain.Success(true)
}

// Update replaces the stored fields of the product with the same ID
func (r *ProductRepository) Update(ctx context.Context, product *domain.Product) domain.Result[bool] {
	ctx, span := r.tracer.Start(ctx, "ProductRepository.Update")
	defer span.End()

	if product == nil {
		span.SetStatus(codes.Error, domain.MsgProductIsNull)
		return domain.Failure[bool](domain.StatusBadRequest, domain.MsgProductIsNull)
	}
	if err := ctx.Err(); err != nil {
		return storeFault[bool](ctx, r, span, err)
	}

	span.SetAttributes(attribute.String("product.id", product.ID.String()))

	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.products[product.ID]
	if !exists {
		span.SetStatus(codes.Error, domain.MsgProductNotUpdated)
		r.logger.WarnContext(ctx, "No product updated",
			slog.String("product_id", product.ID.String()),
		)
		return domain.Failure[bool](domain.StatusInternalServerError, domain.MsgProductNotUpdated)
	}

	existing.Name = product.Name
	existing.Description = product.Description
	existing.UnitPrice = product.UnitPrice

	span.SetStatus(codes.Ok, "Product updated successfully")
	return domain.Success(true)
}

// Delete removes the product with the given ID
func (r *ProductRepository) Delete(ctx context.Context, id uuid.UUID) domain.Result[bool] {
	ctx, span := r.tracer.Start(ctx, "ProductRepository.Delete")
	defer span.End()

	if id == uuid.Nil {
		span.SetStatus(codes.Error, domain.MsgIDIsEmpty)
		return domain.Failure[bool](domain.StatusBadRequest, domain.MsgIDIsEmpty)
	}
	if err := ctx.Err(); err != nil {
		return storeFault[bool](ctx, r, span, err)
	}

	span.SetAttributes(attribute.String("product.id", id.String()))

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.products[id]; !exists {
		span.SetStatus(codes.Error, domain.MsgProductNotDeleted)
		return domain.Failure[bool](domain.StatusInternalServerError, domain.MsgProductNotDeleted)
	}

	delete(r.products, id)
	for i, stored := range r.order {
		if stored == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}

	r.logger.InfoContext(ctx, "Product deleted from repository",
		slog.String("product_id", id.String()),
	)

	span.SetStatus(codes.Ok, "Product deleted successfully")
	return domain.Success(true)
}

// SelectAll retrieves all products in insertion order
func (r *ProductRepository) SelectAll(ctx context.Context) domain.Result[[]*domain.Product] {
	ctx, span := r.tracer.Start(ctx, "ProductRepository.SelectAll")
	defer span.End()

	if err := ctx.Err(); err != nil {
		return storeFault[[]*domain.Product](ctx, r, span, err)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	products := make([]*domain.Product, 0, len(r.order))
	for _, id := range r.order {
		p := *r.products[id]
		products = append(products, &p)
	}

	span.SetAttributes(attribute.Int("product.count", len(products)))

	r.logger.InfoContext(ctx, "Products retrieved from repository",
		slog.Int("count", len(products)),
	)

	span.SetStatus(codes.Ok, "Products retrieved successfully")
	return domain.Success(products)
}

// SelectByID retrieves a product by ID
func (r *ProductRepository) SelectByID(ctx context.Context, id uuid.UUID) domain.Result[*domain.Product] {
	ctx, span := r.tracer.Start(ctx, "ProductRepository.SelectByID")
	defer span.End()

	if id == uuid.Nil {
		span.SetStatus(codes.Error, domain.MsgIDIsEmpty)
		return domain.Failure[*domain.Product](domain.StatusBadRequest, domain.MsgIDIsEmpty)
	}
	if err := ctx.Err(); err != nil {
		return storeFault[*domain.Product](ctx, r, span, err)
	}

	span.SetAttributes(attribute.String("product.id", id.String()))

	r.mu.RLock()
	defer r.mu.RUnlock()

	product, exists := r.products[id]
	if !exists {
		span.SetStatus(codes.Error, "Product not found")
		r.logger.WarnContext(ctx, "Product not found",
			slog.String("product_id", id.String()),
		)
		return domain.Failure[*domain.Product](domain.StatusNotFound, domain.MsgProductNotFound)
	}

	r.logger.DebugContext(ctx, "Product found in repository",
		slog.String("product_id", id.String()),
		slog.String("product_name", product.Name),
	)

	found := *product
	span.SetStatus(codes.Ok, "Product found")
	return domain.Success(&found)
}

func storeFault[T any](ctx context.Context, r *ProductRepository, span trace.Span, err error) domain.Result[T] {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	r.logger.ErrorContext(ctx, "Repository operation aborted",
		slog.String("error", err.Error()),
	)
	return domain.Failure[T](domain.StatusInternalServerError, domain.StoreErrorMessage(err))
}
