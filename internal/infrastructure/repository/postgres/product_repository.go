// Package postgres implements domain.ProductRepository on top of the
// usp_* stored functions in PostgreSQL. All variable data is passed as bound
// parameters; no SQL text is built from field values.
package postgres

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mrops-br/products-api/internal/domain"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	sqlInsertProduct  = "SELECT usp_InsertProduct($1, $2, $3)"
	sqlUpdateProduct  = "SELECT usp_UpdateProduct($1, $2, $3, $4)"
	sqlDeleteProduct  = "SELECT usp_DeleteProduct($1)"
	sqlGetAllProducts = "SELECT id, product_name, product_description, unit_price FROM usp_GetAllProducts()"
	sqlGetProductByID = "SELECT id, product_name, product_description, unit_price FROM usp_GetProductById($1)"
)

// Querier is the subset of *pgxpool.Pool used by the repository
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// ProductRepository calls the product stored functions through an injected pool
type ProductRepository struct {
	db     Querier
	tracer trace.Tracer
	logger *slog.Logger
}

// NewProductRepository creates a repository bound to db
func NewProductRepository(db Querier, tracer trace.Tracer, logger *slog.Logger) *ProductRepository {
	return &ProductRepository{
		db:     db,
		tracer: tracer,
		logger: logger,
	}
}

// Insert calls usp_InsertProduct; the store assigns the ID
func (r *ProductRepository) Insert(ctx context.Context, product *domain.Product) domain.Result[bool] {
	ctx, span := r.start(ctx, "ProductRepository.Insert", "usp_InsertProduct")
	defer span.End()

	if product == nil {
		span.SetStatus(codes.Error, domain.MsgProductIsNull)
		return domain.Failure[bool](domain.StatusBadRequest, domain.MsgProductIsNull)
	}

	return r.execAffecting(ctx, span, domain.MsgProductNotInserted,
		sqlInsertProduct, product.Name, product.Description, product.UnitPrice)
}

// Update calls usp_UpdateProduct keyed by the product ID
func (r *ProductRepository) Update(ctx context.Context, product *domain.Product) domain.Result[bool] {
	ctx, span := r.start(ctx, "ProductRepository.Update", "usp_UpdateProduct")
	defer span.End()

	if product == nil {
		span.SetStatus(codes.Error, domain.MsgProductIsNull)
		return domain.Failure[bool](domain.StatusBadRequest, domain.MsgProductIsNull)
	}

	span.SetAttributes(attribute.String("product.id", product.ID.String()))

	return r.execAffecting(ctx, span, domain.MsgProductNotUpdated,
		sqlUpdateProduct, product.ID, product.Name, product.Description, product.UnitPrice)
}

// Delete calls usp_DeleteProduct
func (r *ProductRepository) Delete(ctx context.Context, id uuid.UUID) domain.Result[bool] {
	ctx, span := r.start(ctx, "ProductRepository.Delete", "usp_DeleteProduct")
	defer span.End()

	if id == uuid.Nil {
		span.SetStatus(codes.Error, domain.MsgIDIsEmpty)
		return domain.Failure[bool](domain.StatusBadRequest, domain.MsgIDIsEmpty)
	}

	span.SetAttributes(attribute.String("product.id", id.String()))

	return r.execAffecting(ctx, span, domain.MsgProductNotDeleted, sqlDeleteProduct, id)
}

// SelectAll calls usp_GetAllProducts. An empty table yields an empty, non-nil slice.
func (r *ProductRepository) SelectAll(ctx context.Context) domain.Result[[]*domain.Product] {
	ctx, span := r.start(ctx, "ProductRepository.SelectAll", "usp_GetAllProducts")
	defer span.End()

	rows, err := r.db.Query(ctx, sqlGetAllProducts)
	if err != nil {
		return storeFault[[]*domain.Product](ctx, r, span, err)
	}
	defer rows.Close()

	products := make([]*domain.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return storeFault[[]*domain.Product](ctx, r, span, err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return storeFault[[]*domain.Product](ctx, r, span, err)
	}

	span.SetAttributes(attribute.Int("product.count", len(products)))

	r.logger.InfoContext(ctx, "Products retrieved from database",
		slog.Int("count", len(products)),
	)

	span.SetStatus(codes.Ok, "Products retrieved successfully")
	return domain.Success(products)
}

// SelectByID calls usp_GetProductById
func (r *ProductRepository) SelectByID(ctx context.Context, id uuid.UUID) domain.Result[*domain.Product] {
	ctx, span := r.start(ctx, "ProductRepository.SelectByID", "usp_GetProductById")
	defer span.End()

	if id == uuid.Nil {
		span.SetStatus(codes.Error, domain.MsgIDIsEmpty)
		return domain.Failure[*domain.Product](domain.StatusBadRequest, domain.MsgIDIsEmpty)
	}

	span.SetAttributes(attribute.String("product.id", id.String()))

	product, err := scanProduct(r.db.QueryRow(ctx, sqlGetProductByID, id))
	if errors.Is(err, pgx.ErrNoRows) {
		span.SetStatus(codes.Error, "Product not found")
		r.logger.WarnContext(ctx, "Product not found",
			slog.String("product_id", id.String()),
		)
		return domain.Failure[*domain.Product](domain.StatusNotFound, domain.MsgProductNotFound)
	}
	if err != nil {
		return storeFault[*domain.Product](ctx, r, span, err)
	}

	span.SetStatus(codes.Ok, "Product found")
	return domain.Success(product)
}

func (r *ProductRepository) start(ctx context.Context, name, procedure string) (context.Context, trace.Span) {
	ctx, span := r.tracer.Start(ctx, name, trace.WithSpanKind(trace.SpanKindClient))
	span.SetAttributes(
		attribute.String("db.system", "postgresql"),
		attribute.String("db.operation", procedure),
	)
	return ctx, span
}

// execAffecting runs a procedure that reports its affected-row count.
// At least one affected row is a success.
func (r *ProductRepository) execAffecting(ctx context.Context, span trace.Span, noRowsMsg, sql string, args ...any) domain.Result[bool] {
	var affected int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&affected); err != nil {
		return storeFault[bool](ctx, r, span, err)
	}

	span.SetAttributes(attribute.Int64("db.rows_affected", affected))

	if affected < 1 {
		span.SetStatus(codes.Error, noRowsMsg)
		r.logger.WarnContext(ctx, "Procedure affected no rows",
			slog.String("error", noRowsMsg),
		)
		return domain.Failure[bool](domain.StatusInternalServerError, noRowsMsg)
	}

	span.SetStatus(codes.Ok, "")
	return domain.Success(true)
}

func scanProduct(row pgx.Row) (*domain.Product, error) {
	var p domain.Product
	if err := row.Scan(&p.ID, &p.Name, &p.Description, &p.UnitPrice); err != nil {
		return nil, err
	}
	return &p, nil
}

func storeFault[T any](ctx context.Context, r *ProductRepository, span trace.Span, err error) domain.Result[T] {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	r.logger.ErrorContext(ctx, "Stored procedure call failed",
		slog.String("error", err.Error()),
	)
	return domain.Failure[T](domain.StatusInternalServerError, domain.StoreErrorMessage(err))
}
