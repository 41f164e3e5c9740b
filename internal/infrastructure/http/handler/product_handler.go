package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/mrops-br/products-api/internal/app/dto"
	"github.com/mrops-br/products-api/internal/app/service"
	"github.com/mrops-br/products-api/internal/domain"
	"github.com/mrops-br/products-api/internal/infrastructure/http/response"
)

const maxBodyBytes = 1 << 20

var errTrailingData = errors.New("request body must contain a single JSON object")

// ProductHandler handles HTTP requests for products
type ProductHandler struct {
	service *service.ProductService
	logger  *slog.Logger
}

// NewProductHandler creates a new product handler
func NewProductHandler(service *service.ProductService, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		logger:  logger,
	}
}

// Routes mounts the product routes on r
func (h *ProductHandler) Routes(r chi.Router) {
	r.Post("/create", h.CreateProduct)
	r.Put("/edit", h.EditProduct)
	r.Delete("/delete", h.DeleteProduct)
	r.Get("/list", h.ListProducts)
	r.Get("/{id}", h.GetProduct)
}

// CreateProduct handles POST /api/product/create
func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateProductRequest
	if !h.decode(w, r, &req, req.Validate) {
		return
	}

	response.Result(w, h.service.Post(r.Context(), &req))
}

// EditProduct handles PUT /api/product/edit
func (h *ProductHandler) EditProduct(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateProductRequest
	if !h.decode(w, r, &req, req.Validate) {
		return
	}

	response.Result(w, h.service.Put(r.Context(), &req))
}

// DeleteProduct handles DELETE /api/product/delete
func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	var req dto.DeleteProductRequest
	if !h.decode(w, r, &req, req.Validate) {
		return
	}

	response.Result(w, h.service.Delete(r.Context(), &req))
}

// ListProducts handles GET /api/product/list.
// An empty catalog is rendered as an empty collection rather than 404.
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	result := h.service.GetAll(r.Context())
	if result.StatusCode == domain.StatusNotFound {
		response.JSON(w, http.StatusOK, dto.EmptyProductListResponse())
		return
	}

	response.Result(w, result)
}

// GetProduct handles GET /api/product/{id}
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, http.StatusBadRequest, fmt.Errorf("invalid product id: %w", err))
		return
	}

	response.Result(w, h.service.GetByID(r.Context(), id))
}

// decode reads exactly one JSON value from the body into dst and runs
// validate. It writes a 400 response and returns false when either step fails.
func (h *ProductHandler) decode(w http.ResponseWriter, r *http.Request, dst any, validate func() error) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	dec := json.NewDecoder(r.Body)
	err := dec.Decode(dst)
	if err == nil && dec.More() {
		err = errTrailingData
	}
	if err != nil {
		h.logger.WarnContext(r.Context(), "Failed to decode request body",
			slog.String("error", err.Error()),
		)
		response.Error(w, http.StatusBadRequest, err)
		return false
	}

	if err := validate(); err != nil {
		h.logger.WarnContext(r.Context(), "Request failed validation",
			slog.String("error", err.Error()),
		)
		response.Error(w, http.StatusBadRequest, err)
		return false
	}
	return true
}
