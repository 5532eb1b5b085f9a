package httpapi

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	catalogapp "github.com/agrodata/ordenes-api/internal/domains/catalog/application"
	catalogports "github.com/agrodata/ordenes-api/internal/domains/catalog/ports"
	ordersapp "github.com/agrodata/ordenes-api/internal/domains/orders/application"
	ordersports "github.com/agrodata/ordenes-api/internal/domains/orders/ports"
	apierrors "github.com/agrodata/ordenes-api/internal/shared/errors"
	"github.com/agrodata/ordenes-api/internal/shared/pagination"
	"github.com/agrodata/ordenes-api/internal/shared/storage"
)

// newResponder chains the per-domain error mappers so every failure kind the
// services report maps to its own problem type.
func newResponder() *apierrors.ChainedResponder {
	return apierrors.NewChainedResponder("",
		ordersErrorMapper,
		catalogErrorMapper,
		storageErrorMapper,
	)
}

func ordersErrorMapper(err error) (apierrors.ProblemDetail, bool) {
	var unknown *ordersapp.UnknownProductError
	switch {
	case errors.As(err, &unknown):
		return apierrors.ErrUnknownProduct.
			WithDetail(unknown.Error()).
			WithExtension("productId", unknown.ProductID.String()), true
	case errors.Is(err, ordersports.ErrNotFound):
		return apierrors.ErrNotFound.WithDetail(err.Error()), true
	case errors.Is(err, ordersapp.ErrInvalidInput):
		return apierrors.ErrValidation.WithDetail(err.Error()), true
	}
	return apierrors.ProblemDetail{}, false
}

func catalogErrorMapper(err error) (apierrors.ProblemDetail, bool) {
	var insufficient *catalogports.InsufficientStockError
	switch {
	case errors.As(err, &insufficient):
		return apierrors.ErrInsufficientStock.
			WithDetail(insufficient.Error()).
			WithExtension("productId", insufficient.ProductID.String()).
			WithExtension("requested", insufficient.Requested).
			WithExtension("available", insufficient.Available), true
	case errors.Is(err, catalogports.ErrNotFound):
		return apierrors.ErrNotFound.WithDetail(err.Error()), true
	case errors.Is(err, catalogports.ErrConflict):
		return apierrors.ErrConflict.WithDetail(err.Error()), true
	case errors.Is(err, catalogapp.ErrInvalidInput):
		return apierrors.ErrValidation.WithDetail(err.Error()), true
	}
	return apierrors.ProblemDetail{}, false
}

func storageErrorMapper(err error) (apierrors.ProblemDetail, bool) {
	if errors.Is(err, storage.ErrUnavailable) {
		return apierrors.ErrStorageUnavailable, true
	}
	return apierrors.ProblemDetail{}, false
}

// parseIDParam reads a uuid path parameter, responding 400 on malformed input.
func parseIDParam(c *gin.Context, responder *apierrors.ChainedResponder, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		responder.BadRequest(c, name+" must be a valid uuid")
		return uuid.Nil, false
	}
	return id, true
}

// parsePage reads pageNumber/pageSize query parameters, applying the defaults
// when absent. Non-positive explicit values are passed through so the services
// reject them.
func parsePage(c *gin.Context, responder *apierrors.ChainedResponder) (pagination.Page, bool) {
	page := pagination.Page{Number: pagination.DefaultNumber, Size: pagination.DefaultSize}
	if raw := c.Query("pageNumber"); raw != "" {
		number, err := strconv.Atoi(raw)
		if err != nil {
			responder.BadRequest(c, "pageNumber must be an integer")
			return pagination.Page{}, false
		}
		page.Number = number
	}
	if raw := c.Query("pageSize"); raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil {
			responder.BadRequest(c, "pageSize must be an integer")
			return pagination.Page{}, false
		}
		page.Size = size
	}
	return page, true
}

// paginatedResponse mirrors the page envelope of the service layer.
type paginatedResponse[T any] struct {
	PageNumber int   `json:"pageNumber"`
	PageSize   int   `json:"pageSize"`
	TotalItems int64 `json:"totalItems"`
	Items      []T   `json:"items"`
}
