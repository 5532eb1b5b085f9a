package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	catalogdomain "github.com/agrodata/ordenes-api/internal/domains/catalog/domain"
	catalogports "github.com/agrodata/ordenes-api/internal/domains/catalog/ports"
	apierrors "github.com/agrodata/ordenes-api/internal/shared/errors"
)

// ProductsAPI wires HTTP transport with the catalog service.
type ProductsAPI struct {
	service   catalogports.Service
	responder *apierrors.ChainedResponder
}

// NewProductsAPI creates a ProductsAPI backed by the provided service.
func NewProductsAPI(service catalogports.Service) ProductsAPI {
	return ProductsAPI{service: service, responder: newResponder()}
}

type createProductRequest struct {
	SKU              string          `json:"sku" binding:"required"`
	InternalCode     string          `json:"internalCode" binding:"required"`
	Name             string          `json:"name" binding:"required"`
	Description      string          `json:"description"`
	CurrentUnitPrice decimal.Decimal `json:"currentUnitPrice"`
	StockQuantity    int             `json:"stockQuantity" binding:"gte=0"`
}

type updateProductRequest struct {
	Description      *string          `json:"description"`
	CurrentUnitPrice *decimal.Decimal `json:"currentUnitPrice"`
	StockQuantity    *int             `json:"stockQuantity" binding:"omitempty,gte=0"`
}

type productResponse struct {
	ProductID        uuid.UUID       `json:"productId"`
	SKU              string          `json:"sku"`
	InternalCode     string          `json:"internalCode"`
	Name             string          `json:"name"`
	Description      string          `json:"description,omitempty"`
	CurrentUnitPrice decimal.Decimal `json:"currentUnitPrice"`
	StockQuantity    int             `json:"stockQuantity"`
}

// Post /api/products
// Create a new catalog product
func (api *ProductsAPI) CreateProduct(c *gin.Context) {
	var payload createProductRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		api.responder.BadRequest(c, err.Error())
		return
	}
	product, err := api.service.CreateProduct(c.Request.Context(), catalogports.CreateProductInput{
		SKU:           payload.SKU,
		InternalCode:  payload.InternalCode,
		Name:          payload.Name,
		Description:   payload.Description,
		UnitPrice:     payload.CurrentUnitPrice,
		StockQuantity: payload.StockQuantity,
	})
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toProductResponse(product))
}

// Get /api/products/:id
// Get a product by id
func (api *ProductsAPI) GetProduct(c *gin.Context) {
	id, ok := parseIDParam(c, api.responder, "id")
	if !ok {
		return
	}
	product, err := api.service.GetProduct(c.Request.Context(), id)
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toProductResponse(product))
}

// Get /api/products
// List products with optional search term and inclusive price bounds
func (api *ProductsAPI) ListProducts(c *gin.Context) {
	page, ok := parsePage(c, api.responder)
	if !ok {
		return
	}
	filter := catalogports.SearchFilter{Term: c.Query("searchTerm")}
	if raw := c.Query("minPrice"); raw != "" {
		price, err := decimal.NewFromString(raw)
		if err != nil {
			api.responder.BadRequest(c, "minPrice must be a decimal number")
			return
		}
		filter.MinPrice = &price
	}
	if raw := c.Query("maxPrice"); raw != "" {
		price, err := decimal.NewFromString(raw)
		if err != nil {
			api.responder.BadRequest(c, "maxPrice must be a decimal number")
			return
		}
		filter.MaxPrice = &price
	}

	result, err := api.service.SearchProducts(c.Request.Context(), catalogports.SearchProductsInput{
		Filter: filter,
		Page:   page,
	})
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	items := make([]productResponse, 0, len(result.Items))
	for _, product := range result.Items {
		items = append(items, toProductResponse(product))
	}
	c.JSON(http.StatusOK, paginatedResponse[productResponse]{
		PageNumber: result.PageNumber,
		PageSize:   result.PageSize,
		TotalItems: result.TotalItems,
		Items:      items,
	})
}

// Put /api/products/:id
// Partially update a product
func (api *ProductsAPI) UpdateProduct(c *gin.Context) {
	id, ok := parseIDParam(c, api.responder, "id")
	if !ok {
		return
	}
	var payload updateProductRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		api.responder.BadRequest(c, err.Error())
		return
	}
	product, err := api.service.UpdateProduct(c.Request.Context(), catalogports.UpdateProductInput{
		ID:            id,
		Description:   payload.Description,
		UnitPrice:     payload.CurrentUnitPrice,
		StockQuantity: payload.StockQuantity,
	})
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toProductResponse(product))
}

func toProductResponse(product *catalogdomain.Product) productResponse {
	return productResponse{
		ProductID:        product.ID,
		SKU:              product.SKU,
		InternalCode:     product.InternalCode,
		Name:             product.Name,
		Description:      product.Description,
		CurrentUnitPrice: product.UnitPrice,
		StockQuantity:    product.StockQuantity,
	}
}
