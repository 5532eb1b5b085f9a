package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	ordersdomain "github.com/agrodata/ordenes-api/internal/domains/orders/domain"
	ordersports "github.com/agrodata/ordenes-api/internal/domains/orders/ports"
	apierrors "github.com/agrodata/ordenes-api/internal/shared/errors"
)

// OrdersAPI wires HTTP transport with the order ledger service.
type OrdersAPI struct {
	service   ordersports.Service
	responder *apierrors.ChainedResponder
}

// NewOrdersAPI creates an OrdersAPI backed by the provided service.
func NewOrdersAPI(service ordersports.Service) OrdersAPI {
	return OrdersAPI{service: service, responder: newResponder()}
}

type createOrderItemRequest struct {
	ProductID uuid.UUID `json:"productId" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required,gte=1"`
}

type createOrderRequest struct {
	CustomerID      uuid.UUID                `json:"customerId" binding:"required"`
	ShippingAddress string                   `json:"shippingAddress" binding:"required,min=5"`
	BillingAddress  string                   `json:"billingAddress" binding:"required,min=5"`
	Notes           string                   `json:"notes"`
	Items           []createOrderItemRequest `json:"items" binding:"required,min=1,dive"`
}

type updateOrderStatusRequest struct {
	NewStatus string `json:"newStatus" binding:"required"`
}

type orderItemResponse struct {
	OrderItemID uuid.UUID       `json:"orderItemId"`
	ProductID   uuid.UUID       `json:"productId"`
	ProductName string          `json:"productName"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

type orderResponse struct {
	OrderID         uuid.UUID           `json:"orderId"`
	CustomerID      uuid.UUID           `json:"customerId"`
	OrderDate       time.Time           `json:"orderDate"`
	OrderStatus     string              `json:"orderStatus"`
	TotalAmount     decimal.Decimal     `json:"totalAmount"`
	ShippingAddress string              `json:"shippingAddress"`
	BillingAddress  string              `json:"billingAddress"`
	Notes           string              `json:"notes,omitempty"`
	Items           []orderItemResponse `json:"items"`
}

// orderSummaryResponse is the list projection; full detail requires the get
// endpoint.
type orderSummaryResponse struct {
	OrderID     uuid.UUID       `json:"orderId"`
	CustomerID  uuid.UUID       `json:"customerId"`
	OrderDate   time.Time       `json:"orderDate"`
	OrderStatus string          `json:"orderStatus"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
}

// Post /api/orders
// Place a new order
func (api *OrdersAPI) CreateOrder(c *gin.Context) {
	var payload createOrderRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		api.responder.BadRequest(c, err.Error())
		return
	}
	items := make([]ordersports.OrderItemInput, 0, len(payload.Items))
	for _, item := range payload.Items {
		items = append(items, ordersports.OrderItemInput{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}
	order, err := api.service.CreateOrder(c.Request.Context(), ordersports.CreateOrderInput{
		CustomerID:      payload.CustomerID,
		ShippingAddress: payload.ShippingAddress,
		BillingAddress:  payload.BillingAddress,
		Notes:           payload.Notes,
		Items:           items,
	})
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toOrderResponse(order))
}

// Get /api/orders/:id
// Get an order with its items
func (api *OrdersAPI) GetOrder(c *gin.Context) {
	id, ok := parseIDParam(c, api.responder, "id")
	if !ok {
		return
	}
	order, err := api.service.GetOrder(c.Request.Context(), id)
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(order))
}

// Get /api/orders
// List order summaries with optional status and customer filters
func (api *OrdersAPI) ListOrders(c *gin.Context) {
	page, ok := parsePage(c, api.responder)
	if !ok {
		return
	}
	input := ordersports.ListOrdersInput{
		Status: c.Query("status"),
		Page:   page,
	}
	if raw := c.Query("customerId"); raw != "" {
		customerID, err := uuid.Parse(raw)
		if err != nil {
			api.responder.BadRequest(c, "customerId must be a valid uuid")
			return
		}
		input.CustomerID = &customerID
	}

	result, err := api.service.ListOrders(c.Request.Context(), input)
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	items := make([]orderSummaryResponse, 0, len(result.Items))
	for _, order := range result.Items {
		items = append(items, orderSummaryResponse{
			OrderID:     order.ID,
			CustomerID:  order.CustomerID,
			OrderDate:   order.OrderDate,
			OrderStatus: string(order.Status),
			TotalAmount: order.TotalAmount,
		})
	}
	c.JSON(http.StatusOK, paginatedResponse[orderSummaryResponse]{
		PageNumber: result.PageNumber,
		PageSize:   result.PageSize,
		TotalItems: result.TotalItems,
		Items:      items,
	})
}

// Put /api/orders/:id/status
// Move an order along the status state machine
func (api *OrdersAPI) UpdateOrderStatus(c *gin.Context) {
	id, ok := parseIDParam(c, api.responder, "id")
	if !ok {
		return
	}
	var payload updateOrderStatusRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		api.responder.BadRequest(c, err.Error())
		return
	}
	order, err := api.service.UpdateOrderStatus(c.Request.Context(), id, payload.NewStatus)
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(order))
}

func toOrderResponse(order *ordersdomain.Order) orderResponse {
	items := make([]orderItemResponse, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, orderItemResponse{
			OrderItemID: item.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Subtotal:    item.Subtotal,
		})
	}
	return orderResponse{
		OrderID:         order.ID,
		CustomerID:      order.CustomerID,
		OrderDate:       order.OrderDate,
		OrderStatus:     string(order.Status),
		TotalAmount:     order.TotalAmount,
		ShippingAddress: order.ShippingAddress,
		BillingAddress:  order.BillingAddress,
		Notes:           order.Notes,
		Items:           items,
	}
}
