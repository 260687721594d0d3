package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Error defines model for Error.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// DishItem defines model for DishItem.
type DishItem struct {
	DishId openapi_types.UUID `json:"dishId"`
	Size   string             `json:"size"`
}

// NewOrder defines model for NewOrder. An absent address means the user's own.
type NewOrder struct {
	Address      *string            `json:"address,omitempty"`
	Items        []DishItem         `json:"items"`
	ShipmentDate openapi_types.Date `json:"shipmentDate"`
	UserId       openapi_types.UUID `json:"userId"`
}

// CreatedOrder defines model for CreatedOrder.
type CreatedOrder struct {
	Id          openapi_types.UUID `json:"id"`
	OrderNumber int                `json:"orderNumber"`
}

// PendingOrder defines model for PendingOrder.
type PendingOrder struct {
	Id           openapi_types.UUID `json:"id"`
	Number       int                `json:"number"`
	Paid         bool               `json:"paid"`
	ShipmentDate openapi_types.Date `json:"shipmentDate"`
	Status       string             `json:"status"`
}

// PayOrder defines model for PayOrder.
type PayOrder struct {
	UserId openapi_types.UUID `json:"userId"`
}

// PaymentResult defines model for PaymentResult.
type PaymentResult struct {
	Outcome       string              `json:"outcome"`
	Paid          bool                `json:"paid"`
	TransactionId *openapi_types.UUID `json:"transactionId,omitempty"`
}

// CancelOrder defines model for CancelOrder.
type CancelOrder struct {
	Reason string             `json:"reason"`
	UserId openapi_types.UUID `json:"userId"`
}

// RejectOrder defines model for RejectOrder.
type RejectOrder struct {
	Reason string `json:"reason"`
}

// Refund defines model for Refund. RefundId is absent when nothing was paid.
type Refund struct {
	RefundId *openapi_types.UUID `json:"refundId,omitempty"`
}

// ChangeAddress defines model for ChangeAddress.
type ChangeAddress struct {
	Address string `json:"address"`
}

// AddFunds defines model for AddFunds. Amount is a decimal string such as "12.50".
type AddFunds struct {
	Amount string  `json:"amount"`
	PaidAt *string `json:"paidAt,omitempty"`
}

// Transaction defines model for Transaction.
type Transaction struct {
	Amount    string             `json:"amount"`
	CreatedAt time.Time          `json:"createdAt"`
	Id        openapi_types.UUID `json:"id"`
	PaidAt    *time.Time         `json:"paidAt,omitempty"`
	Type      string             `json:"type"`
}

// UserAccount defines model for UserAccount.
type UserAccount struct {
	Balance      string             `json:"balance"`
	Credit       string             `json:"credit"`
	Name         string             `json:"name"`
	Transactions []Transaction      `json:"transactions"`
	UserId       openapi_types.UUID `json:"userId"`
}

// NewPrice defines model for NewPrice.
type NewPrice struct {
	Date  openapi_types.Date `json:"date"`
	Items []DishItem         `json:"items"`
	Value string             `json:"value"`
}

// AdvanceReport defines model for AdvanceReport.
type AdvanceReport struct {
	Advanced int `json:"advanced"`
	Failed   int `json:"failed"`
	Skipped  int `json:"skipped"`
}

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// Create an order
	// (POST /api/v1/orders)
	CreateOrder(ctx echo.Context) error
	// List orders that have not reached a final status
	// (GET /api/v1/orders/active)
	GetActiveOrders(ctx echo.Context) error
	// Move every eligible order one status forward
	// (POST /api/v1/orders/advance)
	AdvanceOrders(ctx echo.Context) error
	// Get an order snapshot
	// (GET /api/v1/orders/{orderId})
	GetOrder(ctx echo.Context, orderId openapi_types.UUID) error
	// Change the delivery address
	// (PUT /api/v1/orders/{orderId}/address)
	ChangeOrderAddress(ctx echo.Context, orderId openapi_types.UUID) error
	// Cancel an order on behalf of its owner
	// (POST /api/v1/orders/{orderId}/cancel)
	CancelOrder(ctx echo.Context, orderId openapi_types.UUID) error
	// Pay an order from the owner's balance
	// (POST /api/v1/orders/{orderId}/pay)
	PayOrder(ctx echo.Context, orderId openapi_types.UUID) error
	// Reject an order
	// (POST /api/v1/orders/{orderId}/reject)
	RejectOrder(ctx echo.Context, orderId openapi_types.UUID) error
	// Add a price rule
	// (POST /api/v1/prices)
	CreatePrice(ctx echo.Context) error
	// Get a user's balance, credit and transactions
	// (GET /api/v1/users/{userId}/account)
	GetUserAccount(ctx echo.Context, userId openapi_types.UUID) error
	// Record funds paid in outside the system
	// (POST /api/v1/users/{userId}/funds)
	AddFunds(ctx echo.Context, userId openapi_types.UUID) error
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

func (w *ServerInterfaceWrapper) CreateOrder(ctx echo.Context) error {
	return w.Handler.CreateOrder(ctx)
}

func (w *ServerInterfaceWrapper) GetActiveOrders(ctx echo.Context) error {
	return w.Handler.GetActiveOrders(ctx)
}

func (w *ServerInterfaceWrapper) AdvanceOrders(ctx echo.Context) error {
	return w.Handler.AdvanceOrders(ctx)
}

func (w *ServerInterfaceWrapper) GetOrder(ctx echo.Context) error {
	orderId, err := bindUUID(ctx, "orderId")
	if err != nil {
		return err
	}
	return w.Handler.GetOrder(ctx, orderId)
}

func (w *ServerInterfaceWrapper) ChangeOrderAddress(ctx echo.Context) error {
	orderId, err := bindUUID(ctx, "orderId")
	if err != nil {
		return err
	}
	return w.Handler.ChangeOrderAddress(ctx, orderId)
}

func (w *ServerInterfaceWrapper) CancelOrder(ctx echo.Context) error {
	orderId, err := bindUUID(ctx, "orderId")
	if err != nil {
		return err
	}
	return w.Handler.CancelOrder(ctx, orderId)
}

func (w *ServerInterfaceWrapper) PayOrder(ctx echo.Context) error {
	orderId, err := bindUUID(ctx, "orderId")
	if err != nil {
		return err
	}
	return w.Handler.PayOrder(ctx, orderId)
}

func (w *ServerInterfaceWrapper) RejectOrder(ctx echo.Context) error {
	orderId, err := bindUUID(ctx, "orderId")
	if err != nil {
		return err
	}
	return w.Handler.RejectOrder(ctx, orderId)
}

func (w *ServerInterfaceWrapper) CreatePrice(ctx echo.Context) error {
	return w.Handler.CreatePrice(ctx)
}

func (w *ServerInterfaceWrapper) GetUserAccount(ctx echo.Context) error {
	userId, err := bindUUID(ctx, "userId")
	if err != nil {
		return err
	}
	return w.Handler.GetUserAccount(ctx, userId)
}

func (w *ServerInterfaceWrapper) AddFunds(ctx echo.Context) error {
	userId, err := bindUUID(ctx, "userId")
	if err != nil {
		return err
	}
	return w.Handler.AddFunds(ctx, userId)
}

func bindUUID(ctx echo.Context, name string) (openapi_types.UUID, error) {
	var id openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", name, ctx.Param(name), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return id, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter %s: %s", name, err))
	}
	return id, nil
}

// EchoRouter is the subset of *echo.Echo and *echo.Group handlers are registered on.
type EchoRouter interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PUT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers adds each server route to the EchoRouter.
func RegisterHandlers(router EchoRouter, si ServerInterface) {
	RegisterHandlersWithBaseURL(router, si, "")
}

// RegisterHandlersWithBaseURL registers the handlers, and prepends baseURL to the paths.
func RegisterHandlersWithBaseURL(router EchoRouter, si ServerInterface, baseURL string) {
	wrapper := ServerInterfaceWrapper{
		Handler: si,
	}

	router.POST(baseURL+"/api/v1/orders", wrapper.CreateOrder)
	router.GET(baseURL+"/api/v1/orders/active", wrapper.GetActiveOrders)
	router.POST(baseURL+"/api/v1/orders/advance", wrapper.AdvanceOrders)
	router.GET(baseURL+"/api/v1/orders/:orderId", wrapper.GetOrder)
	router.PUT(baseURL+"/api/v1/orders/:orderId/address", wrapper.ChangeOrderAddress)
	router.POST(baseURL+"/api/v1/orders/:orderId/cancel", wrapper.CancelOrder)
	router.POST(baseURL+"/api/v1/orders/:orderId/pay", wrapper.PayOrder)
	router.POST(baseURL+"/api/v1/orders/:orderId/reject", wrapper.RejectOrder)
	router.POST(baseURL+"/api/v1/prices", wrapper.CreatePrice)
	router.GET(baseURL+"/api/v1/users/:userId/account", wrapper.GetUserAccount)
	router.POST(baseURL+"/api/v1/users/:userId/funds", wrapper.AddFunds)
}
