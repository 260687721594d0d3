package http

import (
	"context"
	"net/http"

	"mealdelivery/internal/core/application/usecases/commands"
	"mealdelivery/internal/core/application/usecases/queries"
	"mealdelivery/internal/core/domain/model/kernel"
	"mealdelivery/internal/core/domain/model/order"
	"mealdelivery/internal/core/domain/model/transaction"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
	"go.uber.org/zap"
)

type (
	CreateOrderHandler interface {
		Handle(ctx context.Context, cmd commands.CreateOrderCommand) (int, error)
	}
	PayOrderHandler interface {
		Handle(ctx context.Context, cmd commands.PayOrderCommand) (order.PayOutcome, error)
	}
	CancelOrderHandler interface {
		Handle(ctx context.Context, cmd commands.CancelOrderCommand) (*transaction.Transaction, error)
	}
	RejectOrderHandler interface {
		Handle(ctx context.Context, cmd commands.RejectOrderCommand) (*transaction.Transaction, error)
	}
	ChangeOrderAddressHandler interface {
		Handle(ctx context.Context, cmd commands.ChangeOrderAddressCommand) error
	}
	AdvanceOrderStatusesHandler interface {
		Handle(ctx context.Context, cmd commands.AdvanceOrderStatusesCommand) (commands.AdvanceReport, error)
	}
	AddFundsHandler interface {
		Handle(ctx context.Context, cmd commands.AddFundsCommand) (*transaction.Transaction, error)
	}
	CreatePriceHandler interface {
		Handle(ctx context.Context, cmd commands.CreatePriceCommand) error
	}
	GetOrderHandler interface {
		Handle(ctx context.Context, query queries.GetOrderQuery) (order.Snapshot, error)
	}
	GetUncompletedOrdersHandler interface {
		Handle(ctx context.Context, query queries.GetUncompletedOrdersQuery) ([]queries.GetUncompletedOrdersQueryResponse, error)
	}
	GetUserAccountHandler interface {
		Handle(ctx context.Context, query queries.GetUserAccountQuery) (queries.GetUserAccountQueryResponse, error)
	}
)

// Handlers groups the use cases the HTTP server dispatches to.
type Handlers struct {
	// Command handlers
	CreateOrder          CreateOrderHandler
	PayOrder             PayOrderHandler
	CancelOrder          CancelOrderHandler
	RejectOrder          RejectOrderHandler
	ChangeOrderAddress   ChangeOrderAddressHandler
	AdvanceOrderStatuses AdvanceOrderStatusesHandler
	AddFunds             AddFundsHandler
	CreatePrice          CreatePriceHandler

	// Query handlers
	GetOrder             GetOrderHandler
	GetUncompletedOrders GetUncompletedOrdersHandler
	GetUserAccount       GetUserAccountHandler
}

// Server implements the ServerInterface for handling HTTP requests.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	handlers Handlers
	logger   *zap.Logger
}

var _ ServerInterface = (*Server)(nil)

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(handlers Handlers, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		handlers: handlers,
		logger:   logger.With(zap.String("component", "http")),
	}
}

// CreateOrder handles POST /api/v1/orders - places a new order.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var body NewOrder
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	userID, err := kernel.UUIDFromBytes(body.UserId[:])
	if err != nil {
		return badRequest(ctx, "Invalid user id: "+err.Error())
	}
	items, err := toDishItems(body.Items)
	if err != nil {
		return badRequest(ctx, "Invalid dish id: "+err.Error())
	}

	var address string
	if body.Address != nil {
		address = *body.Address
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(orderID, userID, address, body.ShipmentDate.Time, items)
	if err != nil {
		return badRequest(ctx, "Invalid order data: "+err.Error())
	}

	number, err := s.handlers.CreateOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err, "Failed to create order")
	}

	return ctx.JSON(http.StatusCreated, CreatedOrder{
		Id:          orderID.Bytes(),
		OrderNumber: number,
	})
}

// GetActiveOrders handles GET /api/v1/orders/active - retrieves all uncompleted orders.
func (s *Server) GetActiveOrders(ctx echo.Context) error {
	orders, err := s.handlers.GetUncompletedOrders.Handle(ctx.Request().Context(), queries.NewGetUncompletedOrdersQuery())
	if err != nil {
		return s.fail(ctx, err, "Failed to retrieve orders")
	}

	response := make([]PendingOrder, len(orders))
	for i, o := range orders {
		response[i] = PendingOrder{
			Id:           o.ID.Bytes(),
			Number:       o.Number,
			Paid:         o.Paid,
			ShipmentDate: openapi_types.Date{Time: o.ShipmentDate},
			Status:       o.Status.String(),
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// AdvanceOrders handles POST /api/v1/orders/advance - runs one status batch now.
func (s *Server) AdvanceOrders(ctx echo.Context) error {
	report, err := s.handlers.AdvanceOrderStatuses.Handle(ctx.Request().Context(), commands.NewAdvanceOrderStatusesCommand())
	if err != nil {
		return s.fail(ctx, err, "Failed to advance orders")
	}

	return ctx.JSON(http.StatusOK, AdvanceReport{
		Advanced: report.Advanced,
		Failed:   report.Failed,
		Skipped:  report.Skipped,
	})
}

// GetOrder handles GET /api/v1/orders/{orderId}.
func (s *Server) GetOrder(ctx echo.Context, orderId openapi_types.UUID) error {
	id, err := kernel.UUIDFromBytes(orderId[:])
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}
	query, err := queries.NewGetOrderQuery(id)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	snapshot, err := s.handlers.GetOrder.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err, "Failed to retrieve order")
	}

	return ctx.JSON(http.StatusOK, snapshot)
}

// ChangeOrderAddress handles PUT /api/v1/orders/{orderId}/address.
func (s *Server) ChangeOrderAddress(ctx echo.Context, orderId openapi_types.UUID) error {
	var body ChangeAddress
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	id, err := kernel.UUIDFromBytes(orderId[:])
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}
	cmd, err := commands.NewChangeOrderAddressCommand(id, body.Address)
	if err != nil {
		return badRequest(ctx, "Invalid address: "+err.Error())
	}

	if err = s.handlers.ChangeOrderAddress.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err, "Failed to change address")
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CancelOrder handles POST /api/v1/orders/{orderId}/cancel.
func (s *Server) CancelOrder(ctx echo.Context, orderId openapi_types.UUID) error {
	var body CancelOrder
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	id, err := kernel.UUIDFromBytes(orderId[:])
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}
	userID, err := kernel.UUIDFromBytes(body.UserId[:])
	if err != nil {
		return badRequest(ctx, "Invalid user id: "+err.Error())
	}
	cmd, err := commands.NewCancelOrderCommand(id, userID, body.Reason)
	if err != nil {
		return badRequest(ctx, "Invalid cancellation: "+err.Error())
	}

	refund, err := s.handlers.CancelOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err, "Failed to cancel order")
	}

	return ctx.JSON(http.StatusOK, toRefund(refund))
}

// PayOrder handles POST /api/v1/orders/{orderId}/pay. A short balance is an
// outcome and still answers 200.
func (s *Server) PayOrder(ctx echo.Context, orderId openapi_types.UUID) error {
	var body PayOrder
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	id, err := kernel.UUIDFromBytes(orderId[:])
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}
	userID, err := kernel.UUIDFromBytes(body.UserId[:])
	if err != nil {
		return badRequest(ctx, "Invalid user id: "+err.Error())
	}
	cmd, err := commands.NewPayOrderCommand(id, userID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	outcome, err := s.handlers.PayOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err, "Failed to pay order")
	}

	result := PaymentResult{
		Outcome: outcome.Kind.String(),
		Paid:    outcome.IsPaid(),
	}
	if outcome.Transaction != nil {
		txID := openapi_types.UUID(outcome.Transaction.ID().Bytes())
		result.TransactionId = &txID
	}

	return ctx.JSON(http.StatusOK, result)
}

// RejectOrder handles POST /api/v1/orders/{orderId}/reject.
func (s *Server) RejectOrder(ctx echo.Context, orderId openapi_types.UUID) error {
	var body RejectOrder
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	id, err := kernel.UUIDFromBytes(orderId[:])
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}
	cmd, err := commands.NewRejectOrderCommand(id, body.Reason)
	if err != nil {
		return badRequest(ctx, "Invalid rejection: "+err.Error())
	}

	refund, err := s.handlers.RejectOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err, "Failed to reject order")
	}

	return ctx.JSON(http.StatusOK, toRefund(refund))
}

// CreatePrice handles POST /api/v1/prices.
func (s *Server) CreatePrice(ctx echo.Context) error {
	var body NewPrice
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	value, err := kernel.MoneyFromString(body.Value)
	if err != nil {
		return badRequest(ctx, "Invalid value: "+err.Error())
	}
	items, err := toDishItems(body.Items)
	if err != nil {
		return badRequest(ctx, "Invalid dish id: "+err.Error())
	}
	cmd, err := commands.NewCreatePriceCommand(kernel.NewUUID(), value, body.Date.Time, items)
	if err != nil {
		return badRequest(ctx, "Invalid price data: "+err.Error())
	}

	if err = s.handlers.CreatePrice.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err, "Failed to create price")
	}

	return ctx.NoContent(http.StatusCreated)
}

// GetUserAccount handles GET /api/v1/users/{userId}/account.
func (s *Server) GetUserAccount(ctx echo.Context, userId openapi_types.UUID) error {
	id, err := kernel.UUIDFromBytes(userId[:])
	if err != nil {
		return badRequest(ctx, "Invalid user id: "+err.Error())
	}
	query, err := queries.NewGetUserAccountQuery(id)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	account, err := s.handlers.GetUserAccount.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err, "Failed to retrieve account")
	}

	response := UserAccount{
		Balance:      account.Balance.String(),
		Credit:       account.Credit.String(),
		Name:         account.Name,
		Transactions: make([]Transaction, len(account.Transactions)),
		UserId:       account.UserID.Bytes(),
	}
	for i, t := range account.Transactions {
		response.Transactions[i] = Transaction{
			Amount:    t.Amount.String(),
			CreatedAt: t.CreatedAt,
			Id:        t.ID.Bytes(),
			PaidAt:    t.PaidAt,
			Type:      t.Type,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// AddFunds handles POST /api/v1/users/{userId}/funds.
func (s *Server) AddFunds(ctx echo.Context, userId openapi_types.UUID) error {
	var body AddFunds
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	id, err := kernel.UUIDFromBytes(userId[:])
	if err != nil {
		return badRequest(ctx, "Invalid user id: "+err.Error())
	}
	amount, err := kernel.MoneyFromString(body.Amount)
	if err != nil {
		return badRequest(ctx, "Invalid amount: "+err.Error())
	}

	var paidAt string
	if body.PaidAt != nil {
		paidAt = *body.PaidAt
	}
	cmd, err := commands.NewAddFundsCommand(id, amount, paidAt)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	tx, err := s.handlers.AddFunds.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err, "Failed to add funds")
	}

	response := Transaction{
		Amount:    tx.Amount().String(),
		CreatedAt: tx.CreatedAt(),
		Id:        tx.ID().Bytes(),
		Type:      tx.Type().String(),
	}
	if at, ok := tx.PaidAt(); ok {
		response.PaidAt = &at
	}

	return ctx.JSON(http.StatusCreated, response)
}

func toDishItems(items []DishItem) ([]commands.DishItem, error) {
	result := make([]commands.DishItem, 0, len(items))
	for _, item := range items {
		dishID, err := kernel.UUIDFromBytes(item.DishId[:])
		if err != nil {
			return nil, err
		}
		result = append(result, commands.DishItem{DishID: dishID, Size: item.Size})
	}
	return result, nil
}

func toRefund(tx *transaction.Transaction) Refund {
	if tx == nil {
		return Refund{}
	}
	id := openapi_types.UUID(tx.ID().Bytes())
	return Refund{RefundId: &id}
}
