package http

import (
	"errors"
	"net/http"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	"go.uber.org/zap"
)

// UserHeader carries the acting user of state-changing requests.
const UserHeader = "X-User-ID"

// Server handles the REST API. It coordinates between HTTP handlers and application
// use cases.
type Server struct {
	// Command handlers
	createOrderHandler       commands.CreateOrderCommandHandler
	approveOrderHandler      commands.ApproveOrderCommandHandler
	rejectOrderHandler       commands.RejectOrderCommandHandler
	allocateInventoryHandler commands.AllocateInventoryCommandHandler
	dispatchProductsHandler  commands.DispatchProductsCommandHandler
	deliverProductsHandler   commands.DeliverProductsCommandHandler

	// Query handlers
	getOrderHandler          queries.GetOrderQueryHandler
	getOrdersByStatusHandler queries.GetOrdersByStatusQueryHandler

	logger *zap.Logger
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	approveOrderHandler commands.ApproveOrderCommandHandler,
	rejectOrderHandler commands.RejectOrderCommandHandler,
	allocateInventoryHandler commands.AllocateInventoryCommandHandler,
	dispatchProductsHandler commands.DispatchProductsCommandHandler,
	deliverProductsHandler commands.DeliverProductsCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	getOrdersByStatusHandler queries.GetOrdersByStatusQueryHandler,
	logger *zap.Logger,
) *Server {
	return &Server{
		createOrderHandler:       createOrderHandler,
		approveOrderHandler:      approveOrderHandler,
		rejectOrderHandler:       rejectOrderHandler,
		allocateInventoryHandler: allocateInventoryHandler,
		dispatchProductsHandler:  dispatchProductsHandler,
		deliverProductsHandler:   deliverProductsHandler,
		getOrderHandler:          getOrderHandler,
		getOrdersByStatusHandler: getOrdersByStatusHandler,
		logger:                   logger,
	}
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, Health{Status: "ok"})
}

// CreateOrder handles POST /api/v1/orders - registers an order awaiting approval.
func (s *Server) CreateOrder(ctx echo.Context) error {
	user, err := actingUser(ctx)
	if err != nil {
		return s.writeError(ctx, err)
	}

	var body NewOrder
	if err = ctx.Bind(&body); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	priority, err := order.ParsePriority(body.Priority)
	if err != nil {
		return s.writeError(ctx, err)
	}

	details := order.Details{
		Customer:        body.Customer,
		Reference:       body.Reference,
		OrderDate:       body.OrderDate.UTC(),
		Priority:        priority,
		ShippingAddress: body.ShippingAddress,
		Carrier:         body.Carrier,
		TrackingNumber:  body.TrackingNumber,
		Remarks:         body.Remarks,
	}
	if body.DeliveryDate != nil {
		details.DeliveryDate = body.DeliveryDate.UTC()
	}

	lines := make([]commands.ProductLine, len(body.Products))
	for i, p := range body.Products {
		lines[i] = commands.ProductLine{Name: p.Name, SKU: p.Sku, Quantity: p.Quantity}
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(orderID, details, lines, user)
	if err != nil {
		return s.writeError(ctx, err)
	}

	reqCtx := ctx.Request().Context()
	if err = s.createOrderHandler.Handle(reqCtx, cmd); err != nil {
		return s.writeError(ctx, err)
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return s.writeError(ctx, err)
	}
	created, err := s.getOrderHandler.Handle(reqCtx, query)
	if err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, toOrder(created))
}

// ListOrders handles GET /api/v1/orders - lists order summaries, optionally by status.
func (s *Server) ListOrders(ctx echo.Context) error {
	var statusParam *string
	if err := runtime.BindQueryParameter("form", true, false, "status", ctx.QueryParams(), &statusParam); err != nil {
		return s.writeError(ctx, errs.NewValueIsInvalidErrorWithCause("status", err))
	}

	status := order.Unknown
	if statusParam != nil {
		parsed, err := order.ParseStatus(*statusParam)
		if err != nil {
			return s.writeError(ctx, err)
		}
		status = parsed
	}

	query, err := queries.NewGetOrdersByStatusQuery(status)
	if err != nil {
		return s.writeError(ctx, err)
	}

	rows, err := s.getOrdersByStatusHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.writeError(ctx, err)
	}

	response := make([]OrderSummary, len(rows))
	for i, row := range rows {
		response[i] = toOrderSummary(row)
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetOrder handles GET /api/v1/orders/{orderId}.
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "orderId")
	if err != nil {
		return s.writeError(ctx, err)
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return s.writeError(ctx, err)
	}

	o, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrder(o))
}

// ApproveOrder handles POST /api/v1/orders/{orderId}/approve.
func (s *Server) ApproveOrder(ctx echo.Context) error {
	orderID, user, err := orderTarget(ctx)
	if err != nil {
		return s.writeError(ctx, err)
	}

	cmd, err := commands.NewApproveOrderCommand(orderID, user)
	if err != nil {
		return s.writeError(ctx, err)
	}

	return s.respond(ctx)(s.approveOrderHandler.Handle(ctx.Request().Context(), cmd))
}

// RejectOrder handles POST /api/v1/orders/{orderId}/reject.
func (s *Server) RejectOrder(ctx echo.Context) error {
	orderID, user, err := orderTarget(ctx)
	if err != nil {
		return s.writeError(ctx, err)
	}

	cmd, err := commands.NewRejectOrderCommand(orderID, user)
	if err != nil {
		return s.writeError(ctx, err)
	}

	return s.respond(ctx)(s.rejectOrderHandler.Handle(ctx.Request().Context(), cmd))
}

// AllocateInventory handles POST /api/v1/orders/{orderId}/products/{productId}/allocate.
func (s *Server) AllocateInventory(ctx echo.Context) error {
	orderID, productID, quantity, user, err := productTarget(ctx)
	if err != nil {
		return s.writeError(ctx, err)
	}

	cmd, err := commands.NewAllocateInventoryCommand(orderID, productID, quantity, user)
	if err != nil {
		return s.writeError(ctx, err)
	}

	return s.respond(ctx)(s.allocateInventoryHandler.Handle(ctx.Request().Context(), cmd))
}

// DispatchProducts handles POST /api/v1/orders/{orderId}/products/{productId}/dispatch.
func (s *Server) DispatchProducts(ctx echo.Context) error {
	orderID, productID, quantity, user, err := productTarget(ctx)
	if err != nil {
		return s.writeError(ctx, err)
	}

	cmd, err := commands.NewDispatchProductsCommand(orderID, productID, quantity, user)
	if err != nil {
		return s.writeError(ctx, err)
	}

	return s.respond(ctx)(s.dispatchProductsHandler.Handle(ctx.Request().Context(), cmd))
}

// DeliverProducts handles POST /api/v1/orders/{orderId}/products/{productId}/deliver.
func (s *Server) DeliverProducts(ctx echo.Context) error {
	orderID, productID, quantity, user, err := productTarget(ctx)
	if err != nil {
		return s.writeError(ctx, err)
	}

	cmd, err := commands.NewDeliverProductsCommand(orderID, productID, quantity, user)
	if err != nil {
		return s.writeError(ctx, err)
	}

	return s.respond(ctx)(s.deliverProductsHandler.Handle(ctx.Request().Context(), cmd))
}

func (s *Server) respond(ctx echo.Context) func(*order.Order, error) error {
	return func(o *order.Order, err error) error {
		if err != nil {
			return s.writeError(ctx, err)
		}
		return ctx.JSON(http.StatusOK, toOrder(o))
	}
}

// writeError maps error kinds onto status codes:
//
//	not found                      404
//	invalid state, version, locked 409
//	validation                     400
//	anything else                  500
func (s *Server) writeError(ctx echo.Context, err error) error {
	status := http.StatusInternalServerError
	message := "Internal server error"

	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		status, message = http.StatusNotFound, err.Error()
	case errors.Is(err, errs.ErrInvalidState):
		status, message = http.StatusConflict, err.Error()
	case errors.Is(err, errs.ErrVersionIsInvalid):
		status, message = http.StatusConflict, "Order was modified concurrently, retry the request"
	case errors.Is(err, ports.ErrOrderIsLocked):
		status, message = http.StatusConflict, err.Error()
	case errs.IsValidation(err):
		status, message = http.StatusBadRequest, err.Error()
	default:
		s.logger.Error("request failed",
			zap.String("method", ctx.Request().Method),
			zap.String("path", ctx.Path()),
			zap.Error(err),
		)
	}

	return ctx.JSON(status, Error{Code: status, Message: message})
}

func actingUser(ctx echo.Context) (string, error) {
	user := ctx.Request().Header.Get(UserHeader)
	if user == "" {
		return "", errs.NewValueIsRequiredError(UserHeader + " header")
	}
	return user, nil
}

func pathUUID(ctx echo.Context, name string) (kernel.UUID, error) {
	var id uuid.UUID
	err := runtime.BindStyledParameterWithOptions("simple", name, ctx.Param(name), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Required: true})
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return kernel.UUIDFromBytes(id[:])
}

func orderTarget(ctx echo.Context) (kernel.UUID, string, error) {
	orderID, err := pathUUID(ctx, "orderId")
	if err != nil {
		return kernel.UUID{}, "", err
	}

	user, err := actingUser(ctx)
	if err != nil {
		return kernel.UUID{}, "", err
	}

	return orderID, user, nil
}

func productTarget(ctx echo.Context) (orderID, productID kernel.UUID, quantity int, user string, err error) {
	if orderID, user, err = orderTarget(ctx); err != nil {
		return
	}
	if productID, err = pathUUID(ctx, "productId"); err != nil {
		return
	}

	var body QuantityRequest
	if err = ctx.Bind(&body); err != nil {
		err = errs.NewValueIsInvalidErrorWithCause("request body", err)
		return
	}
	quantity = body.Quantity
	return
}
