package observability

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	ordersdomain "github.com/agrodata/ordenes-api/internal/domains/orders/domain"
	ordersports "github.com/agrodata/ordenes-api/internal/domains/orders/ports"
	"github.com/agrodata/ordenes-api/internal/shared/pagination"
)

const tracerName = "github.com/agrodata/ordenes-api/internal/domains/orders/adapters/observability/service"

// Service decorates the order ledger with tracing, logging, and metrics.
type Service struct {
	inner   ordersports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wraps the core order service.
func New(inner ordersports.Service, opts ...Option) ordersports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return s
}

func (s *Service) CreateOrder(ctx context.Context, input ordersports.CreateOrderInput) (*ordersdomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.CreateOrder",
		trace.WithAttributes(
			attribute.String("order.customer_id", input.CustomerID.String()),
			attribute.Int("order.item_count", len(input.Items)),
		))
	defer span.End()

	s.logInfo(ctx, "creating order",
		slog.String("order.customer_id", input.CustomerID.String()),
		slog.Int("order.item_count", len(input.Items)))
	result, err := s.inner.CreateOrder(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to create order",
			slog.String("order.customer_id", input.CustomerID.String()))
	}
	s.metrics.recordCreated(ctx)
	s.logInfo(ctx, "order created",
		slog.String("order.id", result.ID.String()),
		slog.String("order.total", result.TotalAmount.String()))
	return result, nil
}

func (s *Service) GetOrder(ctx context.Context, id uuid.UUID) (*ordersdomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.GetOrder",
		trace.WithAttributes(attribute.String("order.id", id.String())))
	defer span.End()

	result, err := s.inner.GetOrder(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load order", slog.String("order.id", id.String()))
	}
	return result, nil
}

func (s *Service) ListOrders(ctx context.Context, input ordersports.ListOrdersInput) (*pagination.Result[*ordersdomain.Order], error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.ListOrders",
		trace.WithAttributes(
			attribute.Int("page.number", input.Page.Number),
			attribute.Int("page.size", input.Page.Size),
		))
	defer span.End()

	result, err := s.inner.ListOrders(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list orders")
	}
	span.SetAttributes(attribute.Int64("list.total_items", result.TotalItems))
	return result, nil
}

func (s *Service) UpdateOrderStatus(ctx context.Context, id uuid.UUID, newStatus string) (*ordersdomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.UpdateOrderStatus",
		trace.WithAttributes(
			attribute.String("order.id", id.String()),
			attribute.String("order.next_status", newStatus),
		))
	defer span.End()

	s.logInfo(ctx, "updating order status",
		slog.String("order.id", id.String()), slog.String("order.next_status", newStatus))
	result, err := s.inner.UpdateOrderStatus(ctx, id, newStatus)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to update order status",
			slog.String("order.id", id.String()), slog.String("order.next_status", newStatus))
	}
	s.metrics.recordTransition(ctx, result.Status)
	s.logInfo(ctx, "order status updated",
		slog.String("order.id", result.ID.String()), slog.String("order.status", string(result.Status)))
	return result, nil
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) logError(ctx context.Context, msg string, err error, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	s.logError(ctx, msg, err, attrs...)
	return err
}

type serviceMetrics struct {
	ordersCreated     metric.Int64Counter
	statusTransitions metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	ordersCreated, _ := m.Int64Counter("orders.service.orders_created",
		metric.WithDescription("Number of orders created"))
	statusTransitions, _ := m.Int64Counter("orders.service.status_transitions",
		metric.WithDescription("Number of order status transitions"))
	return serviceMetrics{
		ordersCreated:     ordersCreated,
		statusTransitions: statusTransitions,
	}
}

func (m serviceMetrics) recordCreated(ctx context.Context) {
	if m.ordersCreated != nil {
		m.ordersCreated.Add(ctx, 1)
	}
}

func (m serviceMetrics) recordTransition(ctx context.Context, status ordersdomain.Status) {
	if m.statusTransitions != nil {
		m.statusTransitions.Add(ctx, 1,
			metric.WithAttributes(attribute.String("order.status", string(status))))
	}
}
