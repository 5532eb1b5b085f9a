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

	catalogdomain "github.com/agrodata/ordenes-api/internal/domains/catalog/domain"
	catalogports "github.com/agrodata/ordenes-api/internal/domains/catalog/ports"
	"github.com/agrodata/ordenes-api/internal/shared/pagination"
)

const tracerName = "github.com/agrodata/ordenes-api/internal/domains/catalog/adapters/observability/service"

// Service decorates the catalog service with tracing, logging, and metrics.
type Service struct {
	inner   catalogports.Service
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

// New wraps the core catalog service.
func New(inner catalogports.Service, opts ...Option) catalogports.Service {
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

func (s *Service) CreateProduct(ctx context.Context, input catalogports.CreateProductInput) (*catalogdomain.Product, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.CreateProduct",
		trace.WithAttributes(attribute.String("product.sku", input.SKU)))
	defer span.End()

	s.logInfo(ctx, "creating product", slog.String("product.sku", input.SKU))
	result, err := s.inner.CreateProduct(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to create product", slog.String("product.sku", input.SKU))
	}
	s.metrics.recordCreated(ctx)
	s.logInfo(ctx, "product created",
		slog.String("product.id", result.ID.String()), slog.String("product.sku", result.SKU))
	return result, nil
}

func (s *Service) GetProduct(ctx context.Context, id uuid.UUID) (*catalogdomain.Product, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.GetProduct",
		trace.WithAttributes(attribute.String("product.id", id.String())))
	defer span.End()

	result, err := s.inner.GetProduct(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load product", slog.String("product.id", id.String()))
	}
	return result, nil
}

func (s *Service) SearchProducts(ctx context.Context, input catalogports.SearchProductsInput) (*pagination.Result[*catalogdomain.Product], error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.SearchProducts",
		trace.WithAttributes(
			attribute.Int("page.number", input.Page.Number),
			attribute.Int("page.size", input.Page.Size),
		))
	defer span.End()

	result, err := s.inner.SearchProducts(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to search products")
	}
	span.SetAttributes(attribute.Int64("search.total_items", result.TotalItems))
	return result, nil
}

func (s *Service) UpdateProduct(ctx context.Context, input catalogports.UpdateProductInput) (*catalogdomain.Product, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.UpdateProduct",
		trace.WithAttributes(attribute.String("product.id", input.ID.String())))
	defer span.End()

	s.logInfo(ctx, "updating product", slog.String("product.id", input.ID.String()))
	result, err := s.inner.UpdateProduct(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to update product", slog.String("product.id", input.ID.String()))
	}
	s.logInfo(ctx, "product updated", slog.String("product.id", result.ID.String()))
	return result, nil
}

func (s *Service) ProductsByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*catalogdomain.Product, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.ProductsByIDs",
		trace.WithAttributes(attribute.Int("product.batch_size", len(ids))))
	defer span.End()

	result, err := s.inner.ProductsByIDs(ctx, ids)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to resolve products")
	}
	return result, nil
}

func (s *Service) ReserveStock(ctx context.Context, id uuid.UUID, quantity int) error {
	ctx, span := s.tracer.Start(ctx, "CatalogService.ReserveStock",
		trace.WithAttributes(
			attribute.String("product.id", id.String()),
			attribute.Int("reservation.quantity", quantity),
		))
	defer span.End()

	if err := s.inner.ReserveStock(ctx, id, quantity); err != nil {
		s.metrics.recordReservationRejected(ctx)
		return s.handleError(ctx, span, err, "failed to reserve stock", slog.String("product.id", id.String()))
	}
	s.metrics.recordReserved(ctx, quantity)
	return nil
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
	productsCreated      metric.Int64Counter
	unitsReserved        metric.Int64Counter
	reservationsRejected metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	productsCreated, _ := m.Int64Counter("catalog.service.products_created",
		metric.WithDescription("Number of products created"))
	unitsReserved, _ := m.Int64Counter("catalog.service.units_reserved",
		metric.WithDescription("Stock units reserved for orders"))
	reservationsRejected, _ := m.Int64Counter("catalog.service.reservations_rejected",
		metric.WithDescription("Stock reservations rejected"))
	return serviceMetrics{
		productsCreated:      productsCreated,
		unitsReserved:        unitsReserved,
		reservationsRejected: reservationsRejected,
	}
}

func (m serviceMetrics) recordCreated(ctx context.Context) {
	if m.productsCreated != nil {
		m.productsCreated.Add(ctx, 1)
	}
}

func (m serviceMetrics) recordReserved(ctx context.Context, quantity int) {
	if m.unitsReserved != nil {
		m.unitsReserved.Add(ctx, int64(quantity))
	}
}

func (m serviceMetrics) recordReservationRejected(ctx context.Context) {
	if m.reservationsRejected != nil {
		m.reservationsRejected.Add(ctx, 1)
	}
}
