// internal/canvas/service.go
package canvas

import (
	"context"
	"errors"
	"sort"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	apperrors "business-canvas/internal/common/errors"
	"business-canvas/internal/common/logger"
	"business-canvas/internal/common/metrics"
	"business-canvas/internal/inference"
	"business-canvas/internal/models"
	"business-canvas/internal/store"
)

const tracerName = "business-canvas/canvas"

// Service owns the canvas lifecycle: generation through the inference engine
// and CRUD over one store instance.
type Service struct {
	config *Config
	engine *inference.Engine
	store  store.Store
	logger logger.Logger
	tracer trace.Tracer
}

func NewService(config *Config, engine *inference.Engine, st store.Store, log logger.Logger, tracer trace.Tracer) *Service {
	if config == nil {
		config = LoadConfig()
	}
	if engine == nil {
		engine = inference.NewEngine(&inference.Config{Now: config.Now, NewID: config.NewID})
	}
	if tracer == nil {
		tracer = otel.Tracer(tracerName)
	}
	return &Service{
		config: config,
		engine: engine,
		store:  st,
		logger: logger.ForComponent(log, "canvas-service"),
		tracer: tracer,
	}
}

func (s *Service) Generate(ctx context.Context, req GenerateRequest) (*models.BusinessCanvas, error) {
	ctx, span := s.tracer.Start(ctx, "canvas.generate")
	defer span.End()
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	gen := s.engine.Build(req.Prompt)
	c := gen.Canvas
	if req.Name != "" {
		c.Name = req.Name
	}

	if err := s.store.Create(ctx, c); err != nil {
		return nil, s.fail(span, "generate", s.storeError(c.ID, err))
	}

	inferred := len(gen.Matched)
	for _, field := range gen.Matched {
		metrics.CanvasBlocksInferred.WithLabelValues(field).Inc()
	}

	span.SetAttributes(
		attribute.String("canvas.id", c.ID),
		attribute.Int("canvas.inferred_blocks", inferred),
	)
	s.succeed(ctx, "generate")
	s.logger.Info("canvas generated", map[string]interface{}{
		"canvasId":       c.ID,
		"inferredBlocks": inferred,
		"promptLength":   len(req.Prompt),
	})
	return c, nil
}

// List returns every stored canvas ordered by creation time, then id.
func (s *Service) List(ctx context.Context) ([]*models.BusinessCanvas, error) {
	ctx, span := s.tracer.Start(ctx, "canvas.list")
	defer span.End()
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	canvases, err := s.store.List(ctx)
	if err != nil {
		return nil, s.fail(span, "list", s.storeError("", err))
	}

	sort.Slice(canvases, func(i, j int) bool {
		a, b := canvases[i], canvases[j]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID < b.ID
	})

	span.SetAttributes(attribute.Int("canvas.count", len(canvases)))
	metrics.CanvasOperations.WithLabelValues("list", metrics.StatusSuccess).Inc()
	return canvases, nil
}

func (s *Service) Get(ctx context.Context, id string) (*models.BusinessCanvas, error) {
	ctx, span := s.tracer.Start(ctx, "canvas.get", trace.WithAttributes(attribute.String("canvas.id", id)))
	defer span.End()
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	c, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, s.fail(span, "get", s.storeError(id, err))
	}
	metrics.CanvasOperations.WithLabelValues("get", metrics.StatusSuccess).Inc()
	return c, nil
}

// Update merges body into the canvas and refreshes updated_at. An unknown id
// is reported before any problem with the body, including a body that is not
// a JSON object.
func (s *Service) Update(ctx context.Context, id string, body interface{}) (*models.BusinessCanvas, error) {
	ctx, span := s.tracer.Start(ctx, "canvas.update", trace.WithAttributes(attribute.String("canvas.id", id)))
	defer span.End()
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var invalid error
	result, err := updateSchema.Validate(body)
	switch {
	case err != nil:
		invalid = apperrors.NewValidationFailedError(err.Error())
	case !result.Valid:
		span.SetAttributes(attribute.StringSlice("canvas.rejected_fields", rejectedFields(result)))
		invalid = apperrors.NewValidationFailedError(result.Error())
	}
	fields, _ := body.(map[string]interface{})
	patch := NewPatch(fields)
	if invalid == nil && patch.Empty() {
		s.logger.Debug("update carries no allow-listed fields", map[string]interface{}{"canvasId": id})
	}

	updated, err := s.store.Update(ctx, id, func(c *models.BusinessCanvas) error {
		if invalid != nil {
			return invalid
		}
		patch.Apply(c)
		c.UpdatedAt = s.config.Now().UTC()
		return nil
	})
	if err != nil {
		return nil, s.fail(span, "update", s.storeError(id, err))
	}

	metrics.CanvasOperations.WithLabelValues("update", metrics.StatusSuccess).Inc()
	s.logger.Info("canvas updated", map[string]interface{}{
		"canvasId":      id,
		"renamed":       patch.Name != nil,
		"blocksPatched": len(patch.Blocks),
	})
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	ctx, span := s.tracer.Start(ctx, "canvas.delete", trace.WithAttributes(attribute.String("canvas.id", id)))
	defer span.End()
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if err := s.store.Delete(ctx, id); err != nil {
		return s.fail(span, "delete", s.storeError(id, err))
	}
	s.succeed(ctx, "delete")
	s.logger.Info("canvas deleted", map[string]interface{}{"canvasId": id})
	return nil
}

// Duplicate stores a deep copy under a new id with " (Copy)" appended to the
// name and both timestamps reset.
func (s *Service) Duplicate(ctx context.Context, id string) (*models.BusinessCanvas, error) {
	ctx, span := s.tracer.Start(ctx, "canvas.duplicate", trace.WithAttributes(attribute.String("canvas.id", id)))
	defer span.End()
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	original, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, s.fail(span, "duplicate", s.storeError(id, err))
	}

	dup := original.Clone()
	dup.ID = s.config.NewID()
	dup.Name = original.Name + copySuffix
	now := s.config.Now().UTC()
	dup.CreatedAt = now
	dup.UpdatedAt = now

	if err := s.store.Create(ctx, dup); err != nil {
		return nil, s.fail(span, "duplicate", s.storeError(dup.ID, err))
	}

	span.SetAttributes(attribute.String("canvas.duplicate_id", dup.ID))
	s.succeed(ctx, "duplicate")
	s.logger.Info("canvas duplicated", map[string]interface{}{
		"canvasId":    id,
		"duplicateId": dup.ID,
	})
	return dup, nil
}

// Ready reports whether the store answers.
func (s *Service) Ready(ctx context.Context) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	if err := s.store.Ping(ctx); err != nil {
		return apperrors.NewStoreUnavailableError(err)
	}
	return nil
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.config.Timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.config.Timeout)
}

// succeed counts a mutating operation and refreshes the store size gauge.
func (s *Service) succeed(ctx context.Context, operation string) {
	metrics.CanvasOperations.WithLabelValues(operation, metrics.StatusSuccess).Inc()
	if n, err := s.store.Len(ctx); err == nil {
		metrics.CanvasStoreSize.Set(float64(n))
	}
}

func (s *Service) fail(span trace.Span, operation string, err *apperrors.StandardError) error {
	status := metrics.StatusError
	switch {
	case apperrors.IsNotFound(err):
		status = metrics.StatusNotFound
	case err.Code == apperrors.ErrCodeValidationFailed, err.Code == apperrors.ErrCodeInvalidRequest:
		status = metrics.StatusInvalid
	}
	metrics.CanvasOperations.WithLabelValues(operation, status).Inc()

	span.RecordError(err)
	span.SetStatus(codes.Error, string(err.Code))
	return err
}

// storeError maps store sentinels onto API errors. Errors that are already
// API errors, such as a rejected patch, pass through.
func (s *Service) storeError(id string, err error) *apperrors.StandardError {
	var stdErr *apperrors.StandardError
	switch {
	case errors.As(err, &stdErr):
		return stdErr
	case errors.Is(err, store.ErrNotFound):
		return apperrors.NewCanvasNotFoundError(id)
	default:
		return apperrors.NewStoreUnavailableError(err)
	}
}
