package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/Joshcode41/todo-app/internal/cache"
	dom "github.com/Joshcode41/todo-app/internal/domain"
	"github.com/Joshcode41/todo-app/internal/repo"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/singleflight"
)

var (
	ErrNotFound    = errors.New("not found")
	ErrInvalidTodo = errors.New("title and description are required")
)

var tracer = otel.Tracer("github.com/Joshcode41/todo-app/internal/service")

// listFlightTimeout bounds a shared list read once no caller can cancel it.
const listFlightTimeout = 10 * time.Second

type TodoService struct {
	repo   repo.TodoRepo
	cache  *cache.TodoCache
	sf     singleflight.Group
	logger *log.Logger

	now   func() time.Time
	newID func() string
}

// NewTodoService creates a TodoService. If c is nil, caching is disabled.
// A nil logger discards cache warnings.
func NewTodoService(r repo.TodoRepo, c *cache.TodoCache, logger *log.Logger) *TodoService {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &TodoService{
		repo:   r,
		cache:  c,
		logger: logger,
		now:   func() time.Time { return time.Now().UTC() },
		newID: func() string { return uuid.NewString() },
	}
}

func (s *TodoService) Create(ctx context.Context, title, desc string) (t dom.Todo, err error) {
	ctx, span := tracer.Start(ctx, "TodoService.Create")
	defer func() { endSpan(span, err) }()

	title, desc, err = normalize(title, desc)
	if err != nil {
		return dom.Todo{}, err
	}

	t, err = s.repo.Create(ctx, dom.Todo{
		ID:          s.newID(),
		Title:       title,
		Description: desc,
		CreatedAt:   s.now(),
	})
	if err != nil {
		return dom.Todo{}, err
	}
	span.SetAttributes(attribute.String("todo.id", t.ID))
	s.invalidateCache(ctx)
	return t, nil
}

// List returns the whole collection ordered by creation time. Concurrent
// cache misses are collapsed into one repository read. The shared read is
// detached from the callers' cancellation; each caller stops waiting when its
// own context is done.
func (s *TodoService) List(ctx context.Context) (list []dom.Todo, err error) {
	ctx, span := tracer.Start(ctx, "TodoService.List")
	defer func() { endSpan(span, err) }()

	if s.cache == nil {
		return s.repo.List(ctx)
	}
	ch := s.sf.DoChan("list", func() (interface{}, error) {
		fctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), listFlightTimeout)
		defer cancel()
		return s.loadList(fctx)
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		span.SetAttributes(attribute.Bool("singleflight.shared", res.Shared))
		return res.Val.([]dom.Todo), nil
	}
}

// loadList serves the list from cache or fills the cache from the repo. The
// fill is stored under the generation read before the repo query, so a write
// racing the query never leaves its stale snapshot visible.
func (s *TodoService) loadList(ctx context.Context) (list []dom.Todo, err error) {
	ctx, span := tracer.Start(ctx, "TodoService.loadList")
	defer func() { endSpan(span, err) }()

	cached, gen, cerr := s.cache.GetList(ctx)
	if cerr == nil && cached != nil {
		span.SetAttributes(attribute.Bool("cache.hit", true))
		return cached, nil
	}
	if cerr != nil {
		s.logger.Warn("todo cache read failed", "err", cerr)
		span.RecordError(cerr)
	}

	list, err = s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if cerr == nil {
		if err := s.cache.SetList(ctx, gen, list); err != nil {
			s.logger.Warn("todo cache fill failed", "gen", gen, "err", err)
			span.RecordError(err)
		}
	}
	return list, nil
}

func (s *TodoService) GetByID(ctx context.Context, id string) (t dom.Todo, err error) {
	ctx, span := tracer.Start(ctx, "TodoService.GetByID", trace.WithAttributes(attribute.String("todo.id", id)))
	defer func() { endSpan(span, err) }()

	id = strings.TrimSpace(id)
	if id == "" {
		return dom.Todo{}, ErrNotFound
	}
	t, err = s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return dom.Todo{}, ErrNotFound
		}
		return dom.Todo{}, err
	}
	return t, nil
}

// Update replaces title and description of an existing todo; the id never changes.
func (s *TodoService) Update(ctx context.Context, id, title, desc string) (t dom.Todo, err error) {
	ctx, span := tracer.Start(ctx, "TodoService.Update", trace.WithAttributes(attribute.String("todo.id", id)))
	defer func() { endSpan(span, err) }()

	id = strings.TrimSpace(id)
	if id == "" {
		return dom.Todo{}, ErrNotFound
	}
	title, desc, err = normalize(title, desc)
	if err != nil {
		return dom.Todo{}, err
	}
	t, err = s.repo.Update(ctx, id, dom.Todo{
		Title:       title,
		Description: desc,
		UpdatedAt:   s.now(),
	})
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return dom.Todo{}, ErrNotFound
		}
		return dom.Todo{}, err
	}
	s.invalidateCache(ctx)
	return t, nil
}

// Delete removes the todo. Deleting an unknown id succeeds.
func (s *TodoService) Delete(ctx context.Context, id string) (err error) {
	ctx, span := tracer.Start(ctx, "TodoService.Delete", trace.WithAttributes(attribute.String("todo.id", id)))
	defer func() { endSpan(span, err) }()

	if err = s.repo.Delete(ctx, strings.TrimSpace(id)); err != nil {
		return err
	}
	s.invalidateCache(ctx)
	return nil
}

// invalidateCache runs after a committed write, so it ignores the caller's
// cancellation. A failure leaves the previous list cached until its TTL.
func (s *TodoService) invalidateCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(context.WithoutCancel(ctx)); err != nil {
		s.logger.Error("todo cache invalidation failed", "err", err)
		trace.SpanFromContext(ctx).RecordError(err)
	}
}

func normalize(title, desc string) (string, string, error) {
	title = strings.TrimSpace(title)
	desc = strings.TrimSpace(desc)
	if title == "" || desc == "" {
		return "", "", ErrInvalidTodo
	}
	return title, desc, nil
}

func endSpan(span trace.Span, err error) {
	if err != nil && !errors.Is(err, ErrNotFound) && !errors.Is(err, ErrInvalidTodo) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
