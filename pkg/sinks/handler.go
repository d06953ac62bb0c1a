package sinks

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-audience/pkg/interfaces/logger"
)

// Handler is implemented by transport sinks (console, journal, email, ...).
// Deliver receives the viewer the event was addressed to.
type Handler interface {
	Name() string
	Deliver(ctx context.Context, v *Viewer, evt Event) error
}

// ErrHandlerNotFound is returned when no handler is registered under a name.
var ErrHandlerNotFound = errors.New("sinks: no handler registered under name")

// BaseHandler carries the logger shared by simple handlers. Delivery
// outcomes are logged by the viewer, so handlers only log their own
// transport detail.
type BaseHandler struct {
	logger logger.Logger
}

func NewBaseHandler(l logger.Logger) BaseHandler {
	if l == nil {
		l = &logger.Nop{}
	}
	return BaseHandler{logger: l}
}

// Logger exposes the handler logger for structured diagnostics.
func (b BaseHandler) Logger() logger.Logger {
	if b.logger == nil {
		return &logger.Nop{}
	}
	return b.logger
}

// Registry stores available handlers keyed by normalized name.
type Registry struct {
	mu       sync.RWMutex
	handlers map[string]Handler
}

// NewRegistry builds a registry with the supplied handlers.
func NewRegistry(handlers ...Handler) *Registry {
	reg := &Registry{handlers: make(map[string]Handler)}
	for _, h := range handlers {
		reg.Register(h)
	}
	return reg
}

// Register adds a handler, indexing by its normalized name.
func (r *Registry) Register(h Handler) {
	if r == nil || h == nil {
		return
	}
	key := normalizeKey(h.Name())
	if key == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[key] = h
}

// Get locates a handler by name.
func (r *Registry) Get(name string) (Handler, error) {
	if r == nil {
		return nil, ErrHandlerNotFound
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.handlers[normalizeKey(name)]
	if !ok {
		return nil, fmt.Errorf("sinks: %q: %w", name, ErrHandlerNotFound)
	}
	return h, nil
}

// Describe returns a sorted human-readable summary of the registry entries.
func (r *Registry) Describe() []string {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func normalizeKey(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}
