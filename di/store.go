package di

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"sync"

	"github.com/kbukum/navkit/errors"
	"github.com/kbukum/navkit/logger"
	"github.com/kbukum/navkit/observability"
)

// DuplicatePolicy decides what a second registration for the same type does.
type DuplicatePolicy int

const (
	// Overwrite replaces the previous factory. Test doubles rely on it.
	Overwrite DuplicatePolicy = iota
	// Reject keeps the first factory and reports the second registration.
	Reject
)

// RegistrationMode describes the shape of a registered factory.
type RegistrationMode int

const (
	// ModeFactory registrations may produce a new value on every lookup.
	ModeFactory RegistrationMode = iota
	// ModeInstance registrations return one captured value.
	ModeInstance
	// ModeLazy registrations build their value on first lookup and reuse it.
	ModeLazy
)

func (m RegistrationMode) String() string {
	switch m {
	case ModeInstance:
		return "instance"
	case ModeLazy:
		return "lazy"
	default:
		return "factory"
	}
}

// RegistrationInfo describes a registered type for introspection.
type RegistrationInfo struct {
	Key   string
	Type  reflect.Type
	Mode  RegistrationMode
	Count int // registrations seen for this type, including overwritten ones
}

type registration struct {
	factory Factory
	mode    RegistrationMode
	count   int
	cascade sync.Once // shared modes cascade into their value once
}

// Store is a Registry of factories keyed by type.
//
// Registration normally happens at startup and lookups afterwards. The store
// is safe for concurrent use; factories and Resolve callbacks run outside
// its lock so they may look up further types.
type Store struct {
	mu            sync.RWMutex
	registrations map[reflect.Type]*registration

	policy  DuplicatePolicy
	onFail  FailureHandler
	log     *logger.Logger
	metrics *observability.Metrics
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithLogger sets the store's logger.
func WithLogger(l *logger.Logger) StoreOption {
	return func(s *Store) { s.log = l }
}

// WithDuplicatePolicy sets what a second registration for a type does.
func WithDuplicatePolicy(p DuplicatePolicy) StoreOption {
	return func(s *Store) { s.policy = p }
}

// WithFailureHandler sets the handler for rejected duplicate registrations.
func WithFailureHandler(h FailureHandler) StoreOption {
	return func(s *Store) { s.onFail = h }
}

// WithMetrics records every lookup outcome.
func WithMetrics(m *observability.Metrics) StoreOption {
	return func(s *Store) { s.metrics = m }
}

// NewStore creates an empty store.
func NewStore(opts ...StoreOption) *Store {
	s := &Store{
		registrations: make(map[reflect.Type]*registration),
		onFail:        DefaultFailureHandler,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		s.log = logger.Get("di")
	}
	return s
}

// Register stores f under t.
func (s *Store) Register(t reflect.Type, f Factory) {
	s.register(t, f, ModeFactory)
}

func (s *Store) register(t reflect.Type, f Factory, mode RegistrationMode) {
	s.mu.Lock()
	existing, ok := s.registrations[t]
	if ok && s.policy == Reject {
		existing.count++
		s.mu.Unlock()
		Report(s.onFail, errors.ErrCodeDuplicateRegistration,
			fmt.Sprintf("attempted to register %s twice!", TypeName(t)))
		return
	}
	count := 1
	if ok {
		count = existing.count + 1
	}
	s.registrations[t] = &registration{factory: f, mode: mode, count: count}
	s.mu.Unlock()

	s.log.Debug("type registered", logger.Fields(
		logger.FieldType, TypeName(t),
		"mode", mode.String(),
		"overwrite", ok,
	))
}

// Lookup produces an instance for t. When the instance implements
// Resolvable, its Resolve method has been called with the store exactly
// once before Lookup returns. Instance and lazy registrations share one
// value, so it is resolved on its first lookup only; concurrent lookups
// wait for that cascade to finish. A shared value's Resolve must not look
// up its own type.
func (s *Store) Lookup(t reflect.Type) (any, bool) {
	s.mu.RLock()
	reg, ok := s.registrations[t]
	s.mu.RUnlock()

	name := TypeName(t)
	if !ok || reg.factory == nil {
		s.record(name, observability.StatusMiss)
		return nil, false
	}

	v := reg.factory()
	if isNil(v) {
		s.record(name, observability.StatusMiss)
		return nil, false
	}
	if r, ok := v.(Resolvable); ok {
		if reg.mode == ModeFactory {
			r.Resolve(s)
		} else {
			reg.cascade.Do(func() { r.Resolve(s) })
		}
	}
	s.record(name, observability.StatusOK)
	return v, true
}

func (s *Store) record(typeName, status string) {
	s.metrics.RecordResolution(context.Background(), typeName, status)
	if status == observability.StatusMiss {
		s.log.Debug("nothing registered", logger.Fields(logger.FieldType, typeName))
	}
}

// Has reports whether t has a registration.
func (s *Store) Has(t reflect.Type) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.registrations[t]
	return ok
}

// Registrations returns every registered type, sorted by key.
func (s *Store) Registrations() []RegistrationInfo {
	s.mu.RLock()
	result := make([]RegistrationInfo, 0, len(s.registrations))
	for t, reg := range s.registrations {
		result = append(result, RegistrationInfo{
			Key:   t.String(),
			Type:  t,
			Mode:  reg.mode,
			Count: reg.count,
		})
	}
	s.mu.RUnlock()

	sort.Slice(result, func(i, j int) bool { return result[i].Key < result[j].Key })
	return result
}
