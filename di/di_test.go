package di

import (
	"context"
	"reflect"
	"strings"
	"testing"
	"time"

	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/kbukum/navkit/errors"
	"github.com/kbukum/navkit/observability"
)

type Widget struct{ name string }

type Greeter interface{ Greet() string }

type english struct{}

func (english) Greet() string { return "hello" }

// recorder collects reported failures instead of panicking.
type recorder struct{ messages []string }

func (r *recorder) handle(msg string) { r.messages = append(r.messages, msg) }

func (r *recorder) only(t *testing.T) string {
	t.Helper()
	if len(r.messages) != 1 {
		t.Fatalf("expected exactly one failure, got %v", r.messages)
	}
	return r.messages[0]
}

// spyRegistry answers lookups from a map and counts them.
type spyRegistry struct {
	values  map[reflect.Type]any
	lookups int
}

func (s *spyRegistry) Lookup(t reflect.Type) (any, bool) {
	s.lookups++
	v, ok := s.values[t]
	return v, ok
}

// resolvableMock records how often and with what it was resolved.
type resolvableMock struct {
	calls    int
	registry Registry
}

func (m *resolvableMock) Resolve(r Registry) {
	m.calls++
	m.registry = r
}

func TestStoreGetReturnsFactoryValue(t *testing.T) {
	s := NewStore()
	w := &Widget{name: "w"}
	Register(s, func() *Widget { return w })

	first, ok := Get[*Widget](s)
	if !ok {
		t.Fatal("expected registered widget")
	}
	second, _ := Get[*Widget](s)
	if first != w || second != w {
		t.Error("expected the captured singleton on both lookups")
	}
}

func TestStoreFreshInstances(t *testing.T) {
	s := NewStore()
	Register(s, func() *Widget { return &Widget{} })

	a, _ := Get[*Widget](s)
	b, _ := Get[*Widget](s)
	if a == b {
		t.Error("expected a fresh instance per lookup")
	}
}

func TestStoreAbsence(t *testing.T) {
	tests := []struct {
		name  string
		setup func(s *Store)
	}{
		{"unregistered", func(s *Store) {}},
		{"nil factory", func(s *Store) { s.Register(TypeKey[*Widget](), nil) }},
		{"factory returns nil", func(s *Store) { s.Register(TypeKey[*Widget](), func() any { return nil }) }},
		{"factory returns typed nil", func(s *Store) { Register(s, func() *Widget { return nil }) }},
		{"value not castable", func(s *Store) { s.Register(TypeKey[*Widget](), func() any { return "not a widget" }) }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := NewStore()
			tc.setup(s)
			if v, ok := Get[*Widget](s); ok || v != nil {
				t.Errorf("expected absence, got %v %v", v, ok)
			}
		})
	}
}

func TestStoreInterfaceKey(t *testing.T) {
	s := NewStore()
	Register[Greeter](s, func() Greeter { return english{} })

	g, ok := Get[Greeter](s)
	if !ok || g.Greet() != "hello" {
		t.Fatalf("expected greeter by interface key, got %v %v", g, ok)
	}
	if _, ok := Get[english](s); ok {
		t.Error("expected the concrete type to be a separate key")
	}
}

func TestStoreOverwrite(t *testing.T) {
	s := NewStore()
	Register(s, func() *Widget { return &Widget{name: "prod"} })
	Register(s, func() *Widget { return &Widget{name: "double"} })

	w, _ := Get[*Widget](s)
	if w.name != "double" {
		t.Errorf("expected later registration to win, got %q", w.name)
	}

	infos := s.Registrations()
	if len(infos) != 1 || infos[0].Count != 2 {
		t.Errorf("expected one key registered twice, got %+v", infos)
	}
}

func TestStoreRejectDuplicates(t *testing.T) {
	rec := &recorder{}
	s := NewStore(WithDuplicatePolicy(Reject), WithFailureHandler(rec.handle))
	Register(s, func() *Widget { return &Widget{name: "first"} })
	Register(s, func() *Widget { return &Widget{name: "second"} })

	if msg := rec.only(t); msg != "attempted to register Widget twice!" {
		t.Errorf("unexpected message %q", msg)
	}
	w, _ := Get[*Widget](s)
	if w.name != "first" {
		t.Errorf("expected first registration to be kept, got %q", w.name)
	}
}

func TestStoreCascadeOnce(t *testing.T) {
	s := NewStore()
	Register(s, func() *resolvableMock { return &resolvableMock{} })

	m, ok := Get[*resolvableMock](s)
	if !ok {
		t.Fatal("expected mock")
	}
	if m.calls != 1 {
		t.Errorf("expected Resolve exactly once, got %d", m.calls)
	}
	if m.registry != Registry(s) {
		t.Error("expected Resolve to receive the store")
	}
}

func TestStoreSharedModesCascadeOnFirstLookupOnly(t *testing.T) {
	t.Run("instance", func(t *testing.T) {
		s := NewStore()
		shared := &resolvableMock{}
		Instance(s, shared)
		Get[*resolvableMock](s)
		Get[*resolvableMock](s)
		if shared.calls != 1 {
			t.Errorf("expected one cascade, got %d", shared.calls)
		}
	})

	t.Run("lazy", func(t *testing.T) {
		s := NewStore()
		built := 0
		Lazy(s, func() *resolvableMock {
			built++
			return &resolvableMock{}
		})
		a, _ := Get[*resolvableMock](s)
		b, _ := Get[*resolvableMock](s)
		if built != 1 || a != b {
			t.Errorf("expected one build shared by both lookups, built %d", built)
		}
		if a.calls != 1 {
			t.Errorf("expected one cascade, got %d", a.calls)
		}
	})
}

// gatedResolvable blocks in Resolve until release is closed.
type gatedResolvable struct {
	started chan struct{}
	release chan struct{}
	done    bool
}

func (g *gatedResolvable) Resolve(Registry) {
	close(g.started)
	<-g.release
	g.done = true
}

func TestStoreSharedCascadeCompletesBeforeConcurrentLookup(t *testing.T) {
	s := NewStore()
	shared := &gatedResolvable{started: make(chan struct{}), release: make(chan struct{})}
	Instance(s, shared)

	go Get[*gatedResolvable](s)
	<-shared.started

	results := make(chan bool, 1)
	go func() {
		v, _ := Get[*gatedResolvable](s)
		results <- v.done
	}()

	select {
	case <-results:
		t.Fatal("expected the second lookup to wait for the first cascade")
	case <-time.After(20 * time.Millisecond):
	}
	close(shared.release)
	if done := <-results; !done {
		t.Error("expected the second lookup to see a resolved value")
	}
}

type leaf struct {
	resolved bool
}

func (l *leaf) Resolve(Registry) { l.resolved = true }

type branch struct {
	Leaf Dependency[*leaf]
}

func (b *branch) Resolve(r Registry) { ResolveFields(b, r) }

type root struct {
	branch Dependency[*branch]
}

func TestNestedCascadeIsDepthFirst(t *testing.T) {
	s := NewStore()
	Register(s, func() *leaf { return &leaf{} })
	Register(s, func() *branch { return &branch{} })

	r := &root{}
	r.branch.Resolve(s)

	b, ok := r.branch.Resolved()
	if !ok {
		t.Fatal("expected branch to be resolved")
	}
	l, ok := b.Leaf.Resolved()
	if !ok {
		t.Fatal("expected the nested leaf handle to be resolved before the outer Resolve returned")
	}
	if !l.resolved {
		t.Error("expected the leaf's own Resolve to have run")
	}
}

func TestDependencyResolve(t *testing.T) {
	rec := &recorder{}
	w := &Widget{name: "w"}
	spy := &spyRegistry{values: map[reflect.Type]any{TypeKey[*Widget](): w}}

	d := NewDependency[*Widget](WithHandler(rec.handle))
	if d.State() != Unresolved {
		t.Fatalf("expected unresolved, got %s", d.State())
	}
	d.Resolve(spy)

	if d.State() != Resolved || d.Value() != w {
		t.Errorf("expected resolved widget, got %s %v", d.State(), d.Value())
	}
	if len(rec.messages) != 0 {
		t.Errorf("expected no failures, got %v", rec.messages)
	}
	if spy.lookups != 1 {
		t.Errorf("expected one lookup, got %d", spy.lookups)
	}
}

func TestDependencyDoubleResolution(t *testing.T) {
	rec := &recorder{}
	first := &Widget{name: "first"}
	spy := &spyRegistry{values: map[reflect.Type]any{TypeKey[*Widget](): first}}

	d := NewDependency[*Widget](WithHandler(rec.handle))
	d.Resolve(spy)
	spy.values[TypeKey[*Widget]()] = &Widget{name: "second"}
	d.Resolve(spy)

	if msg := rec.only(t); msg != "attempted to resolve Dependency<Widget> twice!" {
		t.Errorf("unexpected message %q", msg)
	}
	if d.Value() != first {
		t.Error("expected the first value to be kept")
	}
	if spy.lookups != 1 {
		t.Errorf("expected the second Resolve not to query the registry, got %d lookups", spy.lookups)
	}
}

func TestDependencyNothingRegistered(t *testing.T) {
	rec := &recorder{}
	d := NewDependency[Widget](WithHandler(rec.handle))
	d.Resolve(NewStore())

	want := "attempted to resolve Dependency<Widget>, but there's nothing registered for this type."
	if msg := rec.only(t); msg != want {
		t.Errorf("got %q, want %q", msg, want)
	}
	if d.State() != Unresolved {
		t.Error("expected handle to stay unresolved")
	}
}

func TestDependencyRetryAfterRegistration(t *testing.T) {
	rec := &recorder{}
	s := NewStore()
	d := NewDependency[*Widget](WithHandler(rec.handle))

	d.Resolve(s)
	Register(s, func() *Widget { return &Widget{name: "late"} })
	d.Resolve(s)

	if len(rec.messages) != 1 {
		t.Errorf("expected only the first attempt to fail, got %v", rec.messages)
	}
	if v, ok := d.Resolved(); !ok || v.name != "late" {
		t.Errorf("expected retry to succeed, got %v %v", v, ok)
	}
}

func TestDependencyUnresolvedRead(t *testing.T) {
	rec := &recorder{}
	d := NewDependency[*Widget](WithHandler(rec.handle))

	if v := d.Value(); v != nil {
		t.Errorf("expected zero value, got %v", v)
	}
	if msg := rec.only(t); msg != "attempted to read Dependency<Widget> before it was resolved" {
		t.Errorf("unexpected message %q", msg)
	}
	if _, ok := d.Resolved(); ok {
		t.Error("expected Resolved to report false silently")
	}
	if len(rec.messages) != 1 {
		t.Error("expected Resolved not to report")
	}
}

func TestDefaultFailureHandlerPanics(t *testing.T) {
	var d Dependency[*Widget]
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected zero-value handle to panic on failure")
		}
		if !strings.Contains(r.(string), "Dependency<Widget>") {
			t.Errorf("unexpected panic value %v", r)
		}
	}()
	d.Resolve(NewStore())
}

func TestSetFailureHandler(t *testing.T) {
	rec := &recorder{}
	var d Dependency[*Widget]
	d.SetFailureHandler(rec.handle)
	d.Value()
	rec.only(t)
}

type screen struct {
	Widget  Dependency[*Widget]
	greeter *Dependency[Greeter]
	title   string
	other   *resolvableMock
}

func TestResolveFields(t *testing.T) {
	s := NewStore()
	w := &Widget{name: "w"}
	Instance(s, w)
	Register[Greeter](s, func() Greeter { return english{} })

	sc := &screen{other: &resolvableMock{}}
	ResolveFields(sc, s)

	if sc.Widget.Value() != w {
		t.Error("expected exported value field to be resolved")
	}
	if sc.greeter == nil || sc.greeter.Value().Greet() != "hello" {
		t.Error("expected nil unexported pointer field to be allocated and resolved")
	}
	if sc.other.calls != 0 {
		t.Error("expected non-dependency fields to be left alone")
	}
}

func TestResolveFieldsUsesExistingHandle(t *testing.T) {
	rec := &recorder{}
	sc := &screen{greeter: NewDependency[Greeter](WithHandler(rec.handle))}
	sc.Widget.SetFailureHandler(rec.handle)

	ResolveFields(sc, NewStore())

	if len(rec.messages) != 2 {
		t.Fatalf("expected both fields to report, got %v", rec.messages)
	}
	if !strings.Contains(rec.messages[0], "Dependency<Widget>") || !strings.Contains(rec.messages[1], "Dependency<Greeter>") {
		t.Errorf("expected declaration order, got %v", rec.messages)
	}
}

func TestResolveFieldsRejectsNonStructPointer(t *testing.T) {
	for _, target := range []any{screen{}, (*screen)(nil), new(int)} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("expected panic for %T", target)
				}
			}()
			ResolveFields(target, NewStore())
		}()
	}
}

func TestRequireAndMustGet(t *testing.T) {
	s := NewStore()
	_, err := Require[*Widget](s)
	if !errors.HasCode(err, errors.ErrCodeUnregisteredType) {
		t.Fatalf("expected UNREGISTERED_TYPE, got %v", err)
	}

	func() {
		defer func() {
			if recover() == nil {
				t.Error("expected MustGet to panic on a miss")
			}
		}()
		MustGet[*Widget](s)
	}()

	Instance(s, &Widget{name: "w"})
	if MustGet[*Widget](s).name != "w" {
		t.Error("expected MustGet to return the instance")
	}
}

func TestRegistrations(t *testing.T) {
	s := NewStore()
	Instance(s, &Widget{})
	Lazy[Greeter](s, func() Greeter { return english{} })

	infos := s.Registrations()
	if len(infos) != 2 {
		t.Fatalf("expected 2 registrations, got %d", len(infos))
	}
	modes := map[string]RegistrationMode{}
	for _, info := range infos {
		modes[TypeName(info.Type)] = info.Mode
	}
	if modes["Widget"] != ModeInstance || modes["Greeter"] != ModeLazy {
		t.Errorf("unexpected modes %v", modes)
	}
	if !s.Has(TypeKey[*Widget]()) || s.Has(TypeKey[Widget]()) {
		t.Error("unexpected Has result")
	}
}

func TestTypeName(t *testing.T) {
	tests := []struct {
		t    reflect.Type
		want string
	}{
		{TypeKey[Widget](), "Widget"},
		{TypeKey[*Widget](), "Widget"},
		{TypeKey[**Widget](), "Widget"},
		{TypeKey[Greeter](), "Greeter"},
		{TypeKey[[]int](), "[]int"},
		{nil, "<nil>"},
	}
	for _, tc := range tests {
		t.Run(tc.want, func(t *testing.T) {
			if got := TypeName(tc.t); got != tc.want {
				t.Errorf("TypeName = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestStoreMetrics(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	defer mp.Shutdown(context.Background())
	metrics, err := observability.NewMetrics(mp.Meter("test"))
	if err != nil {
		t.Fatal(err)
	}

	s := NewStore(WithMetrics(metrics))
	Instance(s, &Widget{})
	Get[*Widget](s)
	Get[Greeter](s)

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatal(err)
	}
	got := map[string]int64{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != "resolution.total" {
				continue
			}
			for _, dp := range m.Data.(metricdata.Sum[int64]).DataPoints {
				typ, _ := dp.Attributes.Value(attribute.Key("type"))
				status, _ := dp.Attributes.Value(attribute.Key(observability.AttrStatus))
				got[typ.AsString()+"/"+status.AsString()] += dp.Value
			}
		}
	}
	if got["Widget/ok"] != 1 || got["Greeter/miss"] != 1 {
		t.Errorf("unexpected resolution counts %v", got)
	}
}
