package rx

import (
	"strings"

	"github.com/stoewer/go-strcase"

	"github.com/toyz/artist/internal/poet"
)

var (
	observable    = poet.ClassName("io.reactivex", "Observable")
	disposable    = poet.ClassName("io.reactivex.disposables", "Disposable")
	publishRelay  = poet.ClassName("com.jakewharton.rxrelay2", "PublishRelay")
	behaviorRelay = poet.ClassName("com.jakewharton.rxrelay2", "BehaviorRelay")

	rxView           = poet.ClassName("com.jakewharton.rxbinding2.view", "RxView")
	rxTextView       = poet.ClassName("com.jakewharton.rxbinding2.widget", "RxTextView")
	rxCompoundButton = poet.ClassName("com.jakewharton.rxbinding2.widget", "RxCompoundButton")

	nullable   = poet.AnnotationOf(poet.ClassName("androidx.annotation", "Nullable"))
	deprecated = poet.AnnotationOf(poet.ClassName("java.lang", "Deprecated"))
)

// binding is one RxBinding factory method, e.g. RxView.clicks.
type binding struct {
	class  poet.TypeName
	method string
	doc    string
}

// source is the raw RxBinding stream for the view being generated.
func (b binding) source() poet.CodeBlock {
	return poet.Code("$T.$N(this)", b.class, b.method)
}

func (b binding) isTap() bool {
	return strings.Contains(strings.ToLower(b.method), "click")
}

func isSignal(observed poet.TypeName) bool {
	return observed.Kind() == poet.KindObject
}

// eventType is the element type of the returned stream.
func eventType(cfg Config, observed poet.TypeName) poet.TypeName {
	if isSignal(observed) {
		return cfg.SignalEventType()
	}
	return observed
}

// addObservable adds a method returning the binding's stream directly:
//
//	public Observable<T> layoutChanges() { return RxView.layoutChanges(this); }
func addObservable(t *poet.TypeBuilder, cfg Config, b binding, observed poet.TypeName) {
	event := eventType(cfg, observed)
	stream := b.source()
	if isSignal(observed) {
		stream = cfg.ProcessSignalEvent(stream)
	}
	stream = cfg.ProcessStream(stream, event)

	t.AddMethod(poet.NewMethod(b.method).
		AddDoc("%s", b.doc).
		AddModifiers(poet.Public).
		Returns(observable.WithArgs(event)).
		AddCode(poet.Code("return $L", stream)))
}

// settable describes a binding that replaces a single-listener setter. The
// setter is overridden so listeners set the old way are fed from the relay.
type settable struct {
	binding
	// listener is the listener interface inherited from the widget, e.g.
	// OnClickListener.
	listener poet.TypeName
	setter   string
	observed poet.TypeName
	// callback is the lambda forwarding an event to the legacy listener l.
	// $N is replaced by the generated class name.
	callback string
	// stateful relays replay the latest value to new subscribers.
	stateful bool
	// initial seeds a stateful relay.
	initial poet.CodeBlock
	// nullableListener marks the setter parameter @Nullable.
	nullableListener bool
}

func (s settable) initting() string  { return strcase.LowerCamelCase(s.method + "_is_initting") }
func (s settable) disposable() string { return strcase.LowerCamelCase(s.method + "_disposable") }

func (s settable) relay() poet.TypeName {
	if s.stateful {
		return behaviorRelay
	}
	return publishRelay
}

// addSettable generates a lazily created relay fed by RxBinding, the method
// exposing it and the deprecated setter override. Kotlin gets the plain
// observable; its callers use the stream directly.
func addSettable(t *poet.TypeBuilder, cfg Config, s settable, name string) {
	if t.Language() != poet.Java {
		addObservable(t, cfg, s.binding, s.observed)
		return
	}
	event := eventType(cfg, s.observed)
	relayType := s.relay().WithArgs(event)
	initting, disp := s.initting(), s.disposable()

	t.AddField(poet.NewField(initting, poet.Boolean, poet.Private))
	t.AddField(poet.NewField(s.method, relayType, poet.Private).Annotated(nullable))
	t.AddField(poet.NewField(disp, disposable, poet.Private).Annotated(nullable))

	param := poet.Param("l", s.listener)
	if s.nullableListener {
		param = poet.Param("l", s.listener, nullable)
	}
	t.AddMethod(poet.NewMethod(s.setter).
		AddDoc("@deprecated Use {@link #%s()}", s.method).
		AddModifiers(poet.Public, poet.Final, poet.Override).
		AddAnnotation(deprecated).
		AddParameters(param).
		BeginControlFlow("if ($N)", initting).
		AddStatement("$N = false", initting).
		AddStatement("super.$N(l)", s.setter).
		NextControlFlow("else").
		BeginControlFlow("if ($N != null)", disp).
		AddStatement("$N.dispose()", disp).
		AddStatement("$N = null", disp).
		EndControlFlow().
		BeginControlFlow("if (l != null)").
		AddStatement("$N = $N().subscribe("+s.callback+")", disp, s.method, name).
		EndControlFlow().
		EndControlFlow())

	stream := s.source()
	if isSignal(s.observed) {
		stream = cfg.ProcessSignalEvent(stream)
	}
	if s.isTap() {
		stream = cfg.ProcessTap(stream)
	}

	m := poet.NewMethod(s.method).
		AddDoc("%s", s.doc).
		AddModifiers(poet.Public).
		Returns(observable.WithArgs(event)).
		BeginControlFlow("if ($N == null)", s.method).
		AddStatement("$N = true", initting)
	if s.initial.IsEmpty() {
		m.AddStatement("$N = $T.create()", s.method, s.relay())
	} else {
		m.AddStatement("$N = $L", s.method, s.initial)
	}
	m.AddStatement("$L.subscribe($N)", stream, s.method).
		EndControlFlow().
		AddCode(poet.Code("return $L", cfg.ProcessStream(poet.Code("$N.hide()", s.method), event)))
	t.AddMethod(m)
}
