package rx

import (
	"strings"

	"github.com/toyz/artist/internal/models"
	"github.com/toyz/artist/internal/poet"
)

const ScrollableID models.TraitID = "rx.scrollable"

var (
	rxNestedScrollView      = poet.ClassName("com.jakewharton.rxbinding2.support.v4.widget", "RxNestedScrollView")
	viewScrollChangeEvent   = poet.ClassName("com.jakewharton.rxbinding2.view", "ViewScrollChangeEvent")
	rxRecyclerView          = poet.ClassName("com.jakewharton.rxbinding2.support.v7.widget", "RxRecyclerView")
	recyclerViewScrollEvent = poet.ClassName("com.jakewharton.rxbinding2.support.v7.widget", "RecyclerViewScrollEvent")
)

// Scrollable adds scroll streams to scroll views and recycler views. Other
// widgets are left untouched.
type Scrollable struct {
	Config Config
}

func NewScrollable(cfg Config) *Scrollable {
	return &Scrollable{Config: orDefault(cfg)}
}

func (s *Scrollable) ID() models.TraitID { return ScrollableID }

func (s *Scrollable) GenerateFor(t *poet.TypeBuilder, _ *poet.MethodBuilder, _ poet.TypeName, name string) error {
	cfg := orDefault(s.Config)
	if strings.Contains(name, "ScrollView") {
		addSettable(t, cfg, settable{
			binding: binding{
				class:  rxNestedScrollView,
				method: "scrollChangeEvents",
				doc:    "@return an observable of scroll-change events for this NestedScrollView.",
			},
			listener:         poet.ClassName("", "OnScrollChangeListener"),
			setter:           "setOnScrollChangeListener",
			observed:         viewScrollChangeEvent,
			callback:         "event -> l.onScrollChange($N.this, event.scrollX(), event.scrollY(), event.oldScrollX(), event.oldScrollY())",
			nullableListener: true,
		}, name)
	}
	if strings.Contains(name, "RecyclerView") {
		addObservable(t, cfg, binding{
			class:  rxRecyclerView,
			method: "scrollEvents",
			doc:    "@return an observable of scroll events on this RecyclerView",
		}, recyclerViewScrollEvent)
	}
	return nil
}
