package rx

import (
	"github.com/toyz/artist/internal/models"
	"github.com/toyz/artist/internal/poet"
)

const ViewID models.TraitID = "rx.view"

// View adds clicks, longClicks and layoutChanges streams.
type View struct {
	Config Config
}

// NewView creates the trait with cfg, or DefaultConfig when cfg is nil.
func NewView(cfg Config) *View {
	return &View{Config: orDefault(cfg)}
}

func (v *View) ID() models.TraitID { return ViewID }

func (v *View) GenerateFor(t *poet.TypeBuilder, _ *poet.MethodBuilder, _ poet.TypeName, name string) error {
	cfg := orDefault(v.Config)
	addSettable(t, cfg, settable{
		binding: binding{
			class:  rxView,
			method: "clicks",
			doc:    "@return an Observable of click events. The emitted value is unspecified and should only be used as notification.",
		},
		listener:         poet.ClassName("", "OnClickListener"),
		setter:           "setOnClickListener",
		observed:         poet.Object,
		callback:         "ignored -> l.onClick($N.this)",
		nullableListener: true,
	}, name)
	addSettable(t, cfg, settable{
		binding: binding{
			class:  rxView,
			method: "longClicks",
			doc:    "@return an Observable of long-click events. The emitted value is unspecified and should only be used as notification.",
		},
		listener:         poet.ClassName("", "OnLongClickListener"),
		setter:           "setOnLongClickListener",
		observed:         poet.Object,
		callback:         "ignored -> l.onLongClick($N.this)",
		nullableListener: true,
	}, name)
	addObservable(t, cfg, binding{
		class:  rxView,
		method: "layoutChanges",
		doc:    "@return an Observable which emits on layout changes. The emitted value is unspecified and should only be used as notification.",
	}, poet.Object)
	return nil
}
