package rx

import (
	"strings"

	"github.com/toyz/artist/internal/models"
	"github.com/toyz/artist/internal/poet"
)

const CheckableID models.TraitID = "rx.checkable"

const checkedChanges = "checkedChanges"

// Checkable adds a checkedChanges stream. Compound buttons are bound through
// RxCompoundButton; checkable text views, which have no change listener,
// feed a relay from setChecked.
type Checkable struct {
	Config Config
}

func NewCheckable(cfg Config) *Checkable {
	return &Checkable{Config: orDefault(cfg)}
}

func (c *Checkable) ID() models.TraitID { return CheckableID }

func (c *Checkable) GenerateFor(t *poet.TypeBuilder, _ *poet.MethodBuilder, _ poet.TypeName, name string) error {
	if strings.HasSuffix(name, "TextView") {
		addCheckedRelay(t)
		return nil
	}
	addSettable(t, orDefault(c.Config), settable{
		binding: binding{
			class:  rxCompoundButton,
			method: checkedChanges,
			doc:    "@return an Observable of booleans representing the checked state of this view.",
		},
		listener: poet.ClassName("", "OnCheckedChangeListener"),
		setter:   "setOnCheckedChangeListener",
		observed: poet.Boolean,
		callback: "isChecked -> l.onCheckedChanged($N.this, isChecked)",
		stateful: true,
		initial:  poet.Code("$T.createDefault(isChecked())", behaviorRelay),
	}, name)
	return nil
}

func addCheckedRelay(t *poet.TypeBuilder) {
	relay := checkedChanges
	if t.Language() == poet.Kotlin {
		relay += "!!"
	}

	t.AddField(poet.NewField(checkedChanges, behaviorRelay.WithArgs(poet.Boolean).AsNullable(), poet.Private))
	t.AddMethod(poet.NewMethod("ensureCheckedChanges").
		AddModifiers(poet.Private).
		BeginControlFlow("if ($N == null)", checkedChanges).
		AddStatement("$N = $T.create()", checkedChanges, behaviorRelay).
		EndControlFlow())
	t.AddMethod(poet.NewMethod(checkedChanges).
		AddDoc("@return an Observable of booleans representing the checked state of this view.").
		AddModifiers(poet.Public).
		Returns(observable.WithArgs(poet.Boolean)).
		AddStatement("ensureCheckedChanges()").
		AddStatement("return $L.hide()", relay))
	t.AddMethod(poet.NewMethod("setChecked").
		AddModifiers(poet.Public, poet.Override).
		AddParameters(poet.Param("checked", poet.Boolean)).
		AddStatement("super.setChecked(checked)").
		AddStatement("ensureCheckedChanges()").
		AddStatement("$L.accept(checked)", relay))
}
