package rx

import (
	"github.com/toyz/artist/internal/models"
	"github.com/toyz/artist/internal/poet"
)

const TextInputID models.TraitID = "rx.text-input"

// TextInput adds a textChanges stream to text views.
type TextInput struct {
	Config Config
}

func NewTextInput(cfg Config) *TextInput {
	return &TextInput{Config: orDefault(cfg)}
}

func (ti *TextInput) ID() models.TraitID { return TextInputID }

func (ti *TextInput) GenerateFor(t *poet.TypeBuilder, _ *poet.MethodBuilder, _ poet.TypeName, _ string) error {
	addObservable(t, orDefault(ti.Config), binding{
		class:  rxTextView,
		method: "textChanges",
		doc:    "@return an Observable of character sequences for text changes on this TextView.",
	}, poet.CharSequence)
	return nil
}
