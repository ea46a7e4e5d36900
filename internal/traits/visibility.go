// Package traits holds the built-in traits that do not depend on any
// reactive library.
package traits

import (
	"github.com/stoewer/go-strcase"

	"github.com/toyz/artist/internal/models"
	"github.com/toyz/artist/internal/poet"
)

const VisibilityID models.TraitID = "visibility"

var androidView = poet.ClassName("android.view", "View")

// visibilityStates are the View visibility constants, in declaration order.
var visibilityStates = []string{"visible", "invisible", "gone"}

// Visibility adds isVisible, isInvisible and isGone.
type Visibility struct{}

func (Visibility) ID() models.TraitID { return VisibilityID }

func (Visibility) GenerateFor(t *poet.TypeBuilder, _ *poet.MethodBuilder, _ poet.TypeName, _ string) error {
	for _, state := range visibilityStates {
		t.AddMethod(visibilityCheck(state))
	}
	return nil
}

// VisibilityMethodName returns the accessor generated for state, e.g.
// isInvisible for "invisible".
func VisibilityMethodName(state string) string {
	return "is" + strcase.UpperCamelCase(state)
}

func visibilityCheck(state string) *poet.MethodBuilder {
	return poet.NewMethod(VisibilityMethodName(state)).
		AddModifiers(poet.Public).
		Returns(poet.Boolean).
		AddStatement("return getVisibility() == $T.$N", androidView, strcase.UpperSnakeCase(state))
}
