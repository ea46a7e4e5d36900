package traits

import (
	"github.com/toyz/artist/internal/models"
	"github.com/toyz/artist/internal/poet"
)

const SuppressNullabilityID models.TraitID = "suppress-nullability"

// NullabilityCheck is the lint check silenced on init.
const NullabilityCheck = "CheckNullabilityTypes"

var (
	javaSuppressWarnings = poet.ClassName("java.lang", "SuppressWarnings")
	kotlinSuppress       = poet.ClassName("kotlin", "Suppress")
)

// SuppressNullability annotates init so nullability lint ignores the
// platform-typed constructor arguments.
type SuppressNullability struct{}

func (SuppressNullability) ID() models.TraitID { return SuppressNullabilityID }

func (SuppressNullability) GenerateFor(t *poet.TypeBuilder, init *poet.MethodBuilder, _ poet.TypeName, _ string) error {
	ann := javaSuppressWarnings
	if t.Language() == poet.Kotlin {
		ann = kotlinSuppress
	}
	init.AddAnnotation(poet.AnnotationOf(ann).With("value", "$S", NullabilityCheck))
	return nil
}
