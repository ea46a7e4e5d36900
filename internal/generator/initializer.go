package generator

import (
	"github.com/toyz/artist/internal/poet"
)

// InitMethodName is the overridable initialization method every generated
// class declares and every terminal constructor calls.
const InitMethodName = "init"

// newInitializer returns the init(...) builder traits append statements to.
func newInitializer() *poet.MethodBuilder {
	return poet.NewMethod(InitMethodName).
		AddAnnotation(poet.AnnotationOf(callSuperAnn)).
		AddModifiers(poet.Protected, poet.Open).
		AddParameters(canonicalParams()...)
}

// addStyledAttributes wraps body in the obtainStyledAttributes/recycle
// block for the class's styleable.
func addStyledAttributes(init *poet.MethodBuilder, rClass poet.TypeName, name string, body poet.CodeBlock) {
	init.BeginControlFlow("if (attrs != null)").
		AddLocal("a", typedArray,
			"context.obtainStyledAttributes(attrs, $T.styleable.$N, defStyleAttr, defStyleRes)", rClass, name).
		AddCode(body).
		AddStatement("a.recycle()").
		EndControlFlow()
}
