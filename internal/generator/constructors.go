package generator

import (
	"strings"

	"github.com/toyz/artist/internal/poet"
)

var (
	contextType  = poet.ClassName("android.content", "Context")
	attributeSet = poet.ClassName("android.util", "AttributeSet")
	typedArray   = poet.ClassName("android.content.res", "TypedArray")
	buildType    = poet.ClassName("android.os", "Build")
	targetAPI    = poet.ClassName("android.annotation", "TargetApi")
	nullableAnn  = poet.ClassName("androidx.annotation", "Nullable")
	attrResAnn   = poet.ClassName("androidx.annotation", "AttrRes")
	styleResAnn  = poet.ClassName("androidx.annotation", "StyleRes")
	callSuperAnn = poet.ClassName("androidx.annotation", "CallSuper")
)

// platformStylePrefix marks a default style attribute that is used verbatim.
const platformStylePrefix = "android.R"

// terminalArity is the widest overload that still chains with this(...)
// before it; overloads from here on call super directly.
const terminalArity = 3

// canonicalParams returns the four widget constructor parameters in order.
func canonicalParams() []poet.Parameter {
	return []poet.Parameter{
		poet.Param("context", contextType),
		poet.Param("attrs", attributeSet.AsNullable(), poet.AnnotationOf(nullableAnn)),
		poet.Param("defStyleAttr", poet.Int, poet.AnnotationOf(attrResAnn)),
		poet.Param("defStyleRes", poet.Int, poet.AnnotationOf(styleResAnn)),
	}
}

// initDefaults fills the init(...) slots a narrower constructor lacks.
var initDefaults = []string{"", "null", "0", "0"}

// styleAttrCode renders the default style attribute argument.
func styleAttrCode(styleAttr string, rClass poet.TypeName) poet.CodeBlock {
	switch {
	case styleAttr == "":
		return poet.Code("0")
	case strings.HasPrefix(styleAttr, platformStylePrefix):
		return poet.Code("$L", styleAttr)
	default:
		return poet.Code("$T.attr.$N", rClass, strings.TrimPrefix(styleAttr, "R.attr."))
	}
}

// constructorLadder synthesizes the n canonical constructors. Overload i
// takes the first i canonical parameters; it calls super and init when it is
// the widest or the three-argument one, otherwise it delegates to overload
// i+1 with one defaulted argument.
func constructorLadder(n int, styleAttr string, rClass poet.TypeName) []*poet.MethodBuilder {
	params := canonicalParams()
	ctors := make([]*poet.MethodBuilder, 0, n)

	for i := 1; i <= n; i++ {
		ctor := poet.NewConstructor().
			AddModifiers(poet.Public).
			AddParameters(params[:i]...)
		if i == 4 {
			ctor.AddAnnotation(poet.AnnotationOf(targetAPI).
				With("value", "$T.VERSION_CODES.LOLLIPOP", buildType))
		}

		args := make([]poet.CodeBlock, 0, i+1)
		for _, p := range params[:i] {
			args = append(args, poet.Code("$N", p.Name))
		}

		if i == n || i == terminalArity {
			ctor.DelegateTo(poet.Super, args...)
			initArgs := make([]poet.CodeBlock, 4)
			for slot := range initArgs {
				if slot < i {
					initArgs[slot] = args[slot]
				} else {
					initArgs[slot] = poet.Code("$L", initDefaults[slot])
				}
			}
			ctor.AddStatement("init($L)", poet.Join(", ", initArgs...))
		} else {
			var next poet.CodeBlock
			switch i {
			case 1:
				next = poet.Code("null")
			case 2:
				next = styleAttrCode(styleAttr, rClass)
			default:
				next = poet.Code("0")
			}
			ctor.DelegateTo(poet.This, append(args, next)...)
		}
		ctors = append(ctors, ctor)
	}
	return ctors
}
