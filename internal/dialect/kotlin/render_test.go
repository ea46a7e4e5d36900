package kotlin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/artist/internal/dialect"
	"github.com/toyz/artist/internal/poet"
)

var (
	context      = poet.ClassName("android.content", "Context")
	attributeSet = poet.ClassName("android.util", "AttributeSet")
	imageView    = poet.ClassName("android.widget", "ImageView")
	nullable     = poet.AnnotationOf(poet.ClassName("androidx.annotation", "Nullable"))
)

func build(t *testing.T, b *poet.TypeBuilder) *poet.File {
	t.Helper()
	typ, err := b.Build()
	require.NoError(t, err)
	return poet.NewFile("foo.bar", typ).AddComment(dialect.HeaderText)
}

func TestRenderClass(t *testing.T) {
	b := poet.NewClass("MyImageView", poet.Kotlin).
		AddModifiers(poet.Public, poet.Open).
		Superclass(imageView)
	b.AddMethod(poet.NewConstructor().
		AddModifiers(poet.Public).
		AddParameters(poet.Param("context", context)).
		DelegateTo(poet.This, poet.Code("context"), poet.Code("null")))
	b.AddMethod(poet.NewConstructor().
		AddModifiers(poet.Public).
		AddParameters(
			poet.Param("context", context),
			poet.Param("attrs", attributeSet.AsNullable(), nullable)).
		DelegateTo(poet.Super, poet.Code("context"), poet.Code("attrs")).
		AddStatement("init(context, attrs, 0, 0)"))
	b.AddMethod(poet.NewMethod("testMethod").
		AddModifiers(poet.Public).
		Returns(poet.String).
		AddStatement("return $S", "foo"))
	b.AddMethod(poet.NewMethod("init").
		AddModifiers(poet.Protected, poet.Open).
		AddParameters(poet.Param("defStyleRes", poet.Int)))

	out, err := New().Render(build(t, b))
	require.NoError(t, err)
	assert.Equal(t, `// Generated by artist. DO NOT EDIT.

package foo.bar

import android.content.Context
import android.util.AttributeSet
import android.widget.ImageView
import androidx.annotation.Nullable

open class MyImageView : ImageView {
  constructor(context: Context) : this(context, null)

  constructor(context: Context, @Nullable attrs: AttributeSet?) : super(context, attrs) {
    init(context, attrs, 0, 0)
  }

  fun testMethod(): String {
    return "foo"
  }

  protected open fun init(defStyleRes: Int) {
  }
}
`, out)

	formatted, err := New().Format(out)
	require.NoError(t, err)
	assert.Contains(t, formatted, "  protected open fun init(defStyleRes: Int) {}\n")
}

func TestRenderFieldsAndLocals(t *testing.T) {
	drawable := poet.ClassName("android.graphics.drawable", "Drawable")
	typedArray := poet.ClassName("android.content.res", "TypedArray")

	b := poet.NewClass("MyView", poet.Kotlin).
		AddModifiers(poet.Public, poet.Open).
		Superclass(poet.ClassName("android.view", "View")).
		AddSuperinterface(poet.ClassName("com.example", "Themed"))
	b.AddField(poet.NewField("foreground", drawable.AsNullable(), poet.Private))
	b.AddField(poet.NewField("background", drawable, poet.Private))
	b.AddField(poet.NewField("count", poet.Int, poet.Private, poet.Final).WithInitializer("$L", 0))
	b.AddMethod(poet.NewMethod("setPressed").
		AddModifiers(poet.Public, poet.Override).
		AddParameters(poet.Param("pressed", poet.Boolean)).
		BeginControlFlow("if (pressed)").
		AddLocal("a", typedArray, "obtain($S)", "$price").
		EndControlFlow())

	out, err := New().Render(build(t, b))
	require.NoError(t, err)
	assert.Contains(t, out, "open class MyView : View, Themed {\n")
	assert.Contains(t, out, "  private var foreground: Drawable? = null\n")
	assert.Contains(t, out, "  private lateinit var background: Drawable\n")
	assert.Contains(t, out, "  private val count: Int = 0\n")
	assert.Contains(t, out, "  override fun setPressed(pressed: Boolean) {\n    if (pressed) {\n      val a: TypedArray = obtain(\"\\$price\")\n    }\n  }\n")
	assert.NotContains(t, out, "import kotlin.")
}

func TestRenderRejectsStatics(t *testing.T) {
	b := poet.NewClass("A", poet.Kotlin)
	b.AddMethod(poet.NewMethod("of").AddModifiers(poet.Public, poet.Static))

	_, err := New().Render(build(t, b))
	assert.Error(t, err)
}

func TestFormatRejectsUnbalanced(t *testing.T) {
	_, err := New().Format("class A {\n")
	assert.Error(t, err)
}

func TestDialectMetadata(t *testing.T) {
	d := New()
	assert.Equal(t, "kotlin", d.Name())
	assert.Equal(t, ".kt", d.FileExtension())
	assert.Equal(t, poet.Kotlin, d.Language())
}
