package plugin

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/artist/internal/errors"
)

type greeter interface{ Greet() string }

type english struct{}

func (english) Greet() string { return "hello" }

type french struct{}

func (french) Greet() string { return "bonjour" }

func TestRegistry_OrderAndLookup(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Provide(TraitPoint, english{}))
	require.NoError(t, r.Register(TraitPoint, func() (any, error) { return french{}, nil }))

	impls, err := Lookup[greeter](r, TraitPoint)
	require.NoError(t, err)
	require.Len(t, impls, 2)
	assert.Equal(t, "hello", impls[0].Greet())
	assert.Equal(t, "bonjour", impls[1].Greet())
}

func TestRegistry_EmptyPoint(t *testing.T) {
	r := NewRegistry()

	impls, err := Lookup[greeter](r, StencilProviderPoint)
	require.NoError(t, err)
	assert.Empty(t, impls)
	assert.Empty(t, r.Points())
}

func TestRegistry_FactoriesRunOnEveryLookup(t *testing.T) {
	r := NewRegistry()
	calls := 0
	require.NoError(t, r.Register(RxConfigPoint, func() (any, error) {
		calls++
		return english{}, nil
	}))

	_, err := r.Implementations(RxConfigPoint)
	require.NoError(t, err)
	_, err = r.Implementations(RxConfigPoint)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestRegistry_Errors(t *testing.T) {
	r := NewRegistry()

	err := r.Register("", func() (any, error) { return nil, nil })
	assert.Equal(t, errors.RegistrationErrorCode, errors.CodeOf(err))
	assert.Error(t, r.Register(TraitPoint, nil))
	assert.Error(t, r.Provide(TraitPoint, nil))

	boom := stderrors.New("boom")
	require.NoError(t, r.Register(TraitPoint, func() (any, error) { return nil, boom }))
	_, err = r.Implementations(TraitPoint)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "artist.trait")
}

func TestLookup_TypeMismatch(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Provide(TraitPoint, "not a greeter"))

	_, err := Lookup[greeter](r, TraitPoint)
	require.Error(t, err)
	assert.Equal(t, errors.RegistrationErrorCode, errors.CodeOf(err))
	assert.Contains(t, err.Error(), "string does not implement")
}

func TestFirst(t *testing.T) {
	r := NewRegistry()

	g, err := First[greeter](r, RxConfigPoint, french{})
	require.NoError(t, err)
	assert.Equal(t, "bonjour", g.Greet())

	require.NoError(t, r.Provide(RxConfigPoint, english{}))
	require.NoError(t, r.Provide(RxConfigPoint, french{}))
	g, err = First[greeter](r, RxConfigPoint, french{})
	require.NoError(t, err)
	assert.Equal(t, "hello", g.Greet())
	assert.Equal(t, []ExtensionPoint{RxConfigPoint}, r.Points())
}
