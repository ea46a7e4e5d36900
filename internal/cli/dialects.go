package cli

import (
	"github.com/toyz/artist/internal/dialect"
	"github.com/toyz/artist/internal/dialect/java"
	"github.com/toyz/artist/internal/dialect/kotlin"
	"github.com/toyz/artist/internal/errors"
	"github.com/toyz/artist/internal/utils"
)

// DefaultDialect is used when the configuration names none
const DefaultDialect = "java"

// DialectRegistry maps dialect names to renderers
type DialectRegistry struct {
	*utils.BaseRegistry[string, dialect.Dialect]
}

// NewDialectRegistry returns a registry holding the java and kotlin dialects
func NewDialectRegistry() *DialectRegistry {
	r := &DialectRegistry{utils.NewBaseRegistry[string, dialect.Dialect]("dialect", "dialect")}
	r.SetValidator(utils.ChainValidators(
		utils.NotEmptyKeyValidator[dialect.Dialect]("dialect name"),
		utils.NoDuplicateValidator[string, dialect.Dialect]("dialect"),
	))

	for _, d := range []dialect.Dialect{java.New(), kotlin.New()} {
		// Both names are distinct constants
		_ = r.Register(d.Name(), d)
	}
	return r
}

// Resolve returns the dialect called name, or the default for an empty name.
func (r *DialectRegistry) Resolve(name string) (dialect.Dialect, error) {
	if name == "" {
		name = DefaultDialect
	}
	d, err := r.GetOrError(name)
	if err != nil {
		return nil, errors.ConfigurationError(KeyDialect, err.Error()).
			WithContext("available", r.List())
	}
	return d, nil
}

// Extensions lists the file extensions of every registered dialect
func (r *DialectRegistry) Extensions() []string {
	var exts []string
	for _, name := range r.List() {
		d, _ := r.Get(name)
		exts = append(exts, d.FileExtension())
	}
	return exts
}
