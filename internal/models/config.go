package models

import (
	"strings"

	"github.com/toyz/artist/internal/errors"
	"github.com/toyz/artist/internal/poet"
)

// RunConfig is the per-run configuration supplied by the host build.
type RunConfig struct {
	// OutputDir is the root the package directories are created under.
	OutputDir string
	// PackageName is the package of the application's R class.
	PackageName string
	// ViewPackageName is the package generated classes declare. Defaults
	// to PackageName.
	ViewPackageName string
	// SuperinterfaceClassName is an optional fully-qualified interface every
	// generated class implements.
	SuperinterfaceClassName string
	// ViewNamePrefix is prepended to every derived class name.
	ViewNamePrefix string
	// FormatSource pretty-prints files before writing them.
	FormatSource bool
}

// WithDefaults fills in derived defaults.
func (c RunConfig) WithDefaults() RunConfig {
	if c.ViewPackageName == "" {
		c.ViewPackageName = c.PackageName
	}
	return c
}

// Validate checks the options the engine depends on.
func (c RunConfig) Validate() error {
	if c.OutputDir == "" {
		return errors.ConfigurationError("output_dir", "output directory is required")
	}
	if !validPackage(c.PackageName) {
		return errors.ConfigurationError("package_name", "'"+c.PackageName+"' is not a valid package name").
			WithSuggestion("set package_name to the package of the application's R class, e.g. com.example.app")
	}
	if c.ViewPackageName != "" && !validPackage(c.ViewPackageName) {
		return errors.ConfigurationError("view_package_name", "'"+c.ViewPackageName+"' is not a valid package name")
	}
	if _, err := c.Superinterface(); err != nil {
		return err
	}
	return nil
}

// RClass returns the application's resource class.
func (c RunConfig) RClass() poet.TypeName {
	return poet.ClassName(c.PackageName, "R")
}

// Superinterface resolves SuperinterfaceClassName. The zero TypeName means
// none was configured.
func (c RunConfig) Superinterface() (poet.TypeName, error) {
	if c.SuperinterfaceClassName == "" {
		return poet.TypeName{}, nil
	}
	t, err := poet.BestGuess(c.SuperinterfaceClassName)
	if err != nil {
		return poet.TypeName{}, errors.ConfigurationError("superinterface_class_name", "cannot resolve interface name").
			WithCause(err)
	}
	return t, nil
}

func validPackage(pkg string) bool {
	if pkg == "" {
		return false
	}
	for _, part := range strings.Split(pkg, ".") {
		if !poet.IsIdentifier(part) {
			return false
		}
	}
	return true
}
