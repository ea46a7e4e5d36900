package dialect

import (
	"sort"

	"github.com/toyz/artist/internal/poet"
)

// ImportManager decides which classes a file imports and how each class is
// spelled. The first class to claim a simple name gets it; later classes
// with the same simple name are written fully qualified.
type ImportManager struct {
	pkg      string
	byName   map[string]string // simple name -> canonical name
	imports  map[string]bool
	implicit map[string]bool
}

// NewImportManager creates an import manager for a file declaring self.
// Classes in implicitPackages are never imported but still claim their
// simple names.
func NewImportManager(self poet.TypeName, implicitPackages ...string) *ImportManager {
	im := &ImportManager{
		pkg:      self.Package(),
		byName:   make(map[string]string),
		imports:  make(map[string]bool),
		implicit: make(map[string]bool),
	}
	for _, p := range implicitPackages {
		im.implicit[p] = true
	}
	im.byName[self.Simple()] = self.Canonical()
	return im
}

// Add registers a class reference. Non-class kinds are ignored.
func (im *ImportManager) Add(t poet.TypeName) {
	if t.IsZero() || t.Kind() != poet.KindClass {
		return
	}
	canonical := t.Canonical()
	if _, taken := im.byName[t.Simple()]; taken {
		return
	}
	im.byName[t.Simple()] = canonical
	if t.Package() == "" || t.Package() == im.pkg || im.implicit[t.Package()] {
		return
	}
	im.imports[canonical] = true
}

// Ref returns the spelling of a class reference: its simple name when it
// owns that name in this file, its canonical name otherwise.
func (im *ImportManager) Ref(t poet.TypeName) string {
	if im.byName[t.Simple()] == t.Canonical() {
		return t.Simple()
	}
	return t.Canonical()
}

// Imports returns the sorted list of canonical names to import.
func (im *ImportManager) Imports() []string {
	out := make([]string, 0, len(im.imports))
	for imp := range im.imports {
		out = append(out, imp)
	}
	sort.Strings(out)
	return out
}
