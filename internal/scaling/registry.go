package scaling

import "github.com/rotisserie/eris"

// Relationship identifiers accepted in model files and configuration.
const (
	IDShaw09Mod = "SHAW_09_MOD"

	// IDGeometry marks sources whose rupture dimensions are fixed by their
	// geometry; no scaling relationship is available for them.
	IDGeometry = "GEOMETRY"
)

// ErrUnsupported reports a request for a relationship that exists as a
// category but has no computable instance. It is distinct from a
// domain-range violation.
var ErrUnsupported = eris.New("scaling: relationship not available")

// ByName resolves a relationship identifier. Identifiers for categories
// with built-in geometry return ErrUnsupported; unknown identifiers are an
// error naming the identifier.
func ByName(id string) (MagAreaRelationship, error) {
	switch id {
	case IDShaw09Mod:
		return NewShaw09Mod(), nil
	case IDGeometry:
		return nil, eris.Wrapf(ErrUnsupported, "id %q uses built-in geometry", id)
	}
	return nil, eris.Errorf("scaling: unknown relationship id %q", id)
}
