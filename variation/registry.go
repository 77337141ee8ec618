package variation

import "fmt"

// registry is the process-wide catalog of known variations. The
// catalog itself (~100 named functions) is out of scope for the core
// (spec.md §1); this registry only holds the handful of structural
// variations the core itself depends on (flatten, and a default
// "linear" used as the identity-safe interpolation substitute,
// spec.md §4.D), the two simple built-ins "spherical" and "sinusoidal",
// plus whatever an embedding application registers.
var registry = map[string]Variation{}

// Register adds v to the catalog under v.Name(). Re-registering a
// name replaces the previous entry; this lets an embedding
// application override or extend the built-ins.
func Register(v Variation) { registry[v.Name()] = v }

// Lookup returns the named variation and whether it was found.
func Lookup(name string) (Variation, bool) {
	v, ok := registry[name]
	return v, ok
}

// MustLookup panics if name is not registered. Intended for tests and
// for ember construction code that names a variation it knows was
// registered during package init.
func MustLookup(name string) Variation {
	v, ok := Lookup(name)
	if !ok {
		panic(fmt.Sprintf("variation: unregistered name %q", name))
	}
	return v
}

func init() {
	Register(linearVariation{})
	Register(flattenVariation{})
	Register(sphericalVariation{})
	Register(sinusoidalVariation{})
}
