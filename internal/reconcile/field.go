// Package reconcile implements the generic retrieve/compare/converge cycle
// shared by every AD FS resource kind. A resource kind declares its
// comparable fields once, as a Descriptor, and the Engine drives the admin
// gateway toward the declared state through a kind-specific Adapter.
package reconcile

// Field describes one comparable property of a resource kind. Fields are
// declared statically per kind; there is no reflection over property bags.
// A field whose desired value is unset (nil pointer, nil slice) is
// unmanaged and excluded from comparison.
type Field[T any] struct {
	// Name identifies the field in compliance results and logs. It matches
	// the Terraform attribute name for the resource.
	Name string

	compare func(desired, actual T) (managed, equal bool)
}

// StringField declares a scalar string field. A nil desired pointer means
// the field is unmanaged.
func StringField[T any](name string, get func(T) *string) Field[T] {
	return Field[T]{
		Name: name,
		compare: func(desired, actual T) (bool, bool) {
			d := get(desired)
			if d == nil {
				return false, true
			}
			a := get(actual)
			return true, a != nil && *a == *d
		},
	}
}

// BoolField declares a scalar boolean field. A nil desired pointer means
// the field is unmanaged.
func BoolField[T any](name string, get func(T) *bool) Field[T] {
	return Field[T]{
		Name: name,
		compare: func(desired, actual T) (bool, bool) {
			d := get(desired)
			if d == nil {
				return false, true
			}
			a := get(actual)
			return true, a != nil && *a == *d
		},
	}
}

// Int64Field declares a scalar integer field. A nil desired pointer means
// the field is unmanaged.
func Int64Field[T any](name string, get func(T) *int64) Field[T] {
	return Field[T]{
		Name: name,
		compare: func(desired, actual T) (bool, bool) {
			d := get(desired)
			if d == nil {
				return false, true
			}
			a := get(actual)
			return true, a != nil && *a == *d
		},
	}
}

// SetField declares a string-list field compared with set semantics: the
// symmetric difference must be empty, element order never matters and
// duplicates are ignored. A nil desired slice means the field is
// unmanaged; an empty non-nil slice requires the actual set to be empty.
func SetField[T any](name string, get func(T) []string) Field[T] {
	return Field[T]{
		Name: name,
		compare: func(desired, actual T) (bool, bool) {
			d := get(desired)
			if d == nil {
				return false, true
			}
			return true, setsEqual(d, get(actual))
		},
	}
}

// OptionalRefField declares an optional reference field (for example an
// encryption certificate). Three desired states are distinguished:
//
//   - nil pointer: no opinion, excluded from comparison
//   - pointer to "": explicitly cleared, actual reference must be absent
//   - pointer to a value: actual reference must match exactly
func OptionalRefField[T any](name string, get func(T) *string) Field[T] {
	return Field[T]{
		Name: name,
		compare: func(desired, actual T) (bool, bool) {
			d := get(desired)
			if d == nil {
				return false, true
			}
			a := get(actual)
			if *d == "" {
				return true, a == nil || *a == ""
			}
			return true, a != nil && *a == *d
		},
	}
}

// MapField declares a string-map field compared entry-by-entry. A nil
// desired map means the field is unmanaged.
func MapField[T any](name string, get func(T) map[string]string) Field[T] {
	return Field[T]{
		Name: name,
		compare: func(desired, actual T) (bool, bool) {
			d := get(desired)
			if d == nil {
				return false, true
			}
			return true, mapsEqual(d, get(actual))
		},
	}
}

func setsEqual(a, b []string) bool {
	seen := make(map[string]struct{}, len(a))
	for _, v := range a {
		seen[v] = struct{}{}
	}
	other := make(map[string]struct{}, len(b))
	for _, v := range b {
		if _, ok := seen[v]; !ok {
			return false
		}
		other[v] = struct{}{}
	}
	return len(seen) == len(other)
}

func mapsEqual(a, b map[string]string) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if bv, ok := b[k]; !ok || bv != v {
			return false
		}
	}
	return true
}

// Descriptor binds a resource kind to its statically declared set of
// comparable fields. Key fields are not listed here; identity is carried
// by the Adapter's key type.
type Descriptor[T any] struct {
	// Kind names the resource kind for logging.
	Kind string

	// Fields participate in compliance comparison, in declaration order.
	Fields []Field[T]
}

// Compare reports the names of managed fields whose desired and actual
// values differ. An empty result means the actual state is compliant.
// Compare is pure: it never touches the adapter.
func (d *Descriptor[T]) Compare(desired, actual T) []string {
	var mismatches []string
	for _, f := range d.Fields {
		if managed, equal := f.compare(desired, actual); managed && !equal {
			mismatches = append(mismatches, f.Name)
		}
	}
	return mismatches
}
