package config

// Override is a call-time value that outranks every file-sourced value.
// The zero value is Unset; Set(nil) is a set override whose value is nil.
type Override struct {
	value any
	set   bool
}

// Unset is the "caller passed nothing" override.
var Unset = Override{}

// Set returns an override carrying v. v may be nil, 0 or false.
func Set(v any) Override {
	return Override{value: v, set: true}
}

// IsSet reports whether the override carries a value.
func (o Override) IsSet() bool {
	return o.set
}

// Value returns the override value and whether it is set.
func (o Override) Value() (any, bool) {
	return o.value, o.set
}
