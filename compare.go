package umbral

// CompareOp is a rich-comparison operator as dispatched by the host
// runtime.
type CompareOp int

const (
	OpEq CompareOp = iota
	OpNe
	OpLt
	OpLe
	OpGt
	OpGe
)

// Value is implemented by all eight wrapper types.
type Value interface {
	// TypeName returns the host-visible name of the type.
	TypeName() string
}

// Compare dispatches a rich comparison between two values of the same
// type. Only equality and inequality are defined; the wrapped values carry
// no order, so the four ordering operators fail with a type error.
func Compare[T interface {
	Value
	Equal(T) bool
}](a, b T, op CompareOp) (bool, error) {
	switch op {
	case OpEq:
		return a.Equal(b), nil
	case OpNe:
		return !a.Equal(b), nil
	default:
		return false, typeError(CodeNotOrdered, "%s objects are not ordered", a.TypeName())
	}
}
