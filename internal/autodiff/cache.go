package autodiff

import (
	"fmt"
	"strings"
)

// Optional holds either nothing or a computed value.
type Optional[T any] struct {
	value T
	ok    bool
}

// Some returns an Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{value: v, ok: true}
}

// Get returns the value and whether it is present.
func (o Optional[T]) Get() (T, bool) {
	return o.value, o.ok
}

// Present reports whether a value is stored.
func (o Optional[T]) Present() bool {
	return o.ok
}

func (o Optional[T]) String() string {
	if !o.ok {
		return "None"
	}
	return fmt.Sprint(o.value)
}

// Cache stores the values derived for one node during one evaluation pass.
//
// For a node computing f(w_1..w_k, z_1..z_m) with parameters w and
// arguments z, inside a network computing the error E:
//   - Output: f for the current example
//   - LocalGradient: [∂f/∂z_1, ..., ∂f/∂z_m]
//   - GlobalGradient: ∂E/∂f
//   - LocalParameterGradient: [∂f/∂w_1, ..., ∂f/∂w_k]
//   - GlobalParameterGradient: [∂E/∂w_1, ..., ∂E/∂w_k]
//
// Label is only set on loss nodes by Graph.ComputeError.
type Cache struct {
	Output                  Optional[float64]
	LocalGradient           Optional[[]float64]
	GlobalGradient          Optional[float64]
	LocalParameterGradient  Optional[[]float64]
	GlobalParameterGradient Optional[[]float64]
	Label                   Optional[float64]
}

// String renders every field, absent ones as None.
func (c Cache) String() string {
	var sb strings.Builder
	sb.WriteString("Cache(")
	fmt.Fprintf(&sb, "output=%v, ", c.Output)
	fmt.Fprintf(&sb, "local_gradient=%v, ", c.LocalGradient)
	fmt.Fprintf(&sb, "global_gradient=%v, ", c.GlobalGradient)
	fmt.Fprintf(&sb, "local_parameter_gradient=%v, ", c.LocalParameterGradient)
	fmt.Fprintf(&sb, "global_parameter_gradient=%v", c.GlobalParameterGradient)
	sb.WriteString(")")
	return sb.String()
}
