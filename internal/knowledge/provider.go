package knowledge

// Provider hands out the current Base. Tools and resources depend on
// this interface rather than on a concrete Base so the serve path can
// swap in a freshly loaded corpus (watch mode) without the consumers
// noticing. The Base itself is always immutable; only the pointer moves.
type Provider interface {
	Base() *Base
}

// Static is a Provider over a single Base loaded once at startup — the
// normal production mode.
type Static struct {
	base *Base
}

// NewStatic wraps an already loaded Base.
func NewStatic(base *Base) *Static {
	return &Static{base: base}
}

// Base returns the wrapped Base.
func (s *Static) Base() *Base {
	return s.base
}
