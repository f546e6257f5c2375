package simpleutf

// Sink receives produced code units in order.
// Implementations must not retain the units slice after Append returns.
type Sink[T Unit] interface {
	Append(units ...T)
}

// SliceSink is a growable buffer sink.
type SliceSink[T Unit] struct {
	Units []T
}

// NewSliceSink returns a sink with room for n units.
func NewSliceSink[T Unit](n int) *SliceSink[T] {
	return &SliceSink[T]{Units: make([]T, 0, n)}
}

func (s *SliceSink[T]) Append(units ...T) {
	s.Units = append(s.Units, units...)
}

func (s *SliceSink[T]) Len() int {
	return len(s.Units)
}

// Reset truncates the buffer, keeping its capacity.
func (s *SliceSink[T]) Reset() {
	s.Units = s.Units[:0]
}

// SinkFunc adapts a callback to Sink.
type SinkFunc[T Unit] func(units ...T)

func (f SinkFunc[T]) Append(units ...T) {
	f(units...)
}

// Discard drops everything appended to it.
type Discard[T Unit] struct{}

func (Discard[T]) Append(...T) {}

var (
	_ Sink[byte]   = (*SliceSink[byte])(nil)
	_ Sink[uint16] = SinkFunc[uint16](nil)
	_ Sink[uint32] = Discard[uint32]{}
)
