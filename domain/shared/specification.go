package shared

// Specification is a query predicate over T. In-memory readers evaluate it
// directly; SQL readers translate the concrete types into WHERE clauses.
type Specification[T any] interface {
	IsSatisfiedBy(entity T) bool
}

// ============================================================================
// Composite Specifications
// ============================================================================

type AndSpecification[T any] struct {
	Left  Specification[T]
	Right Specification[T]
}

func (spec AndSpecification[T]) IsSatisfiedBy(entity T) bool {
	return spec.Left.IsSatisfiedBy(entity) && spec.Right.IsSatisfiedBy(entity)
}

func And[T any](left, right Specification[T]) Specification[T] {
	return AndSpecification[T]{Left: left, Right: right}
}

type OrSpecification[T any] struct {
	Left  Specification[T]
	Right Specification[T]
}

func (spec OrSpecification[T]) IsSatisfiedBy(entity T) bool {
	return spec.Left.IsSatisfiedBy(entity) || spec.Right.IsSatisfiedBy(entity)
}

func Or[T any](left, right Specification[T]) Specification[T] {
	return OrSpecification[T]{Left: left, Right: right}
}

type NotSpecification[T any] struct {
	Spec Specification[T]
}

func (spec NotSpecification[T]) IsSatisfiedBy(entity T) bool {
	return !spec.Spec.IsSatisfiedBy(entity)
}

func Not[T any](inner Specification[T]) Specification[T] {
	return NotSpecification[T]{Spec: inner}
}
