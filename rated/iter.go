package rated

import "iter"

// Iter walks the elements of a collection response from either end, pairing
// every element with a copy of the parent response's snapshot. It is
// double-ended: Next and NextBack consume opposite ends of the same window,
// and Remaining is exact at every position.
//
// All three constructors ([Elems], [ElemsMut], [IntoElems]) share this type;
// they differ only in how the element is accessed.
type Iter[E any] struct {
	limit Limit
	elems []E
}

// Next yields the next element from the front, wrapped with the parent
// snapshot. It reports false once the window is exhausted.
func (it *Iter[E]) Next() (Response[E], bool) {
	if len(it.elems) == 0 {
		return Response[E]{}, false
	}

	e := it.elems[0]
	it.elems = it.elems[1:]

	return Wrap(it.limit, e), true
}

// NextBack yields the next element from the back, wrapped with the parent
// snapshot. It reports false once the window is exhausted.
func (it *Iter[E]) NextBack() (Response[E], bool) {
	if len(it.elems) == 0 {
		return Response[E]{}, false
	}

	e := it.elems[len(it.elems)-1]
	it.elems = it.elems[:len(it.elems)-1]

	return Wrap(it.limit, e), true
}

// Remaining is the exact number of elements not yet yielded.
func (it *Iter[E]) Remaining() int {
	return len(it.elems)
}

// All adapts the iterator for range-over-func, front to back.
func (it *Iter[E]) All() iter.Seq[Response[E]] {
	return func(yield func(Response[E]) bool) {
		for {
			r, ok := it.Next()
			if !ok || !yield(r) {
				return
			}
		}
	}
}

// Backward adapts the iterator for range-over-func, back to front.
func (it *Iter[E]) Backward() iter.Seq[Response[E]] {
	return func(yield func(Response[E]) bool) {
		for {
			r, ok := it.NextBack()
			if !ok || !yield(r) {
				return
			}
		}
	}
}

// Elems iterates a collection response by value. The yielded elements are
// copies; the parent response is left untouched and can be iterated again.
func Elems[T any](r *Response[[]T]) *Iter[T] {
	elems := make([]T, len(r.Payload))
	copy(elems, r.Payload)

	return &Iter[T]{limit: r.Limit, elems: elems}
}

// ElemsMut iterates a collection response by pointer, so elements can be
// updated in place through the yielded responses.
func ElemsMut[T any](r *Response[[]T]) *Iter[*T] {
	elems := make([]*T, len(r.Payload))
	for i := range r.Payload {
		elems[i] = &r.Payload[i]
	}

	return &Iter[*T]{limit: r.Limit, elems: elems}
}

// IntoElems consumes a collection response, taking ownership of its
// payload slice. The caller's copy of r should not be used afterwards.
func IntoElems[T any](r Response[[]T]) *Iter[T] {
	return &Iter[T]{limit: r.Limit, elems: r.Payload}
}
