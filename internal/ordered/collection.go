// Package ordered provides pure helpers over ordered sequences of entities
// keyed by a stable identifier. Every helper returns a new slice and leaves
// its input untouched, so callers can rely on slice identity to detect change.
package ordered

import (
	"errors"
	"fmt"
)

// NotFound is returned by IndexOf when no element carries the requested key
const NotFound = -1

// ErrIndexOutOfRange is returned when an index does not address the sequence
var ErrIndexOutOfRange = errors.New("index out of range")

// Keyed is implemented by entities that expose a stable identifier
type Keyed[K comparable] interface {
	Key() K
}

// IndexOf returns the position of the element whose key equals id, or NotFound
func IndexOf[T Keyed[K], K comparable](seq []T, id K) int {
	for i, v := range seq {
		if v.Key() == id {
			return i
		}
	}
	return NotFound
}

// Contains reports whether any element carries the key id
func Contains[T Keyed[K], K comparable](seq []T, id K) bool {
	return IndexOf(seq, id) != NotFound
}

// MoveWithin returns a new sequence with the element at from relocated so that
// it lands at index to. The relative order of every other element is kept.
// When from == to the input is returned unchanged.
func MoveWithin[T any](seq []T, from, to int) ([]T, error) {
	if from < 0 || from >= len(seq) {
		return seq, fmt.Errorf("move from %d (len %d): %w", from, len(seq), ErrIndexOutOfRange)
	}
	if to < 0 || to >= len(seq) {
		return seq, fmt.Errorf("move to %d (len %d): %w", to, len(seq), ErrIndexOutOfRange)
	}
	if from == to {
		return seq, nil
	}

	out := make([]T, len(seq))
	copy(out, seq)
	moved := out[from]
	if from < to {
		copy(out[from:to], out[from+1:to+1])
	} else {
		copy(out[to+1:from+1], out[to:from])
	}
	out[to] = moved
	return out, nil
}

// InsertAt returns a new sequence with v inserted at index. index may equal
// len(seq), which appends.
func InsertAt[T any](seq []T, index int, v T) ([]T, error) {
	if index < 0 || index > len(seq) {
		return seq, fmt.Errorf("insert at %d (len %d): %w", index, len(seq), ErrIndexOutOfRange)
	}
	out := make([]T, 0, len(seq)+1)
	out = append(out, seq[:index]...)
	out = append(out, v)
	out = append(out, seq[index:]...)
	return out, nil
}

// RemoveAt returns a new sequence without the element at index, plus the
// removed element.
func RemoveAt[T any](seq []T, index int) ([]T, T, error) {
	var zero T
	if index < 0 || index >= len(seq) {
		return seq, zero, fmt.Errorf("remove at %d (len %d): %w", index, len(seq), ErrIndexOutOfRange)
	}
	out := make([]T, 0, len(seq)-1)
	out = append(out, seq[:index]...)
	out = append(out, seq[index+1:]...)
	return out, seq[index], nil
}

// ReplaceAt returns a new sequence with the element at index swapped for v
func ReplaceAt[T any](seq []T, index int, v T) ([]T, error) {
	if index < 0 || index >= len(seq) {
		return seq, fmt.Errorf("replace at %d (len %d): %w", index, len(seq), ErrIndexOutOfRange)
	}
	out := make([]T, len(seq))
	copy(out, seq)
	out[index] = v
	return out, nil
}

// Renumber assigns dense orders (order == index) to a sequence. Elements that
// already carry the right order are kept as-is; the others are rebuilt through
// withOrder, which must return a fresh value rather than edit its argument.
// The input slice is never written to.
func Renumber[T any](seq []T, orderOf func(T) int, withOrder func(T, int) T) []T {
	out := make([]T, len(seq))
	for i, v := range seq {
		if orderOf(v) == i {
			out[i] = v
			continue
		}
		out[i] = withOrder(v, i)
	}
	return out
}

// Clamp limits index to [0, n]. Used when replaying a previously valid
// position against a sequence that has since shrunk.
func Clamp(index, n int) int {
	if index < 0 {
		return 0
	}
	if index > n {
		return n
	}
	return index
}
