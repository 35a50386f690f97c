package sorting

import (
	"cmp"
	"strings"
)

// Reverse flips a comparator.
func Reverse[R any](fn func(a, b R) int) func(a, b R) int {
	return func(a, b R) int {
		return fn(b, a)
	}
}

// ByString compares rows by a string projection.
func ByString[R any](fn func(R) string) func(a, b R) int {
	return func(a, b R) int {
		return strings.Compare(fn(a), fn(b))
	}
}

// ByFold compares rows by a string projection, ignoring case.
func ByFold[R any](fn func(R) string) func(a, b R) int {
	return func(a, b R) int {
		return strings.Compare(strings.ToLower(fn(a)), strings.ToLower(fn(b)))
	}
}

// ByNumber compares rows by an ordered projection.
func ByNumber[R any, N cmp.Ordered](fn func(R) N) func(a, b R) int {
	return func(a, b R) int {
		return cmp.Compare(fn(a), fn(b))
	}
}

// Chain returns the first non zero result of fns.
func Chain[R any](fns ...func(a, b R) int) func(a, b R) int {
	return func(a, b R) int {
		for _, fn := range fns {
			if c := fn(a, b); c != 0 {
				return c
			}
		}
		return 0
	}
}
