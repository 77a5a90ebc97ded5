// Copyright (C) 2026, Benjamin Drung <bdrung@posteo.de>
// SPDX-License-Identifier: ISC

package psychrometry

// Kind classifies why a psychrometric calculation was rejected.
type Kind int

const (
	// KindValue marks an input that is invalid regardless of physical
	// bounds, e.g. a non-positive vapor pressure.
	KindValue Kind = iota + 1
	// KindRange marks a valid input outside of the supported range, e.g. a
	// relative humidity above 1.
	KindRange
	// KindConvergence is reserved for iterative inverse calculations that
	// fail to converge.
	KindConvergence
)

func (k Kind) String() string {
	switch k {
	case KindValue:
		return "value error"
	case KindRange:
		return "range error"
	case KindConvergence:
		return "convergence error"
	default:
		return "unknown error"
	}
}

// Error is returned by all calculations in this package. Calculations built
// on other calculations return their errors unchanged.
type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string {
	if e.Msg == "" {
		return e.Kind.String()
	}
	return e.Kind.String() + ": " + e.Msg
}

// Is matches any *Error of the same kind, so errors.Is(err, ErrRange)
// reports whether err is a range error.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

var (
	ErrValue       = &Error{Kind: KindValue}
	ErrRange       = &Error{Kind: KindRange}
	ErrConvergence = &Error{Kind: KindConvergence}
)

func valueError(msg string) error {
	return &Error{Kind: KindValue, Msg: msg}
}

func rangeError(msg string) error {
	return &Error{Kind: KindRange, Msg: msg}
}
