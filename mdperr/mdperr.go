// Package mdperr defines the engine's error kinds as a single tagged type,
// shared by every package that can fail (spaces, transition, reward, env)
// so callers can use errors.Is/errors.As instead of per-package sentinel
// hunting. The kinds themselves are fixed by the engine's error handling
// design: config-time failures, sampler precondition violations, and the
// two continuous-space recoveries that are logged rather than fatal.
package mdperr

import "fmt"

// Kind names one of the engine's error categories. It is not a type
// hierarchy - just a tag - so a single Error value can be matched with
// errors.Is against a Kind-carrying sentinel.
type Kind int

const (
	// ConfigInvalid marks a contradictory configuration detected at
	// construction time: mixed discrete/continuous spaces, mismatched
	// dimensionality, completely_connected with more relevant actions than
	// relevant states,
	// a malformed target_point, reward_density > 1, and similar.
	ConfigInvalid Kind = iota
	// RewardSetTooLarge marks reward_density implying more rewardable
	// sequences than the hard cap allows.
	RewardSetTooLarge
	// InvalidArgument marks a sampler precondition violation: a
	// without-replacement draw larger than the support, or a probability
	// vector of the wrong length or with negative entries.
	InvalidArgument
	// OutOfSpace marks an action outside the action Box. Continuous
	// engines recover from this locally (no-op step, logged warning) and
	// do not return it as an error.
	OutOfSpace
	// OutOfBounds marks a next state outside the observation Box.
	// Continuous engines recover by clipping and zeroing derivatives.
	OutOfBounds
	// TerminalStep marks Step being called after the episode already
	// terminated. Always fatal.
	TerminalStep
)

func (k Kind) String() string {
	switch k {
	case ConfigInvalid:
		return "ConfigInvalid"
	case RewardSetTooLarge:
		return "RewardSetTooLarge"
	case InvalidArgument:
		return "InvalidArgument"
	case OutOfSpace:
		return "OutOfSpace"
	case OutOfBounds:
		return "OutOfBounds"
	case TerminalStep:
		return "TerminalStep"
	default:
		return "Unknown"
	}
}

// Error is the engine's single error type. Kind selects the category,
// Msg carries the human-readable detail, and Cause optionally wraps an
// underlying error (e.g. from YAML decoding).
type Error struct {
	Kind  Kind
	Msg   string
	Cause error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error { return e.Cause }

// Is lets errors.Is(err, mdperr.Sentinel(mdperr.ConfigInvalid)) work by comparing Kind
// against a bare Kind sentinel wrapped as *Error.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// New constructs an *Error of the given kind.
func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

// Wrap constructs an *Error of the given kind, wrapping cause.
func Wrap(kind Kind, msg string, cause error) *Error {
	return &Error{Kind: kind, Msg: msg, Cause: cause}
}

// Sentinel returns a bare *Error usable with errors.Is(err, mdperr.Sentinel(Kind)).
func Sentinel(kind Kind) *Error { return &Error{Kind: kind} }
