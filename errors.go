package gocrypto

import "fmt"

// Kind classifies a failure returned by any primitive in this module.
type Kind uint8

const (
	// InvalidParameter marks a malformed or out-of-range argument.
	InvalidParameter Kind = iota
	// InvalidPublicKey marks a public key that fails its domain checks.
	InvalidPublicKey
	// InvalidPrivateKey marks a private key that fails its domain checks
	// or a signing loop that exhausted its retry budget.
	InvalidPrivateKey
	// VerificationFailed marks a signature, MAC, or AEAD tag that did not
	// match. Never split further: see Error's doc comment on oracles.
	VerificationFailed
	// UnpaddingNotMatch marks padding that failed to parse on decrypt.
	UnpaddingNotMatch
	// NotSupportUsage marks a cipher/digest asked to do something it was
	// not built to do (e.g. a SHA-3 sponge asked to absorb after squeezing
	// has started).
	NotSupportUsage
	// RandError marks a failure reading from the random source.
	RandError
	// InnerErr wraps a failure from a collaborator (big integer library,
	// underlying block cipher, I/O) that this package cannot classify.
	InnerErr
	// OuterErr marks misuse of the API by the caller (e.g. writing to a
	// finished stream) rather than a cryptographic failure.
	OuterErr
)

func (k Kind) String() string {
	switch k {
	case InvalidParameter:
		return "InvalidParameter"
	case InvalidPublicKey:
		return "InvalidPublicKey"
	case InvalidPrivateKey:
		return "InvalidPrivateKey"
	case VerificationFailed:
		return "VerificationFailed"
	case UnpaddingNotMatch:
		return "UnpaddingNotMatch"
	case NotSupportUsage:
		return "NotSupportUsage"
	case RandError:
		return "RandError"
	case InnerErr:
		return "InnerErr"
	case OuterErr:
		return "OuterErr"
	default:
		return "Unknown"
	}
}

// Error is the two-field error value every fallible operation in this
// module returns: a Kind the caller can switch on, and a Message for
// diagnostics. Message is never parsed by callers.
//
// Padding and OAEP/PKCS#1 decode failures are always reported as
// VerificationFailed or UnpaddingNotMatch without indicating which step of
// the decode failed, to avoid turning a decryption oracle into a padding
// oracle. Callers must not branch on Message to recover the distinction.
type Error struct {
	Kind    Kind
	Message string
	Err     error // wrapped cause, if any
}

func (e *Error) Error() string {
	if e.Message == "" {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// Is allows errors.Is(err, gocrypto.Sentinel(gocrypto.InvalidParameter))
// style checks by comparing Kind only; see Sentinel.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// New builds an *Error of the given kind with a formatted message.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap builds an *Error of the given kind around an underlying cause.
func Wrap(kind Kind, err error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Err: err}
}

// Sentinel returns a bare *Error of the given kind, suitable for use with
// errors.Is as a target: errors.Is(err, gocrypto.Sentinel(gocrypto.VerificationFailed)).
func Sentinel(kind Kind) *Error { return &Error{Kind: kind} }
