package logsim

import "github.com/adam-bouafia/logsim/internal/container"

// Kind is the closed set of container error kinds.
type Kind = container.Kind

// Error kinds, re-exported from the internal container package so callers
// never need to import an internal path to use errors.As(err, &logsim.Error{}).
const (
	InvalidMagic           = container.InvalidMagic
	UnsupportedVersion     = container.UnsupportedVersion
	TruncatedContainer     = container.TruncatedContainer
	ChecksumMismatch       = container.ChecksumMismatch
	UnknownCodecTag        = container.UnknownCodecTag
	TemplateBudgetExceeded = container.TemplateBudgetExceeded
	DictionaryIdOutOfRange = container.DictionaryIdOutOfRange
	VarintOverflow         = container.VarintOverflow
	EntropyDecodeFailed    = container.EntropyDecodeFailed
	MalformedSlot          = container.MalformedSlot
)

// Error is the typed, user-visible container error: every error carries
// a Kind, the Section it was detected in, a byte Offset (when
// meaningful), and a free-form Message. It satisfies the standard error
// interface and unwraps to any underlying cause, so errors.As and
// errors.Is both work as expected.
type Error = container.Error
