package logsim

import (
	"github.com/adam-bouafia/logsim/internal/column"
	"github.com/adam-bouafia/logsim/internal/query"
)

// Predicate is a node of the query predicate tree: severity membership,
// IPv4 equality, timestamp range, or a conjunction of the above.
type Predicate = query.Predicate

// Result is one matching line from Filter: its original position and its
// reconstructed text.
type Result = query.Result

// SeverityIn builds a `severity ∈ {values...}` predicate, case-insensitive.
func SeverityIn(values ...string) Predicate { return query.Severity(values...) }

// IPv4Equals builds an `ipv4 == a` predicate from a dotted-quad address
// string.
func IPv4Equals(addr string) Predicate {
	return query.IPv4Is(column.PackIPv4(addr))
}

// TimestampBetween builds a `ts ∈ [lo, hi]` predicate over epoch
// milliseconds, inclusive on both ends.
func TimestampBetween(loMillis, hiMillis int64) Predicate {
	return query.TimestampBetween(loMillis, hiMillis)
}

// And builds a conjunction of predicates, evaluated cheapest-first
// (severity, then IPv4, then timestamp range).
func And(preds ...Predicate) Predicate { return query.And(preds...) }
