package logsim

import (
	"github.com/sirupsen/logrus"

	"github.com/adam-bouafia/logsim/internal/container"
	"github.com/adam-bouafia/logsim/internal/query"
)

// Container is an opened, immutable, queryable container. Every method
// is safe for concurrent use by multiple goroutines: the underlying
// decoded body is read-only and column decode results are cached behind
// a mutex.
type Container struct {
	inner *container.Container
}

// Compress runs the full write pipeline over lines (tokenize, classify,
// extract templates, build columns, encode, entropy-wrap) and returns
// the assembled container bytes. The logger is optional; a nil logger
// falls back to logrus.StandardLogger(), matching the teacher's
// default-argument style.
func Compress(lines []string, cfg Config, log logrus.FieldLogger) ([]byte, error) {
	return container.Write(lines, cfg.ToOptions(), log)
}

// CompressToFile is like Compress, but publishes the result atomically to
// path: the container is written to a temporary file beside path and only
// moved into place once it is fully and successfully written, so no
// partial container is ever visible at path.
func CompressToFile(path string, lines []string, cfg Config, log logrus.FieldLogger) error {
	return container.WriteFile(path, lines, cfg.ToOptions(), log)
}

// Open parses and validates data as a container, advancing through the
// UNOPENED → HEADER_PARSED → BODY_DECODED → FOOTER_READ → READY state
// machine. Any validation failure returns a typed Error identifying the
// offending section; the entropy pass is decoded exactly once into an
// owned buffer, and column blocks are decoded lazily, only for columns a
// later Filter or Count call actually touches.
func Open(data []byte, log logrus.FieldLogger) (*Container, error) {
	inner, err := container.Open(data, log)
	if err != nil {
		return nil, err
	}
	return &Container{inner: inner}, nil
}

// Count returns the container's total line count in O(1), reading only
// the footer.
func (c *Container) Count() uint64 { return query.Count(c.inner) }

// Filter evaluates pred and returns the first limit matches in input
// order (all matches if limit <= 0). Evaluating pred decodes only the
// columns pred references; rendering the matched lines decodes the
// remaining columns of the templates they belong to.
func (c *Container) Filter(pred Predicate, limit int) ([]Result, error) {
	return query.Filter(c.inner, pred, limit)
}

// NTemplates returns the number of distinct templates recovered for this
// container.
func (c *Container) NTemplates() int { return c.inner.NTemplates() }
