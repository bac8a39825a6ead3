package pagecrawler

import (
	"context"
	"strings"
)

// Record is the text extracted from a single page.
type Record struct {
	SourceURL string `json:"sourceUrl"`
	Text      string `json:"text"`
}

// Validate returns an error if the record contains invalid fields.
func (r *Record) Validate() error {
	if r.SourceURL == "" {
		return Errorf(EINVALID, "record source URL required")
	}
	if strings.TrimSpace(r.Text) == "" {
		return Errorf(EINVALID, "record text required")
	}
	return nil
}

// FormatRecord renders a record as a delimited block: a blank line, a
// separator naming the source URL, then the text.
func FormatRecord(r *Record) string {
	var b strings.Builder
	b.WriteString("\n\n=== Content from: ")
	b.WriteString(r.SourceURL)
	b.WriteString(" ===\n")
	b.WriteString(r.Text)
	return b.String()
}

// Sink receives extracted records.
type Sink interface {
	// Append writes the record. Implementations must serialize concurrent
	// callers so blocks are never interleaved.
	Append(ctx context.Context, r *Record) error
}

// MultiSink returns a Sink that appends to each sink in order,
// stopping at the first error.
func MultiSink(sinks ...Sink) Sink {
	return multiSink(sinks)
}

type multiSink []Sink

func (m multiSink) Append(ctx context.Context, r *Record) error {
	for _, s := range m {
		if err := s.Append(ctx, r); err != nil {
			return err
		}
	}
	return nil
}
