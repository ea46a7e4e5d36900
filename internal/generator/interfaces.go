package generator

import (
	"github.com/toyz/artist/internal/poet"
)

// OutputSink persists assembled files. Both methods return the path written.
type OutputSink interface {
	// Write serializes f under dir as rendered.
	Write(f *poet.File, dir string) (string, error)
	// WriteFormatted pretty-prints f before writing it. A formatter failure
	// is reported as a format error naming the file.
	WriteFormatted(f *poet.File, dir string) (string, error)
}

// Reporter receives progress diagnostics from the engine.
type Reporter interface {
	Verbose(format string, args ...interface{})
	Debug(format string, args ...interface{})
}

type nopReporter struct{}

func (nopReporter) Verbose(string, ...interface{}) {}
func (nopReporter) Debug(string, ...interface{})   {}
