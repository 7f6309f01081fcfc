package flow

import (
	"context"
	"fmt"
	"log/slog"

	fclog "github.com/ardnew/flowc/log"
)

//go:generate go tool stringer --linecomment --type DiagSource,Level --output diag_string.go

// DiagSource identifies which component emitted a [Record].
type DiagSource int

const (
	SourceParser   DiagSource = iota // PARSER
	SourceWorkflow                   // WORKFLOW
)

// Level is the severity of a diagnostic [Record].
type Level int

const (
	LevelInfo    Level = iota // INFO
	LevelNote                 // NOTE
	LevelWarning              // WARNING
	LevelError                // ERROR
)

// RecordID is a stable handle to a [Record] in a [Log]. Unlike a pointer
// into a reallocating slice, a RecordID remains valid no matter how many
// further records are appended.
type RecordID int

// Record is one structured diagnostic: a source component, a severity, a
// message, the span it pertains to, and an optional back-reference to a
// prior, related record.
type Record struct {
	ID         RecordID
	Source     DiagSource
	Level      Level
	Message    string
	Span       Span
	Associated *RecordID
}

// Log is the append-only sequence of diagnostic [Record]s owned by a
// compilation. Emit never filters; every call produces a record. Records are
// additionally mirrored, one [slog] record apiece, to an ambient [fclog.Logger]
// side channel whose output stream and format are configured by the caller.
//
// Log is not safe for concurrent use; the front-end is single-threaded.
type Log struct {
	records []Record
	logger  fclog.Logger
	src     *Source
}

// NewLog returns an empty [Log] that mirrors records through logger,
// annotating each with the (line, col) that src gives for its span.
func NewLog(logger fclog.Logger, src *Source) *Log {
	return &Log{logger: logger, src: src}
}

// Emit appends a new [Record] and returns its stable [RecordID]. If
// associated is non-nil it must name a record already present in the log.
func (l *Log) Emit(
	ctx context.Context,
	source DiagSource,
	level Level,
	message string,
	span Span,
	associated *RecordID,
) RecordID {
	id := RecordID(len(l.records))
	l.records = append(l.records, Record{
		ID:         id,
		Source:     source,
		Level:      level,
		Message:    message,
		Span:       span,
		Associated: associated,
	})

	l.sideChannel(ctx, l.records[id])

	return id
}

// Records returns the full sequence of emitted records, in emission order.
func (l *Log) Records() []Record { return l.records }

// Len returns the number of records in the log.
func (l *Log) Len() int { return len(l.records) }

// Get returns the record with the given id, or false if id is out of range.
func (l *Log) Get(id RecordID) (Record, bool) {
	if id < 0 || int(id) >= len(l.records) {
		return Record{}, false
	}

	return l.records[id], true
}

// HasErrors reports whether any record at [LevelError] was emitted.
func (l *Log) HasErrors() bool {
	for _, r := range l.records {
		if r.Level == LevelError {
			return true
		}
	}

	return false
}

// sideChannel mirrors rec to the ambient logger at the slog level matching
// rec.Level.
func (l *Log) sideChannel(ctx context.Context, rec Record) {
	attrs := []slog.Attr{
		slog.String("source", rec.Source.String()),
		slog.Int("span.begin", rec.Span.Begin),
		slog.Int("span.end", rec.Span.End),
	}
	if l.src != nil {
		line, col := l.src.Locate(rec.Span.Begin)
		attrs = append(attrs, slog.Int("line", line), slog.Int("col", col))
	}
	if rec.Associated != nil {
		attrs = append(attrs, slog.Int("associated", int(*rec.Associated)))
	}

	switch rec.Level {
	case LevelInfo:
		l.logger.InfoContext(ctx, rec.Message, attrs...)
	case LevelNote:
		l.logger.DebugContext(ctx, rec.Message, attrs...)
	case LevelWarning:
		l.logger.WarnContext(ctx, rec.Message, attrs...)
	case LevelError:
		l.logger.ErrorContext(ctx, rec.Message, attrs...)
	default:
		l.logger.InfoContext(ctx, rec.Message, attrs...)
	}
}

// FormatRecord renders rec in its canonical text form:
//
//	<SOURCE>::<LEVEL>:<file>:<line>:<col> <message>
//	[at <source-slice>]
//
// followed by a third "(see also: ...)" line when rec.Associated is set.
// This is the textual shape a CLI prints; the front-end itself never writes
// it unprompted.
func FormatRecord(src *Source, file string, rec Record) string {
	line, col := 0, 0
	if src != nil {
		line, col = src.Locate(rec.Span.Begin)
	}

	slice := ""
	if src != nil {
		slice = src.Text(rec.Span)
	}

	out := fmt.Sprintf(
		"%s::%s:%s:%d:%d %s\n[at %s]",
		rec.Source.String(), rec.Level.String(), file, line, col, rec.Message, slice,
	)

	if rec.Associated != nil {
		out += fmt.Sprintf("\n(see also: record #%d)", *rec.Associated)
	}

	return out
}
