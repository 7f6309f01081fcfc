package flow

import (
	"context"
	"fmt"
)

// Parser is a recursive-descent parser for the FlowDSL grammar. It recovers
// from local errors by logging a diagnostic and returning the furthest
// position it reached; callers continue at that position. There is no global
// error flag and no exceptions — a malformed file still parses to EOF.
type Parser struct {
	src *Source
	log *Log
	ctx context.Context //nolint:containedctx // threaded through recursive descent for diagnostic emission
}

// NewParser returns a [Parser] over src, emitting diagnostics to log.
func NewParser(ctx context.Context, src *Source, log *Log) *Parser {
	return &Parser{src: src, log: log, ctx: ctx}
}

// ParseProgram parses the entire source buffer into a [Program]. The loop
// guarantees termination: if a definition parse makes no progress, the loop
// forces a one-byte advance.
func (p *Parser) ParseProgram() *Program {
	prog := &Program{
		FileName: p.src.Name(),
		Source:   p.src,
		Log:      p.log,
	}

	buf := p.src.Bytes()
	pos := 0

	for pos < len(buf) {
		def, next := p.parseDefinition(pos)
		if def != nil {
			prog.Definitions = append(prog.Definitions, def)
		}

		if next <= pos {
			next = pos + 1
		}

		pos = next
	}

	return prog
}

// parseDefinition parses one top-level form: a '#' comment (consumed through
// end of line, no node produced) or a definition — its pipelines, the '|:'
// separator, the definition name, and its optional pipeline-variable tuple
// and free-variable braces.
func (p *Parser) parseDefinition(pos int) (*Definition, int) {
	buf := p.src.Bytes()
	pos = skipSpaces(buf, pos)

	if pos >= len(buf) {
		return nil, pos
	}

	if buf[pos] == '#' {
		pos = skipUntil(buf, pos, '\n')
		if pos < len(buf) {
			pos++ // consume the newline
		}

		return nil, pos
	}

	begin := pos
	def := &Definition{}

	next := p.parsePipelineMany(pos, def)
	if next == pos {
		p.emit(LevelError, "parsed empty pipeline", Span{Begin: pos, End: pos})
		next = pos + 1
	}

	pos = skipSpaces(buf, next)

	if !hasPrefixAt(buf, pos, "|:") {
		p.emit(LevelError, "Expected `|:` after pipeline", Span{Begin: pos, End: min(pos+2, len(buf))})
		def.Span = Span{Begin: begin, End: pos}

		return def, pos
	}

	pos = skipSpaces(buf, pos+2)

	nameBegin := pos
	for pos < len(buf) && isKey(buf[pos]) {
		pos++
	}

	def.Name = string(buf[nameBegin:pos])

	pos = skipSpaces(buf, pos)
	if pos < len(buf) && buf[pos] == '(' {
		pos = p.parseNameList(pos, ')', &def.PipelineVars, MaxPipelineVariables, "pipeline variable")
	}

	pos = skipSpaces(buf, pos)
	if pos < len(buf) && buf[pos] == '{' {
		pos = p.parseNameList(pos, '}', &def.FreeVars, MaxFreeVariables, "free variable")
	}

	def.Span = Span{Begin: begin, End: pos}

	return def, pos
}

// parseNameList parses a comma-separated, open/close-delimited list of
// key-token names (pipeline-variable tuples and free-variable braces share
// this shape). Empty names and missing separators are diagnosed but never
// stall the scan.
func (p *Parser) parseNameList(
	pos int,
	closeCh byte,
	names *[]string,
	limit int,
	label string,
) int {
	buf := p.src.Bytes()
	pos++ // consume the opening delimiter

	for {
		pos = skipSpaces(buf, pos)

		if pos >= len(buf) {
			p.emit(LevelError, fmt.Sprintf("Unterminated %s list: missing %q", label, string(closeCh)), Span{Begin: pos, End: pos})

			return pos
		}

		if buf[pos] == closeCh {
			return pos + 1
		}

		begin := pos
		for pos < len(buf) && isKey(buf[pos]) {
			pos++
		}

		switch {
		case pos == begin:
			p.emit(LevelError, fmt.Sprintf("Expected non-empty %s name", label), Span{Begin: begin, End: begin + 1})
			pos = begin + 1
		case len(*names) >= limit:
			p.emit(LevelError, fmt.Sprintf("too many %s names", label), Span{Begin: begin, End: pos})
		default:
			*names = append(*names, string(buf[begin:pos]))
		}

		pos = skipSpaces(buf, pos)

		switch {
		case pos < len(buf) && buf[pos] == ',':
			pos++
		case pos < len(buf) && buf[pos] == closeCh:
			// handled at the top of the loop
		default:
			p.emit(LevelError, fmt.Sprintf("Expected ',' before next %s name", label), Span{Begin: pos, End: min(pos+1, len(buf))})
			if pos < len(buf) {
				pos++
			}
		}
	}
}

// parsePipelineMany implements parse_pipeline_many: a brace-delimited,
// ';'-separated group of pipelines, or a single bare pipeline.
func (p *Parser) parsePipelineMany(pos int, def *Definition) int {
	buf := p.src.Bytes()
	start := pos
	pos = skipSpaces(buf, pos)

	if pos >= len(buf) || buf[pos] != '{' {
		pl, next := p.parsePipeline(pos)
		def.Pipelines = append(def.Pipelines, pl)

		return next
	}

	pos++ // consume '{'

	for {
		pos = skipSpaces(buf, pos)

		if pos >= len(buf) {
			p.emit(LevelError, "Unterminated pipeline group: missing '}'", Span{Begin: start, End: pos})

			return pos
		}

		if buf[pos] == '}' {
			return pos + 1
		}

		if len(def.Pipelines) >= MaxPipelinesPerDefinition {
			p.emit(LevelError, "too many pipelines in definition", Span{Begin: pos, End: pos + 1})
			pos = skipUntil(buf, pos, '}')

			if pos < len(buf) {
				pos++
			}

			return pos
		}

		before := pos

		pl, next := p.parsePipeline(pos)
		def.Pipelines = append(def.Pipelines, pl)
		pos = next

		if pos == before {
			pos++
		}

		pos = skipSpaces(buf, pos)

		switch {
		case pos < len(buf) && buf[pos] == ';':
			pos++
		case pos < len(buf) && buf[pos] == '}':
			// handled at the top of the loop
		default:
			p.emit(LevelError, "Expected ';' or '}' in pipeline group", Span{Begin: pos, End: min(pos+1, len(buf))})
		}
	}
}

// parsePipeline implements the three-phase parse_pipeline state machine:
// Args -> Workers -> (Outputs | Done).
func (p *Parser) parsePipeline(pos int) (*Pipeline, int) {
	begin := pos
	pl := &Pipeline{}

	pos = p.parseArguments(pos, pl)

	var viaOutputs bool
	pos, viaOutputs = p.parseWorkers(pos, pl)

	if viaOutputs {
		pos = p.parseOutputs(pos, pl)
	}

	pl.Span = Span{Begin: begin, End: pos}

	return pl, pos
}

// parseArguments implements the arguments phase.
func (p *Parser) parseArguments(pos int, pl *Pipeline) int {
	buf := p.src.Bytes()

	for {
		pos = skipSpaces(buf, pos)

		if pos >= len(buf) || buf[pos] == '>' {
			return pos
		}

		if len(pl.Arguments) >= MaxPipelineArguments {
			p.emit(LevelError, "too many arguments in pipeline", Span{Begin: pos, End: pos + 1})

			return p.balancedScan(pos, []string{">"}, nil)
		}

		before := pos

		arg, next := p.parseArgument(pos)
		if arg != nil {
			pl.Arguments = append(pl.Arguments, arg)
		}

		pos = next
		if pos == before {
			pos++
		}

		pos = skipSpaces(buf, pos)

		switch {
		case pos < len(buf) && buf[pos] == ',':
			pos++
		case pos < len(buf) && buf[pos] == '>':
			// handled at the top of the loop
		default:
			p.emit(LevelError, "Expected ',' or '>' after pipeline argument", Span{Begin: pos, End: min(pos+1, len(buf))})

			return pos
		}
	}
}

// parseArgument parses one pipeline argument: either a parenthesised inline
// pipeline, or a key-token pipe name.
func (p *Parser) parseArgument(pos int) (*Argument, int) {
	buf := p.src.Bytes()
	begin := pos
	end := p.balancedScan(pos, []string{",", ">"}, nil)
	tb, te := trimSpan(buf, begin, end)

	if tb >= te {
		return nil, end
	}

	if buf[tb] == '(' && buf[te-1] == ')' {
		inner, innerEnd := p.parsePipeline(tb + 1)
		if innerEnd < te-1 {
			p.emit(LevelError, "Unterminated inline pipeline: missing ')'", Span{Begin: tb, End: te})
		}

		return &Argument{Kind: ArgumentInlinePipeline, Span: Span{Begin: tb, End: te}, Inline: inner}, end
	}

	text := string(buf[tb:te])
	if !isAllKey(text) {
		p.emit(LevelError, "Invalid character in pipe name", Span{Begin: tb, End: te})

		return nil, end
	}

	return &Argument{Kind: ArgumentName, Span: Span{Begin: tb, End: te}, Name: text}, end
}

// parseWorkers implements the workers phase, returning the position it
// stopped at and whether it stopped because of '>>' (entering the outputs
// phase) as opposed to '|:', ';', '}', ')', or EOF.
func (p *Parser) parseWorkers(pos int, pl *Pipeline) (int, bool) {
	buf := p.src.Bytes()

	for {
		pos = skipSpaces(buf, pos)

		switch {
		case pos >= len(buf):
			return pos, false
		case hasPrefixAt(buf, pos, ">>"):
			return pos + 2, true
		case hasPrefixAt(buf, pos, "|:"), buf[pos] == ';', buf[pos] == '}', buf[pos] == ')':
			return pos, false
		}

		if buf[pos] != '>' {
			p.emit(LevelError, "Expected '>' before worker", Span{Begin: pos, End: pos + 1})

			return pos, false
		}

		pos++ // consume the single '>'

		if len(pl.Workers) >= MaxWorkersPerPipeline {
			p.emit(LevelError, "too many workers in pipeline", Span{Begin: pos, End: min(pos+1, len(buf))})

			return p.balancedScan(pos, []string{"|:", ";", "}"}, nil), false
		}

		before := pos

		w, next := p.parseWorker(pos)
		if w != nil {
			pl.Workers = append(pl.Workers, w)
		}

		pos = next
		if pos == before {
			pos++
		}
	}
}

// parseWorker parses one worker: a leading key-token name followed by zero
// or more whitespace-separated substitutions.
func (p *Parser) parseWorker(pos int) (*Worker, int) {
	buf := p.src.Bytes()
	begin := pos
	forbidden := map[byte]string{
		'|': "Symbol '|' inside worker definition. Probably forgot to end previous definition",
	}
	end := p.balancedScan(pos, []string{">", "|:", ";", "}"}, forbidden)
	tb, te := trimSpan(buf, begin, end)

	if tb >= te {
		return nil, end
	}

	nameEnd := tb
	for nameEnd < te && isKey(buf[nameEnd]) {
		nameEnd++
	}

	w := &Worker{Name: string(buf[tb:nameEnd]), Span: Span{Begin: tb, End: te}}

	rest := nameEnd
	for {
		rest = skipSpaces(buf, rest)
		if rest >= te {
			break
		}

		subBegin := rest
		subEnd := scanBalancedToken(buf, rest, te)

		sub := p.parseSubstitution(subBegin, subEnd)
		if sub != nil {
			if len(w.Substitutions) < MaxWorkerSubstitutions {
				w.Substitutions = append(w.Substitutions, sub)
			} else {
				p.emit(LevelError, "too many substitutions on worker", Span{Begin: subBegin, End: subEnd})
			}
		}

		rest = subEnd
		if rest == subBegin {
			rest++
		}
	}

	return w, end
}

// parseSubstitution parses one "name=value" token, already delimited to
// [begin, end) by the caller. value is either a key-token symbol or a
// parenthesised nested pipeline.
func (p *Parser) parseSubstitution(begin, end int) *Substitution {
	buf := p.src.Bytes()

	eq := -1
	for i := begin; i < end; i++ {
		if buf[i] == '=' {
			eq = i

			break
		}
	}

	if eq < 0 {
		p.emit(LevelError, "Expected '=' in substitution", Span{Begin: begin, End: end})

		return nil
	}

	name := string(buf[begin:eq])
	if !isAllKey(name) {
		p.emit(LevelError, "Invalid substitution name", Span{Begin: begin, End: eq})

		return nil
	}

	valBegin, valEnd := eq+1, end

	if valEnd-valBegin >= 2 && buf[valBegin] == '(' && buf[valEnd-1] == ')' {
		inner, innerEnd := p.parsePipeline(valBegin + 1)
		if innerEnd < valEnd-1 {
			p.emit(LevelError, "Unterminated inline pipeline: missing ')'", Span{Begin: valBegin, End: valEnd})
		}

		return &Substitution{Name: name, Kind: SubstitutionPipeline, Span: Span{Begin: begin, End: end}, Pipeline: inner}
	}

	symbol := string(buf[valBegin:valEnd])
	if !isAllKey(symbol) {
		p.emit(LevelError, "Invalid substitution symbol", Span{Begin: valBegin, End: valEnd})

		return nil
	}

	return &Substitution{Name: name, Kind: SubstitutionSymbol, Span: Span{Begin: begin, End: end}, Symbol: symbol}
}

// parseOutputs implements the outputs phase, entered only after the workers
// phase breaks on '>>'.
func (p *Parser) parseOutputs(pos int, pl *Pipeline) int {
	buf := p.src.Bytes()

	for {
		pos = skipSpaces(buf, pos)

		switch {
		case pos >= len(buf):
			return pos
		case hasPrefixAt(buf, pos, "|:"), buf[pos] == ';', buf[pos] == ')', buf[pos] == '}':
			return pos
		}

		if len(pl.Outputs) >= MaxOutputsPerPipeline {
			p.emit(LevelError, "too many outputs in pipeline", Span{Begin: pos, End: pos + 1})

			return p.balancedScan(pos, []string{"|:", ";", "}", ")"}, nil)
		}

		begin := pos
		forbidden := map[byte]string{
			'>': "Symbol '>' inside output list. Probably forgot that '>>' was already consumed",
			'|': "Symbol '|' inside output list. Probably forgot to end previous definition",
		}
		end := p.balancedScan(pos, []string{",", "|:", ";", "}"}, forbidden)
		tb, te := trimSpan(buf, begin, end)
		text := string(buf[tb:te])

		switch {
		case !isAllKey(text):
			p.emit(LevelError, "Invalid output name", Span{Begin: tb, End: te})
		default:
			pl.Outputs = append(pl.Outputs, &Output{Name: text, Span: Span{Begin: tb, End: te}})
		}

		pos = end
		if pos == begin {
			pos++
		}

		pos = skipSpaces(buf, pos)

		switch {
		case pos < len(buf) && buf[pos] == ',':
			pos++
		case pos < len(buf) && (hasPrefixAt(buf, pos, "|:") || buf[pos] == ';' || buf[pos] == '}' || buf[pos] == ')'):
			// handled at the top of the loop
		default:
			p.emit(LevelError, "Expected ',' between outputs", Span{Begin: pos, End: min(pos+1, len(buf))})

			return pos
		}
	}
}

// emit logs a Parser diagnostic at the parser's current context.
func (p *Parser) emit(level Level, message string, span Span) RecordID {
	return p.log.Emit(p.ctx, SourceParser, level, message, span, nil)
}
