package flow

// isSpace reports whether b is an ASCII whitespace byte.
func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	default:
		return false
	}
}

// skipSpaces advances pos while buf[pos] is ASCII whitespace, bounded by
// len(buf).
func skipSpaces(buf []byte, pos int) int {
	for pos < len(buf) && isSpace(buf[pos]) {
		pos++
	}

	return pos
}

// skipUntil advances pos while buf[pos] != ch, bounded by len(buf).
func skipUntil(buf []byte, pos int, ch byte) int {
	for pos < len(buf) && buf[pos] != ch {
		pos++
	}

	return pos
}

// isKey reports whether b may appear in a key-token: ASCII letters, digits,
// and the set "-_?![].". The bracket and dot characters support indexed and
// dotted names.
func isKey(b byte) bool {
	switch {
	case b >= 'A' && b <= 'Z', b >= 'a' && b <= 'z', b >= '0' && b <= '9':
		return true
	}

	switch b {
	case '-', '_', '?', '!', '[', ']', '.':
		return true
	}

	return false
}

// isAllKey reports whether every byte of s satisfies isKey and s is
// non-empty.
func isAllKey(s string) bool {
	if s == "" {
		return false
	}

	for i := 0; i < len(s); i++ {
		if !isKey(s[i]) {
			return false
		}
	}

	return true
}

// isAllDigits reports whether s is a non-empty run of ASCII digits.
func isAllDigits(s string) bool {
	if s == "" {
		return false
	}

	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}

	return true
}

// trimSpan narrows [begin, end) to exclude leading and trailing ASCII
// whitespace, returning the tightened bounds. If the slice is entirely
// whitespace, the returned span is empty at begin.
func trimSpan(buf []byte, begin, end int) (int, int) {
	for begin < end && isSpace(buf[begin]) {
		begin++
	}

	for end > begin && isSpace(buf[end-1]) {
		end--
	}

	return begin, end
}

// hasPrefixAt reports whether buf[pos:] begins with s.
func hasPrefixAt(buf []byte, pos int, s string) bool {
	if pos+len(s) > len(buf) {
		return false
	}

	return string(buf[pos:pos+len(s)]) == s
}

// matchAny reports whether any of terms matches buf starting at pos.
func matchAny(buf []byte, pos int, terms []string) bool {
	for _, t := range terms {
		if hasPrefixAt(buf, pos, t) {
			return true
		}
	}

	return false
}

// balancedScan advances pos while the running paren depth is > 0, or the
// current byte is not among terminators, incrementing depth on '(' and
// decrementing on ')'. A ')' encountered at depth 0 always stops the scan —
// it belongs to an enclosing context. If a byte in forbidden appears at
// depth 0, log logs an Error with its associated message at that byte and
// the scan stops there too. Terminators are checked before forbidden bytes,
// so a multi-byte terminator (e.g. "|:") takes priority over a forbidden
// single byte it starts with (e.g. a lone '|').
func (p *Parser) balancedScan(
	pos int,
	terminators []string,
	forbidden map[byte]string,
) int {
	buf := p.src.Bytes()
	depth := 0

	for pos < len(buf) {
		c := buf[pos]

		switch {
		case c == '(':
			depth++
			pos++

			continue
		case c == ')':
			if depth == 0 {
				return pos
			}

			depth--
			pos++

			continue
		}

		if depth == 0 {
			if matchAny(buf, pos, terminators) {
				return pos
			}

			if msg, ok := forbidden[c]; ok {
				p.log.Emit(p.ctx, SourceParser, LevelError, msg, Span{Begin: pos, End: pos + 1}, nil)

				return pos
			}
		}

		pos++
	}

	return pos
}

// scanBalancedToken advances pos while the running paren depth is > 0, or
// the current byte is not whitespace, bounded by limit. It is used to
// delimit one worker substitution (e.g. "m=(b > f >> c)") within a worker's
// already-delimited slice, where whitespace inside a nested pipeline must
// not be mistaken for a token separator.
func scanBalancedToken(buf []byte, pos, limit int) int {
	depth := 0

	for pos < limit {
		c := buf[pos]

		switch {
		case c == '(':
			depth++
			pos++

			continue
		case c == ')':
			if depth == 0 {
				return pos
			}

			depth--
			pos++

			continue
		}

		if depth == 0 && isSpace(c) {
			return pos
		}

		pos++
	}

	return pos
}
