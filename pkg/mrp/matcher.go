package mrp

// Match is the half-open byte range [Start, End) of one occurrence of a
// match expression in a specific input string. It is only meaningful for
// that input.
type Match struct {
	input string
	Start int
	End   int
}

// String returns the matched substring.
func (m Match) String() string {
	return m.input[m.Start:m.End]
}

// FindAt returns the leftmost match in input at or after start.
func (e *MatchExpression) FindAt(input string, start int) (Match, bool) {
	return e.findAt(input, start, nil)
}

// FindAtCapturing is FindAt plus a capture store built fresh for this one
// attempt. The store is populated even for captures satisfied before a
// partial restart; on success every declared capture holds the value from
// the winning attempt.
func (e *MatchExpression) FindAtCapturing(input string, start int) (Match, *Captures, bool) {
	caps := &Captures{}
	m, ok := e.findAt(input, start, caps)
	return m, caps, ok
}

// findAt runs the match program over input with a single sweeping cursor
// and no backtracking.
//
// pos is the scan cursor, legitStart the candidate match start, and state
// the index of the next unsatisfied program element. An int capture always
// consumes the maximal digit run available; the engine never gives digits
// back to satisfy a later element, so a pattern like "(n:int)5" cannot
// match "1235" even though a shorter capture would fit.
func (e *MatchExpression) findAt(input string, start int, caps *Captures) (Match, bool) {
	var (
		pos        = start
		legitStart = start
		state      = 0
		capStart   = -1 // start of the in-progress int capture, if any
	)

	for state < len(e.exprs) && pos < len(input) {
		switch ex := e.exprs[state].(type) {
		case MatchLiteral:
			end := pos + len(ex.Text)
			if end > len(input) || input[pos:end] != ex.Text {
				// state survives a literal mismatch: elements satisfied
				// by earlier cursor positions stay satisfied and the
				// literal is retried one byte further on. See the
				// resumption tests in matcher_test.go.
				pos++
				legitStart = pos
				continue
			}
			state++
			pos = end

		case MatchCapture:
			switch ex.Type {
			case CaptureDigit:
				if isASCIIDigit(input[pos]) {
					record(caps, ex, input[pos:pos+1])
					state++
					pos++
				} else {
					pos++
					state = 0
				}

			case CaptureInt:
				switch {
				case isASCIIDigit(input[pos]):
					if capStart < 0 {
						capStart = pos
						if state == 0 {
							// An int capture may open the match.
							legitStart = pos
						}
					}
					pos++
					if pos == len(input) {
						record(caps, ex, input[capStart:pos])
						capStart = -1
						state++
					}
				case capStart >= 0:
					// First non-digit after one or more digits: finalize
					// without consuming it, it stays available to the
					// next program element.
					record(caps, ex, input[capStart:pos])
					capStart = -1
					state++
				default:
					pos++
					state = 0
				}
			}
		}
	}

	if state == len(e.exprs) {
		return Match{input: input, Start: legitStart, End: pos}, true
	}
	return Match{}, false
}

func record(caps *Captures, c MatchCapture, value string) {
	if caps != nil {
		caps.Put(c.key(), value)
	}
}

// Matches iterates successive non-overlapping matches left to right, each
// search resuming where the previous match ended.
type Matches struct {
	input   string
	expr    *MatchExpression
	lastEnd int
}

// FindIter returns an iterator over every match of e in input.
func (e *MatchExpression) FindIter(input string) *Matches {
	return &Matches{input: input, expr: e}
}

// Next returns the next match, or false once the cursor reaches the end of
// the input.
func (ms *Matches) Next() (Match, bool) {
	if ms.lastEnd >= len(ms.input) {
		return Match{}, false
	}

	m, ok := ms.expr.FindAt(ms.input, ms.lastEnd)
	if !ok {
		ms.lastEnd = len(ms.input)
		return Match{}, false
	}

	if m.End == ms.lastEnd {
		// Zero-width match (empty program); step forward to guarantee progress.
		ms.lastEnd++
	} else {
		ms.lastEnd = m.End
	}
	return m, true
}
