package picojson

// SliceParser pulls events out of an in-memory byte slice. It is the
// simplest of the three front-ends: the whole document is already resident,
// so a string with no escapes can be returned as a zero-copy Borrowed view
// straight into the caller's slice, and only a string containing an escape
// needs a copy into the parser's own scratch buffer.
type SliceParser[T bucket] struct {
	input []byte
	pos   int
	tok   Tokenizer[T]
	cfg   NumberConfig

	scratch unescapeBuffer
	unicode unicodeEscapeEngine

	numStart int
	strStart int

	pending    []Event
	pendingLen int

	done bool
}

// NewSliceParser returns a parser over input using the given scratch
// buffer capacity for unescaped string content and the given numeric
// configuration, with the default 32-level nesting depth. Use
// NewSliceParserDepth for a different compile-time depth budget.
func NewSliceParser(input []byte, scratchCapacity int, cfg NumberConfig) *SliceParser[uint32] {
	return NewSliceParserDepth[uint32](input, scratchCapacity, cfg)
}

// NewSliceParserDepth is NewSliceParser with the nesting stack's bucket type
// selected explicitly: uint8 allows 8 levels, uint16 16, uint32 32, uint64 64.
func NewSliceParserDepth[T bucket](input []byte, scratchCapacity int, cfg NumberConfig) *SliceParser[T] {
	return &SliceParser[T]{
		input:   input,
		tok:     NewTokenizer[T](),
		cfg:     cfg,
		scratch: *newUnescapeBuffer(scratchCapacity),
	}
}

func (p *SliceParser[T]) queue(e Event) { p.pending = append(p.pending[:p.pendingLen], e); p.pendingLen++ }

func (p *SliceParser[T]) queueEvents(evs tokEvents) error {
	for i := 0; i < evs.n; i++ {
		ev, ok, err := p.translate(evs.e[i])
		if err != nil {
			return err
		}
		if ok {
			p.queue(ev)
		}
	}
	return nil
}

func (p *SliceParser[T]) popPending() (Event, bool) {
	if p.pendingLen == 0 {
		return Event{}, false
	}
	e := p.pending[0]
	p.pending = p.pending[1:]
	p.pendingLen--
	return e, true
}

// Next returns the next event. Once EventEndDocument has been returned,
// further calls return it again, matching this package's pull-parser
// contract.
func (p *SliceParser[T]) Next() (Event, error) {
	if e, ok := p.popPending(); ok {
		return e, nil
	}
	if p.done {
		return Event{Kind: EventEndDocument}, nil
	}

	for {
		if p.pos >= len(p.input) {
			evs, err := p.tok.Finish()
			if err != nil {
				return Event{}, err
			}
			if err := p.queueEvents(evs); err != nil {
				return Event{}, err
			}
			p.done = true
			p.queue(Event{Kind: EventEndDocument})
			return p.Next()
		}

		b := p.input[p.pos]

		if sub, active := p.tok.stringState(); active {
			switch sub {
			case ssNormal:
				if b != '"' && b != '\\' {
					if p.unicode.hasOrphanPending() {
						return Event{}, newError(ErrInvalidUnicodeCodepoint, b, p.pos, p.tok.Line(), p.tok.Column())
					}
					if p.scratch.isActive() {
						if !p.scratch.appendByte(b) {
							return Event{}, newError(ErrScratchBufferFull, b, p.pos, p.tok.Line(), p.tok.Column())
						}
					}
				}
			case ssUnicode0, ssUnicode1, ssUnicode2, ssUnicode3:
				p.unicode.hex.push(b)
			}
		}

		evs, err := p.tok.Process(b)
		p.pos++
		if err != nil {
			return Event{}, err
		}

		if err := p.queueEvents(evs); err != nil {
			return Event{}, err
		}
		if e, ok := p.popPending(); ok {
			return e, nil
		}
	}
}

func (p *SliceParser[T]) translate(ev tokEvent) (Event, bool, error) {
	switch ev.kind {
	case tokObjectStart:
		return Event{Kind: EventStartObject, Pos: ev.pos, Line: ev.line, Column: ev.col}, true, nil
	case tokObjectEnd:
		return Event{Kind: EventEndObject, Pos: ev.pos, Line: ev.line, Column: ev.col}, true, nil
	case tokArrayStart:
		return Event{Kind: EventStartArray, Pos: ev.pos, Line: ev.line, Column: ev.col}, true, nil
	case tokArrayEnd:
		return Event{Kind: EventEndArray, Pos: ev.pos, Line: ev.line, Column: ev.col}, true, nil
	case tokBegin:
		return p.handleBegin(ev)
	case tokEnd:
		return p.handleEnd(ev)
	}
	return Event{}, false, nil
}

func (p *SliceParser[T]) handleBegin(ev tokEvent) (Event, bool, error) {
	switch ev.tt {
	case tokTTString, tokTTKey:
		p.strStart = ev.pos + 1
		p.scratch.reset()
		p.unicode.resetFull()
	case tokTTNumber:
		p.numStart = ev.pos
	case tokTTEscapeSequence:
		if !p.scratch.isActive() {
			if !p.scratch.beginEscape(p.input[p.strStart:ev.pos]) {
				return Event{}, false, newError(ErrScratchBufferFull, '\\', ev.pos, ev.line, ev.col)
			}
		}
	}
	return Event{}, false, nil
}

func (p *SliceParser[T]) handleEnd(ev tokEvent) (Event, bool, error) {
	switch ev.tt {
	case tokTTString, tokTTKey:
		if p.unicode.hasOrphanPending() {
			return Event{}, false, newError(ErrInvalidUnicodeCodepoint, '"', ev.pos, ev.line, ev.col)
		}
		kind := EventString
		if ev.tt == tokTTKey {
			kind = EventKey
		}
		var sv StringValue
		if p.scratch.isActive() {
			sv = StringValue{Bytes: p.scratch.bytes(), Kind: Unescaped}
		} else {
			sv = StringValue{Bytes: p.input[p.strStart:ev.pos], Kind: Borrowed}
		}
		return Event{Kind: kind, Str: sv, Pos: ev.pos, Line: ev.line, Column: ev.col}, true, nil

	case tokTTEscapeQuote, tokTTEscapeBackslash, tokTTEscapeSlash, tokTTEscapeBackspace,
		tokTTEscapeFormFeed, tokTTEscapeNewline, tokTTEscapeCarriageReturn, tokTTEscapeTab:
		if p.unicode.hasOrphanPending() {
			return Event{}, false, newError(ErrInvalidUnicodeCodepoint, 0, ev.pos, ev.line, ev.col)
		}
		decoded, _, _ := decodeSimpleEscape(simpleEscapeLetter(ev.tt))
		if !p.scratch.isActive() {
			if !p.scratch.beginEscape(p.input[p.strStart : ev.pos-1]) {
				return Event{}, false, newError(ErrScratchBufferFull, decoded, ev.pos, ev.line, ev.col)
			}
		}
		if !p.scratch.appendByte(decoded) {
			return Event{}, false, newError(ErrScratchBufferFull, decoded, ev.pos, ev.line, ev.col)
		}

	case tokTTUnicodeEscape:
		out, n, err := p.unicode.complete(ev.pos, ev.line, ev.col)
		if err != nil {
			return Event{}, false, err
		}
		if n > 0 {
			if !p.scratch.isActive() {
				// the escape's backslash is 5 bytes before its last hex digit: \ u X X X X
				escStart := ev.pos - 5
				if !p.scratch.beginEscape(p.input[p.strStart:escStart]) {
					return Event{}, false, newError(ErrScratchBufferFull, 0, ev.pos, ev.line, ev.col)
				}
			}
			if !p.scratch.appendBytes(out[:n]) {
				return Event{}, false, newError(ErrScratchBufferFull, 0, ev.pos, ev.line, ev.col)
			}
		}

	case tokTTNumber, tokTTNumberAndArray, tokTTNumberAndObject:
		raw := p.input[p.numStart:ev.pos]
		n, err := parseNumber(raw, p.cfg, ev.pos, ev.line, ev.col)
		if err != nil {
			return Event{}, false, err
		}
		return Event{Kind: EventNumber, Num: n, Pos: ev.pos, Line: ev.line, Column: ev.col}, true, nil

	case tokTTTrue:
		return Event{Kind: EventBool, Bool: true, Pos: ev.pos, Line: ev.line, Column: ev.col}, true, nil
	case tokTTFalse:
		return Event{Kind: EventBool, Bool: false, Pos: ev.pos, Line: ev.line, Column: ev.col}, true, nil
	case tokTTNull:
		return Event{Kind: EventNull, Pos: ev.pos, Line: ev.line, Column: ev.col}, true, nil
	}
	return Event{}, false, nil
}

func simpleEscapeLetter(tt tokTokenType) byte {
	switch tt {
	case tokTTEscapeQuote:
		return '"'
	case tokTTEscapeBackslash:
		return '\\'
	case tokTTEscapeSlash:
		return '/'
	case tokTTEscapeBackspace:
		return 'b'
	case tokTTEscapeFormFeed:
		return 'f'
	case tokTTEscapeNewline:
		return 'n'
	case tokTTEscapeCarriageReturn:
		return 'r'
	case tokTTEscapeTab:
		return 't'
	}
	return 0
}
