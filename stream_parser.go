package picojson

import "io"

// StreamParser pulls events from an io.Reader, using a fixed-capacity
// scratch buffer (streamBuffer) to stage input and assemble unescaped
// string content. Unlike SliceParser it never assumes the whole document
// is resident, so a Borrowed string's Bytes only alias the scratch
// buffer's pending region and are invalidated by the parser's next call.
type StreamParser[T bucket] struct {
	r   io.Reader
	tok Tokenizer[T]
	cfg NumberConfig

	buf     *streamBuffer
	unicode unicodeEscapeEngine

	strStart int // offset into buf.buf where current string content began
	numStart int
	escaping bool
	eof      bool
	done     bool

	pending    []Event
	pendingLen int
}

// NewStreamParser returns a parser reading from r with the given scratch
// buffer capacity, shared between pending input and unescaped output, with
// the default 32-level nesting depth. Use NewStreamParserDepth for a
// different compile-time depth budget.
func NewStreamParser(r io.Reader, scratchCapacity int, cfg NumberConfig) *StreamParser[uint32] {
	return NewStreamParserDepth[uint32](r, scratchCapacity, cfg)
}

// NewStreamParserDepth is NewStreamParser with the nesting stack's bucket
// type selected explicitly: uint8 allows 8 levels, uint16 16, uint32 32,
// uint64 64.
func NewStreamParserDepth[T bucket](r io.Reader, scratchCapacity int, cfg NumberConfig) *StreamParser[T] {
	return &StreamParser[T]{
		r:   r,
		tok: NewTokenizer[T](),
		cfg: cfg,
		buf: newStreamBuffer(scratchCapacity),
	}
}

func (p *StreamParser[T]) queue(e Event) { p.pending = append(p.pending[:p.pendingLen], e); p.pendingLen++ }

func (p *StreamParser[T]) queueEvents(evs tokEvents, i int) error {
	for k := 0; k < evs.n; k++ {
		ev, ok, err := p.translate(evs.e[k], i)
		if err != nil {
			return err
		}
		if ok {
			p.queue(ev)
		}
	}
	return nil
}

func (p *StreamParser[T]) popPending() (Event, bool) {
	if p.pendingLen == 0 {
		return Event{}, false
	}
	e := p.pending[0]
	p.pending = p.pending[1:]
	p.pendingLen--
	return e, true
}

func (p *StreamParser[T]) refill() error {
	if !p.buf.hasFree() {
		if shift := p.buf.compact(); shift > 0 {
			p.strStart -= shift
			p.numStart -= shift
		}
	}
	if !p.buf.hasFree() {
		return newError(ErrScratchBufferFull, 0, p.tok.Pos(), p.tok.Line(), p.tok.Column())
	}
	n, err := p.r.Read(p.buf.free())
	if n > 0 {
		p.buf.fill(n)
	}
	if err != nil {
		if err == io.EOF {
			p.eof = true
			return nil
		}
		return readerError(p.tok.Pos(), err)
	}
	return nil
}

// Next returns the next event from the stream.
func (p *StreamParser[T]) Next() (Event, error) {
	if e, ok := p.popPending(); ok {
		return e, nil
	}
	if p.done {
		return Event{Kind: EventEndDocument}, nil
	}

	for {
		if p.buf.empty() {
			if p.eof {
				evs, err := p.tok.Finish()
				if err != nil {
					return Event{}, err
				}
				if err := p.queueEvents(evs, p.buf.tokenizePos); err != nil {
					return Event{}, err
				}
				p.done = true
				p.queue(Event{Kind: EventEndDocument})
				return p.Next()
			}
			if err := p.refill(); err != nil {
				return Event{}, err
			}
			continue
		}

		b := p.buf.pending()[0]
		i := p.buf.tokenizePos // unadvanced index of b, mirrors PushParser's i

		if sub, active := p.tok.stringState(); active {
			switch sub {
			case ssNormal:
				if b != '"' && b != '\\' {
					if p.unicode.hasOrphanPending() {
						return Event{}, newError(ErrInvalidUnicodeCodepoint, b, p.tok.Pos(), p.tok.Line(), p.tok.Column())
					}
					if p.escaping {
						if !p.buf.appendUnescaped(b) {
							return Event{}, newError(ErrScratchBufferFull, b, p.tok.Pos(), p.tok.Line(), p.tok.Column())
						}
					}
				}
			case ssUnicode0, ssUnicode1, ssUnicode2, ssUnicode3:
				p.unicode.hex.push(b)
			}
		}

		evs, err := p.tok.Process(b)
		p.buf.consumeOne()
		if err != nil {
			return Event{}, err
		}

		if err := p.queueEvents(evs, i); err != nil {
			return Event{}, err
		}
		if e, ok := p.popPending(); ok {
			return e, nil
		}
	}
}

func (p *StreamParser[T]) translate(ev tokEvent, i int) (Event, bool, error) {
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
		return p.handleBegin(ev, i)
	case tokEnd:
		return p.handleEnd(ev, i)
	}
	return Event{}, false, nil
}

func (p *StreamParser[T]) handleBegin(ev tokEvent, i int) (Event, bool, error) {
	switch ev.tt {
	case tokTTString, tokTTKey:
		p.buf.resetUnescaped()
		p.strStart = i + 1
		p.escaping = false
		p.unicode.resetFull()
	case tokTTNumber:
		p.numStart = i
	case tokTTEscapeSequence:
		if !p.escaping {
			p.beginEscape(i)
		}
	}
	return Event{}, false, nil
}

// beginEscape copies everything seen so far in the current string (from
// strStart up to but excluding the escaping backslash at upTo) into the
// unescaped region, then marks the string as needing full reassembly.
func (p *StreamParser[T]) beginEscape(upTo int) {
	for i := p.strStart; i < upTo; i++ {
		p.buf.appendUnescaped(p.buf.buf[i])
	}
	p.escaping = true
}

func (p *StreamParser[T]) handleEnd(ev tokEvent, i int) (Event, bool, error) {
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
		if p.escaping {
			sv = StringValue{Bytes: p.buf.unescaped(), Kind: Unescaped}
		} else {
			sv = StringValue{Bytes: p.buf.buf[p.strStart:i], Kind: Borrowed}
		}
		return Event{Kind: kind, Str: sv, Pos: ev.pos, Line: ev.line, Column: ev.col}, true, nil

	case tokTTEscapeQuote, tokTTEscapeBackslash, tokTTEscapeSlash, tokTTEscapeBackspace,
		tokTTEscapeFormFeed, tokTTEscapeNewline, tokTTEscapeCarriageReturn, tokTTEscapeTab:
		if p.unicode.hasOrphanPending() {
			return Event{}, false, newError(ErrInvalidUnicodeCodepoint, 0, ev.pos, ev.line, ev.col)
		}
		decoded, _, _ := decodeSimpleEscape(simpleEscapeLetter(ev.tt))
		if !p.escaping {
			p.beginEscape(i - 1)
		}
		if !p.buf.appendUnescaped(decoded) {
			return Event{}, false, newError(ErrScratchBufferFull, decoded, ev.pos, ev.line, ev.col)
		}

	case tokTTUnicodeEscape:
		out, n, err := p.unicode.complete(ev.pos, ev.line, ev.col)
		if err != nil {
			return Event{}, false, err
		}
		if n > 0 {
			if !p.escaping {
				p.beginEscape(i - 5)
			}
			for k := 0; k < n; k++ {
				if !p.buf.appendUnescaped(out[k]) {
					return Event{}, false, newError(ErrScratchBufferFull, 0, ev.pos, ev.line, ev.col)
				}
			}
		}

	case tokTTNumber, tokTTNumberAndArray, tokTTNumberAndObject:
		raw := p.buf.buf[p.numStart:i]
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
