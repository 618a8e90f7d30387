package picojson

// Handler receives events from a PushParser as they occur. Implementations
// must not retain Event.Str.Bytes beyond the call: like every other
// front-end in this package, the backing bytes may be overwritten by the
// time the next event is delivered.
type Handler interface {
	OnEvent(Event) error
}

// PushParser is fed chunks of input directly by the caller (via Feed) rather
// than pulling from a slice or io.Reader. Each chunk's bytes are assumed
// valid only for the duration of the Feed call that supplies them: a string
// or number that does not complete within one chunk is copied into the
// parser's own scratch buffer so it survives into the next chunk, exactly
// as a multi-chunk escape forces the copy-on-escape path in the other
// front-ends.
type PushParser[T bucket] struct {
	h       Handler
	tok     Tokenizer[T]
	cfg     NumberConfig
	scratch unescapeBuffer
	numBuf  []byte
	unicode unicodeEscapeEngine

	chunk    []byte
	strStart int // index into chunk, -1 once carried into scratch
	numStart int

	finished bool
}

// NewPushParser returns a parser that reports events to h as Feed is called,
// using scratchCapacity bytes to hold unescaped string content and
// cross-chunk number text, with the default 32-level nesting depth. Use
// NewPushParserDepth for a different compile-time depth budget.
func NewPushParser(h Handler, scratchCapacity int, cfg NumberConfig) *PushParser[uint32] {
	return NewPushParserDepth[uint32](h, scratchCapacity, cfg)
}

// NewPushParserDepth is NewPushParser with the nesting stack's bucket type
// selected explicitly: uint8 allows 8 levels, uint16 16, uint32 32, uint64 64.
func NewPushParserDepth[T bucket](h Handler, scratchCapacity int, cfg NumberConfig) *PushParser[T] {
	return &PushParser[T]{
		h:       h,
		tok:     NewTokenizer[T](),
		cfg:     cfg,
		scratch: *newUnescapeBuffer(scratchCapacity),
		numBuf:  make([]byte, 0, scratchCapacity),
	}
}

// Feed processes one chunk of input, invoking the handler for every event
// it produces. The slice may be reused by the caller once Feed returns.
func (p *PushParser[T]) Feed(chunk []byte) error {
	p.chunk = chunk
	for i, b := range chunk {
		if sub, active := p.tok.stringState(); active {
			switch sub {
			case ssNormal:
				if b != '"' && b != '\\' {
					if p.unicode.hasOrphanPending() {
						return newError(ErrInvalidUnicodeCodepoint, b, p.tok.Pos(), p.tok.Line(), p.tok.Column())
					}
					if p.scratch.isActive() {
						if !p.scratch.appendByte(b) {
							return newError(ErrScratchBufferFull, b, p.tok.Pos(), p.tok.Line(), p.tok.Column())
						}
					}
				}
			case ssUnicode0, ssUnicode1, ssUnicode2, ssUnicode3:
				p.unicode.hex.push(b)
			}
		} else if p.tok.state == tsNumber && p.numStart < 0 && numTransitionsValid[p.tok.numSub][b] {
			p.numBuf = append(p.numBuf, b)
		}

		evs, err := p.tok.Process(b)
		if err != nil {
			return err
		}
		if err := p.dispatch(evs, chunk, i); err != nil {
			return err
		}
	}

	// Carry any in-flight string or number forward: the chunk backing it
	// is about to become invalid to the caller.
	if sub, active := p.tok.stringState(); active && sub == ssNormal && !p.scratch.isActive() {
		if p.strStart >= 0 {
			if !p.scratch.beginEscape(chunk[p.strStart:]) {
				return newError(ErrScratchBufferFull, 0, p.tok.Pos(), p.tok.Line(), p.tok.Column())
			}
			p.strStart = -1
		}
	}
	if p.tok.state == tsNumber && p.numStart >= 0 {
		p.numBuf = append(p.numBuf, chunk[p.numStart:]...)
		p.numStart = -1
	}
	p.chunk = nil
	return nil
}

// Finish signals end of input, delivering any trailing event and the final
// EventEndDocument.
func (p *PushParser[T]) Finish() error {
	evs, err := p.tok.Finish()
	if err != nil {
		return err
	}
	if err := p.dispatch(evs, nil, 0); err != nil {
		return err
	}
	p.finished = true
	return p.h.OnEvent(Event{Kind: EventEndDocument})
}

func (p *PushParser[T]) dispatch(evs tokEvents, chunk []byte, i int) error {
	for k := 0; k < evs.n; k++ {
		ev, send, err := p.translate(evs.e[k], chunk, i)
		if err != nil {
			return err
		}
		if send {
			if err := p.h.OnEvent(ev); err != nil {
				return err
			}
		}
	}
	return nil
}

func (p *PushParser[T]) translate(ev tokEvent, chunk []byte, i int) (Event, bool, error) {
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
		return p.handleBegin(ev, chunk, i)
	case tokEnd:
		return p.handleEnd(ev, chunk, i)
	}
	return Event{}, false, nil
}

func (p *PushParser[T]) handleBegin(ev tokEvent, chunk []byte, i int) (Event, bool, error) {
	switch ev.tt {
	case tokTTString, tokTTKey:
		p.scratch.reset()
		p.unicode.resetFull()
		p.strStart = i + 1
	case tokTTNumber:
		p.numBuf = p.numBuf[:0]
		p.numStart = i
	case tokTTEscapeSequence:
		if !p.scratch.isActive() {
			prefix := p.currentStringPrefix(chunk, i)
			if !p.scratch.beginEscape(prefix) {
				return Event{}, false, newError(ErrScratchBufferFull, '\\', ev.pos, ev.line, ev.col)
			}
			p.strStart = -1
		}
	}
	return Event{}, false, nil
}

// currentStringPrefix returns the bytes of the in-progress string seen so
// far, whether they live in this chunk (strStart >= 0) or were already
// carried into scratch by a prior chunk boundary (strStart < 0, in which
// case the scratch buffer already holds them and an empty prefix is added
// here).
func (p *PushParser[T]) currentStringPrefix(chunk []byte, uptoExclusive int) []byte {
	if p.strStart < 0 {
		return nil
	}
	return chunk[p.strStart:uptoExclusive]
}

func (p *PushParser[T]) handleEnd(ev tokEvent, chunk []byte, i int) (Event, bool, error) {
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
			sv = StringValue{Bytes: chunk[p.strStart:i], Kind: Borrowed}
		}
		return Event{Kind: kind, Str: sv, Pos: ev.pos, Line: ev.line, Column: ev.col}, true, nil

	case tokTTEscapeQuote, tokTTEscapeBackslash, tokTTEscapeSlash, tokTTEscapeBackspace,
		tokTTEscapeFormFeed, tokTTEscapeNewline, tokTTEscapeCarriageReturn, tokTTEscapeTab:
		if p.unicode.hasOrphanPending() {
			return Event{}, false, newError(ErrInvalidUnicodeCodepoint, 0, ev.pos, ev.line, ev.col)
		}
		decoded, _, _ := decodeSimpleEscape(simpleEscapeLetter(ev.tt))
		if !p.scratch.isActive() {
			prefix := p.currentStringPrefix(chunk, i-1)
			if !p.scratch.beginEscape(prefix) {
				return Event{}, false, newError(ErrScratchBufferFull, decoded, ev.pos, ev.line, ev.col)
			}
			p.strStart = -1
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
				escStart := i - 5
				var prefix []byte
				if p.strStart >= 0 && escStart >= p.strStart {
					prefix = chunk[p.strStart:escStart]
				}
				if !p.scratch.beginEscape(prefix) {
					return Event{}, false, newError(ErrScratchBufferFull, 0, ev.pos, ev.line, ev.col)
				}
				p.strStart = -1
			}
			if !p.scratch.appendBytes(out[:n]) {
				return Event{}, false, newError(ErrScratchBufferFull, 0, ev.pos, ev.line, ev.col)
			}
		}

	case tokTTNumber, tokTTNumberAndArray, tokTTNumberAndObject:
		var raw []byte
		if p.numStart >= 0 {
			raw = chunk[p.numStart:i]
		} else {
			raw = p.numBuf
		}
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
