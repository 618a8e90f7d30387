package picojson

import (
	"bytes"
	"errors"
	"io"
	"testing"
)

// chunkedReader hands back at most chunkSize bytes per Read call, used to
// exercise chunk-independence: the event stream must not depend on how the
// input was sliced up by the caller's reads.
type chunkedReader struct {
	data      []byte
	pos       int
	chunkSize int
}

func (r *chunkedReader) Read(p []byte) (int, error) {
	if r.pos >= len(r.data) {
		return 0, io.EOF
	}
	n := r.chunkSize
	if n > len(p) {
		n = len(p)
	}
	if r.pos+n > len(r.data) {
		n = len(r.data) - r.pos
	}
	copy(p, r.data[r.pos:r.pos+n])
	r.pos += n
	return n, nil
}

func collectStream(t *testing.T, input string, chunkSize, scratch int, cfg NumberConfig) []Event {
	t.Helper()
	r := &chunkedReader{data: []byte(input), chunkSize: chunkSize}
	p := NewStreamParser(r, scratch, cfg)
	var evs []Event
	for {
		ev, err := p.Next()
		if err != nil {
			t.Fatalf("unexpected error parsing %q at chunk size %d: %v", input, chunkSize, err)
		}
		// Str.Bytes is only valid until the next call to Next; keep a copy.
		ev.Str.Bytes = append([]byte(nil), ev.Str.Bytes...)
		evs = append(evs, ev)
		if ev.Kind == EventEndDocument {
			return evs
		}
	}
}

func TestStreamParserChunkedArray(t *testing.T) {
	evs := collectStream(t, `[1,2,3]`, 2, 256, DefaultNumberConfig)
	assertKinds(t, evs, EventStartArray, EventNumber, EventNumber, EventNumber, EventEndArray, EventEndDocument)
	for i, want := range []string{"1", "2", "3"} {
		if evs[i+1].Num.Raw != want {
			t.Errorf("number %d raw = %q, want %q", i, evs[i+1].Num.Raw, want)
		}
	}
}

func TestStreamParserSurrogatePairChunked(t *testing.T) {
	// The literal UTF-8 bytes of U+10437 in the input, with no `\` anywhere,
	// so this string must come back Borrowed, not Unescaped.
	input := `["𐐷"]`
	for _, chunkSize := range []int{1, 2, 3} {
		evs := collectStream(t, input, chunkSize, 256, DefaultNumberConfig)
		assertKinds(t, evs, EventStartArray, EventString, EventEndArray, EventEndDocument)
		sv := evs[1].Str
		want := []byte{0xF0, 0x90, 0x90, 0xB7}
		if sv.Kind != Borrowed || string(sv.Bytes) != string(want) {
			t.Fatalf("chunk size %d: got %+v, want Borrowed %v", chunkSize, sv, want)
		}
	}
}

func TestStreamParserChunkIndependence(t *testing.T) {
	input := `{"name":"Alice","nums":[1,2,3],"ok":true,"nil":null,"esc":"a\nb"}`
	var reference []EventKind
	for _, chunkSize := range []int{1, 2, 3, 4, 7, 64} {
		evs := collectStream(t, input, chunkSize, 256, DefaultNumberConfig)
		ks := kinds(evs)
		if reference == nil {
			reference = ks
			continue
		}
		if len(ks) != len(reference) {
			t.Fatalf("chunk size %d produced %d events, want %d", chunkSize, len(ks), len(reference))
		}
		for i := range ks {
			if ks[i] != reference[i] {
				t.Fatalf("chunk size %d: event %d = %v, want %v", chunkSize, i, ks[i], reference[i])
			}
		}
	}
}

func TestStreamParserMatchesSliceParser(t *testing.T) {
	input := `{"a":[1,2.5,{"b":"x\ty"}],"c":null}`
	sliceEvs := collectSlice(t, input, DefaultNumberConfig)
	streamEvs := collectStream(t, input, 3, 256, DefaultNumberConfig)
	if len(sliceEvs) != len(streamEvs) {
		t.Fatalf("slice produced %d events, stream produced %d", len(sliceEvs), len(streamEvs))
	}
	for i := range sliceEvs {
		a, b := sliceEvs[i], streamEvs[i]
		if a.Kind != b.Kind {
			t.Fatalf("event %d kind mismatch: slice=%v stream=%v", i, a.Kind, b.Kind)
		}
		if a.Kind == EventString || a.Kind == EventKey {
			if !bytes.Equal(a.Str.Bytes, b.Str.Bytes) {
				t.Fatalf("event %d string mismatch: slice=%q stream=%q", i, a.Str.Bytes, b.Str.Bytes)
			}
		}
		if a.Kind == EventNumber && a.Num.Raw != b.Num.Raw {
			t.Fatalf("event %d number mismatch: slice=%q stream=%q", i, a.Num.Raw, b.Num.Raw)
		}
	}
}

func TestStreamParserReaderError(t *testing.T) {
	boom := errors.New("boom")
	r := &erroringReader{err: boom}
	p := NewStreamParser(r, 64, DefaultNumberConfig)
	_, err := p.Next()
	pe, ok := err.(*ParseError)
	if !ok || pe.Kind != ErrReader {
		t.Fatalf("got %v, want ErrReader", err)
	}
}

type erroringReader struct{ err error }

func (r *erroringReader) Read(p []byte) (int, error) { return 0, r.err }
