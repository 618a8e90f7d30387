// Package picojson is a memory-bounded, streaming JSON parser built around
// a single byte-at-a-time tokenizer shared by three front-ends:
//
//   - SliceParser, for a document already resident as a []byte
//   - StreamParser, for an io.Reader read through a fixed-capacity scratch
//     buffer
//   - PushParser, for input fed in by the caller one chunk at a time,
//     reporting events to a Handler
//
// None of the three builds a value tree: parsing a document produces a
// flat sequence of Events (StartObject, Key, String, Number, ...) and
// nothing more. Callers that want a tree, a typed decode, or a query
// layer build it themselves on top of the event stream.
//
// Strings are extracted copy-on-escape: a string with no `\` in it comes
// back as a Borrowed zero-copy view of the input; a string containing an
// escape is copied and unescaped into the parser's own scratch buffer and
// comes back tagged Unescaped. PushParser also copies a string that spans
// more than one fed chunk, so such a string comes back Unescaped even
// without an escape. Numbers are extracted according to a
// NumberConfig, which selects an integer width and a policy for numbers
// that require floating point.
package picojson
