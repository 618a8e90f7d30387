// Package conformance holds a small pass/fail fixture format, modeled on
// the JSON-checker convention this library's test suite draws on: each
// case names a document and whether the slice parser is expected to
// accept or reject it.
package conformance

import "github.com/mcvoid/picojson"

// Case is one fixture: a document and whether it is expected to parse
// successfully end to end.
type Case struct {
	Name    string
	Input   string
	WantErr bool
}

// Run drains every event from a document parsed with cfg, returning the
// first error encountered (if any) and the total event count.
func Run(input string, cfg picojson.NumberConfig) (events int, err error) {
	p := picojson.NewSliceParser([]byte(input), 256, cfg)
	for {
		ev, perr := p.Next()
		if perr != nil {
			return events, perr
		}
		events++
		if ev.Kind == picojson.EventEndDocument {
			return events, nil
		}
	}
}

// Suite is the set of fixtures exercised by this package's conformance
// test. It supplements the literal scenarios named in this project's
// specification with pass/fail pairs in the JSON-checker style.
var Suite = []Case{
	{Name: "empty_object", Input: `{}`},
	{Name: "empty_array", Input: `[]`},
	{Name: "nested", Input: `{"a":[1,2,{"b":true,"c":null}]}`},
	{Name: "escaped_newline", Input: `"a\nb"`},
	{Name: "unicode_content", Input: `["𐐷"]`},
	{Name: "trailing_comma_object", Input: `{"a":1,}`, WantErr: true},
	{Name: "trailing_comma_array", Input: `[1,2,]`, WantErr: true},
	{Name: "unterminated_string", Input: `"abc`, WantErr: true},
	{Name: "bare_word", Input: `nul`, WantErr: true},
	{Name: "multiple_roots", Input: `1 2`, WantErr: true},
	{Name: "control_char_in_string", Input: "\"a\tb\"", WantErr: true},
	{Name: "lone_high_surrogate", Input: `"\uD801"`, WantErr: true},
	{Name: "number_leading_zero_digit", Input: `01`, WantErr: true},
}
