package picojson

// EventKind identifies what a parsed Event represents.
type EventKind uint8

const (
	EventStartObject EventKind = iota
	EventEndObject
	EventStartArray
	EventEndArray
	EventKey
	EventString
	EventNumber
	EventBool
	EventNull
	EventEndDocument
)

func (k EventKind) String() string {
	switch k {
	case EventStartObject:
		return "StartObject"
	case EventEndObject:
		return "EndObject"
	case EventStartArray:
		return "StartArray"
	case EventEndArray:
		return "EndArray"
	case EventKey:
		return "Key"
	case EventString:
		return "String"
	case EventNumber:
		return "Number"
	case EventBool:
		return "Bool"
	case EventNull:
		return "Null"
	case EventEndDocument:
		return "EndDocument"
	default:
		return "Unknown"
	}
}

// StringKind tells whether a StringValue's bytes were copied out during
// unescaping or are a zero-copy view of the original input/pending buffer.
type StringKind uint8

const (
	Borrowed StringKind = iota
	Unescaped
)

// StringValue is the result of extracting a JSON string or key. Bytes is
// only valid until the next call that advances the owning parser: for
// Borrowed values it aliases the caller's input (slice parser), the
// scratch buffer's pending-input region (stream parser) or the chunk
// passed to Feed (push parser); for
// Unescaped values it aliases the scratch buffer's unescaped-output region,
// which the next parser call is free to overwrite.
type StringValue struct {
	Bytes []byte
	Kind  StringKind
}

func (s StringValue) String() string { return string(s.Bytes) }

// Event is one unit of parser output: a structural token, a piece of
// content, or the terminal EndDocument marker.
type Event struct {
	Kind   EventKind
	Str    StringValue // valid for EventKey, EventString
	Num    Number      // valid for EventNumber
	Bool   bool        // valid for EventBool
	Pos    int
	Line   int
	Column int
}
