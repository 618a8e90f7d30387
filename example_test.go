package picojson_test

import (
	"fmt"

	"github.com/mcvoid/picojson"
)

func Example_sliceParser() {
	p := picojson.NewSliceParser([]byte(`{"name":"Alice","age":30}`), 256, picojson.DefaultNumberConfig)
	for {
		ev, err := p.Next()
		if err != nil {
			fmt.Println("error:", err)
			return
		}
		switch ev.Kind {
		case picojson.EventKey:
			fmt.Print(ev.Str.String(), "=")
		case picojson.EventString:
			fmt.Println(ev.Str.String())
		case picojson.EventNumber:
			fmt.Println(ev.Num.Int)
		case picojson.EventEndDocument:
			return
		}
	}
	// Output:
	// name=Alice
	// age=30
}

type treeHandler struct {
	depth int
}

func (h *treeHandler) OnEvent(ev picojson.Event) error {
	switch ev.Kind {
	case picojson.EventStartObject, picojson.EventStartArray:
		h.depth++
	case picojson.EventEndObject, picojson.EventEndArray:
		h.depth--
	case picojson.EventNumber:
		fmt.Println("number:", ev.Num.Raw)
	}
	return nil
}

func Example_pushParser() {
	h := &treeHandler{}
	p := picojson.NewPushParser(h, 64, picojson.DefaultNumberConfig)
	for _, chunk := range [][]byte{[]byte(`[1,`), []byte(`2,3`), []byte(`]`)} {
		if err := p.Feed(chunk); err != nil {
			fmt.Println("error:", err)
			return
		}
	}
	if err := p.Finish(); err != nil {
		fmt.Println("error:", err)
		return
	}
	// Output:
	// number: 1
	// number: 2
	// number: 3
}
