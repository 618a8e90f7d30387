// Command picojson-lint validates a JSON document against this package's
// streaming parser, reporting the first error it hits with line/column
// context.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/mcvoid/picojson"
)

var scratchSize int

func main() {
	root := &cobra.Command{
		Use:   "picojson-lint [file]",
		Short: "Validate a JSON document with the picojson streaming parser",
		Args:  cobra.MaximumNArgs(1),
		RunE:  run,
	}
	root.Flags().IntVar(&scratchSize, "scratch", 4096, "scratch buffer size in bytes")

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	var r io.Reader = os.Stdin
	name := "stdin"
	if len(args) == 1 {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()
		r = f
		name = args[0]
	}

	p := picojson.NewStreamParser(r, scratchSize, picojson.DefaultNumberConfig)
	depth := 0
	for {
		ev, err := p.Next()
		if err != nil {
			red := color.New(color.FgRed, color.Bold)
			red.Fprintf(cmd.ErrOrStderr(), "%s: invalid\n", name)
			fmt.Fprintln(cmd.ErrOrStderr(), err)
			return err
		}
		switch ev.Kind {
		case picojson.EventStartObject, picojson.EventStartArray:
			depth++
		case picojson.EventEndObject, picojson.EventEndArray:
			depth--
		case picojson.EventEndDocument:
			green := color.New(color.FgGreen, color.Bold)
			green.Fprintf(cmd.OutOrStdout(), "%s: valid\n", name)
			return nil
		}
	}
}
