package parser_test

import (
	"errors"
	"fmt"

	"github.com/msto63/tagscript/foundation/tag/parser"
)

func ExampleParse() {
	doc := "[bg file=\"room.png\"]\n[say name=\"Alice\" text=\"Hi\\n\\\"there\\\"\"]"

	err := parser.Parse(doc, func(ev parser.Event) error {
		fmt.Printf("%d %s", ev.Line, ev.Name)
		for _, p := range ev.Properties {
			fmt.Printf(" %s=%q", p.Name, p.Value)
		}
		fmt.Println()
		return nil
	})
	fmt.Println(err)
	// Output:
	// 1 bg file="room.png"
	// 2 say name="Alice" text="Hi\n\"there\""
	// <nil>
}

func ExampleParseAll_error() {
	_, err := parser.ParseAll("[wait\n  time=\"3\"")

	var perr *parser.Error
	if errors.As(err, &perr) {
		fmt.Println(perr.Kind, perr.Line, errors.Is(err, parser.ErrUnexpectedEOF))
	}
	fmt.Println(err)
	// Output:
	// lexical 2 true
	// line 2: unexpected end of file
}
