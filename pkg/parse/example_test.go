package parse_test

import (
	"fmt"
	"strings"

	"github.com/matzehuels/chaosmeter/pkg/parse"
)

func ExampleParse() {
	report := []string{
		"src/app.js",
		"  src/db.js",
		"  src/generated/api.js",
		"src/generated/api.js",
		"  src/db.js",
	}
	x, _ := parse.CompileExclusion("src/generated/")

	edges, _ := parse.Parse(parse.FormatTree, report, x)
	for _, e := range edges {
		fmt.Println(e.From, "->", e.To)
	}
	// Output:
	// src/app.js -> src/db.js
}

func ExampleDetectFormat() {
	f, _ := parse.DetectFormat("build/app.jdeps")
	fmt.Println(f)

	_, err := parse.DetectFormat("notes.txt")
	fmt.Println(err != nil)
	// Output:
	// jdeps
	// true
}

func ExampleParseReader() {
	edges, _ := parse.ParseReader(parse.FormatEdgeList, strings.NewReader("A -> B\nB -> C\n"), nil)
	fmt.Println(len(edges))
	// Output:
	// 2
}
