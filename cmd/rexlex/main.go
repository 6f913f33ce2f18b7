// Command rexlex is a demo driver for the lexer package: it tokenizes a
// file using a small built-in rule set and prints the resulting tokens.
// It is not part of the library's contract (see lexer and nfa).
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/rexlex/rexlex/lexer"
)

// rule pairs a regex with the token id the demo CLI reports for it, in
// the style of the teacher's rule tables (internal/pkg/syntax/rules and
// editor/syntax/languages): one slice, registered in priority order.
type rule struct {
	name   string
	regex  string
	tokens int32
}

// defaultRules is a small general-purpose rule set: keywords beat names,
// numbers (float before int, since both can match digit runs), strings,
// operators, comments, and whitespace skipped as unmatched bytes.
var defaultRules = []rule{
	{"KEYWORD", `(if|else|for|while|return|func|var|const)`, 1},
	{"NAME", `[a-zA-Z_]+`, 2},
	{"FLOAT", `[0-9]*\.[0-9]+`, 3},
	{"INT", `[0-9]+`, 4},
	{"STRING", `"[^"]*"`, 5},
	{"COMMENT", `/\*(\*[^/]|[^*])*\*/`, 6},
	{"OPERATOR", `[+\-*/=<>!]`, 7},
}

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintf(os.Stderr, "usage: rexlex <file>\n")
		os.Exit(2)
	}

	data, err := os.ReadFile(os.Args[1])
	if err != nil {
		log.Fatalf("read input file: %v", err)
	}

	lx := lexer.New()
	for _, r := range defaultRules {
		if err := lx.AddRule(r.regex, r.tokens); err != nil {
			log.Printf("dropping rule %s (%s): %v", r.name, r.regex, err)
		}
	}
	lx.Build()

	lx.SetStream(data)
	for {
		tok := lx.NextToken()
		if tok.ID == lexer.EOF {
			fmt.Printf("EOF at %d:%d\n", tok.Line, tok.Column)
			break
		}
		fmt.Printf("%d:%d id=%d index=%d length=%d %q\n",
			tok.Line, tok.Column, tok.ID, tok.Index, tok.Length,
			data[tok.Index:tok.Index+uint64(tok.Length)])
	}
}
