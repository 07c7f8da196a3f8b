package dsl

import (
	"fmt"
	"io"
	"strconv"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var (
	roadmapLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Whitespace", Pattern: `[ \t\r]+`},
		{Name: "Newline", Pattern: `\n+`},
		{Name: "BlockComment", Pattern: `/\*[^*]*\*+(?:[^/*][^*]*\*+)*/`},
		{Name: "LineComment", Pattern: `//[^\n]*`},
		// 颜色必须先于 # 注释匹配
		{Name: "Color", Pattern: `#(?:[0-9A-Fa-f]{8}|[0-9A-Fa-f]{6}|[0-9A-Fa-f]{3})\b`},
		{Name: "HashComment", Pattern: `#[^\n]*`},
		{Name: "Date", Pattern: `\d{4}-\d{2}(?:-\d{2})?`},
		{Name: "Number", Pattern: `-?\d+(?:\.\d+)?`},
		{Name: "String", Pattern: `"(?:\\.|[^"\\])*"`},
		{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_-]*`},
		{Name: "Punct", Pattern: `[][{},;:]`},
	})

	roadmapParser = participle.MustBuild[Document](
		participle.Lexer(roadmapLexer),
		participle.Elide("Whitespace", "LineComment", "BlockComment", "HashComment"),
	)
)

// Document is a parsed roadmap file: `roadmap <name> <version> { sections }`.
type Document struct {
	Pos      lexer.Position `parser:"" json:"-"`
	Name     string         `parser:"Newline* 'roadmap' @Ident"`
	Version  string         `parser:"@Ident"`
	Sections []*Section     `parser:"'{' Newline* ( @@ Newline* )* '}' Newline*"`
}

// Section is one top-level declaration. Exactly one field is set.
type Section struct {
	Meta     *MetaSection     `parser:"  @@"`
	Project  *EntitySection   `parser:"| 'project' @@"`
	Product  *EntitySection   `parser:"| 'product' @@"`
	Feedback *FeedbackSection `parser:"| @@"`
}

// Kind names the populated branch.
func (s *Section) Kind() string {
	switch {
	case s == nil:
	case s.Meta != nil:
		return "meta"
	case s.Project != nil:
		return "project"
	case s.Product != nil:
		return "product"
	case s.Feedback != nil:
		return "feedback"
	}
	return "unknown"
}

type MetaSection struct {
	Block *Block `parser:"'meta' @@"`
}

// EntitySection is the shared shape of project and product sections.
// Both id and display name may be omitted.
type EntitySection struct {
	Pos   lexer.Position `parser:"" json:"-"`
	ID    string         `parser:"@Ident?"`
	Name  StringLiteral  `parser:"@String?"`
	Block *Block         `parser:"@@"`
}

type FeedbackSection struct {
	Pos   lexer.Position `parser:"" json:"-"`
	ID    string         `parser:"'feedback' @Ident?"`
	Block *Block         `parser:"@@"`
}

// Block holds statements separated by newlines or semicolons.
type Block struct {
	Statements []*Statement `parser:"'{' Newline* ( @@ ( ';' | Newline )* )* '}'"`
}

// Statement is a `key: value` pair, a nested declaration such as
// `sub <id> "<name>" { ... }`, or a bare string line.
type Statement struct {
	Assignment *Assignment    `parser:"  @@"`
	Decl       *Decl          `parser:"| @@"`
	Text       *StringLiteral `parser:"| @String"`
}

type Assignment struct {
	Pos   lexer.Position `parser:"" json:"-"`
	Key   string         `parser:"@Ident"`
	Value *Value         `parser:"':' Newline* @@"`
}

// Decl is a nested declaration inside a section body. Kind is not
// restricted by the grammar so the binder can report unknown kinds with
// their position.
type Decl struct {
	Pos   lexer.Position `parser:"" json:"-"`
	Kind  string         `parser:"@Ident"`
	ID    string         `parser:"@Ident?"`
	Name  StringLiteral  `parser:"@String?"`
	Block *Block         `parser:"( Newline* @@ )?"`
}

// Value is a scalar or a list of values.
type Value struct {
	String *StringLiteral `parser:"  @String"`
	Date   *string        `parser:"| @Date"`
	Number *string        `parser:"| @Number"`
	Color  *string        `parser:"| @Color"`
	Ident  *string        `parser:"| @Ident"`
	List   *List          `parser:"| @@"`
}

// List is `[a, b, c]`; commas, semicolons and newlines all separate items.
type List struct {
	Items []*Value `parser:"'[' Newline* ( @@ ( ( ',' | ';' | Newline ) Newline* @@ )* )? Newline* ']'"`
}

// StringLiteral is a quoted string, stored unquoted.
type StringLiteral string

// Capture implements participle.Capture.
func (s *StringLiteral) Capture(values []string) error {
	if len(values) != 1 {
		return fmt.Errorf("字符串字面量需要单个 token，实际 %d 个", len(values))
	}
	unquoted, err := strconv.Unquote(values[0])
	if err != nil {
		return fmt.Errorf("字符串 %s 无法解码: %w", values[0], err)
	}
	*s = StringLiteral(unquoted)
	return nil
}

// Parse reads a roadmap document. filename only appears in error positions.
func Parse(filename string, r io.Reader) (*Document, error) {
	return roadmapParser.Parse(filename, r)
}

// ParseString parses an in-memory roadmap document.
func ParseString(input string) (*Document, error) {
	return roadmapParser.ParseString("", input)
}

// Grammar returns the EBNF of the roadmap language.
func Grammar() string {
	return roadmapParser.String()
}
