package css

import (
	"strings"

	"github.com/gorilla/css/scanner"
)

// Declaration is one (property, typed value) pair.
type Declaration struct {
	Property string
	Value    Value
}

// Rule is a set of alternative selectors sharing one declaration list.
type Rule struct {
	Selectors    []*ComplexSelector
	Declarations []Declaration
}

// Stylesheet is an ordered list of style rules.
type Stylesheet struct {
	Rules []*Rule
}

// ParseStylesheet parses a sequence of "selector-list { declarations }"
// blocks. Parsing never fails as a whole: a malformed rule is dropped
// by skipping to the next top-level block, at-rules are skipped with
// their bodies, and whatever parsed cleanly is returned.
func ParseStylesheet(text string) *Stylesheet {
	s := scanner.New(text)
	sheet := &Stylesheet{}

	for {
		selText, tok := scanPrelude(s)
		if tok == nil || tok.Type == scanner.TokenEOF || tok.Type == scanner.TokenError {
			break
		}
		if tok.Type == scanner.TokenChar && tok.Value == "}" {
			// Stray close brace between rules; ignore and resync.
			continue
		}
		// tok is the opening brace of a block.
		if strings.HasPrefix(strings.TrimSpace(selText), "@") {
			skipBlock(s)
			continue
		}
		decls, ok := scanDeclarations(s, true)
		selectors := ParseSelectorList(selText)
		if !ok || len(selectors) == 0 || len(decls) == 0 {
			continue
		}
		sheet.Rules = append(sheet.Rules, &Rule{Selectors: selectors, Declarations: decls})
	}
	return sheet
}

// ParseInlineDeclarations parses a style attribute's text with the
// same declaration grammar as a rule body. There is no selector; the
// caller applies the result unconditionally.
func ParseInlineDeclarations(text string) []Declaration {
	decls, _ := scanDeclarations(scanner.New(text), false)
	return decls
}

// scanPrelude accumulates selector text up to the next block. It
// returns the accumulated text and the terminating token: an opening
// brace, a stray "}", EOF, or a scan error.
func scanPrelude(s *scanner.Scanner) (string, *scanner.Token) {
	var b strings.Builder
	for {
		tok := s.Next()
		switch tok.Type {
		case scanner.TokenEOF, scanner.TokenError:
			return b.String(), tok
		case scanner.TokenComment, scanner.TokenCDO, scanner.TokenCDC:
			// Ignored between rules.
		case scanner.TokenS:
			b.WriteByte(' ')
		case scanner.TokenChar:
			if tok.Value == "{" || tok.Value == "}" {
				return b.String(), tok
			}
			b.WriteString(tok.Value)
		case scanner.TokenAtKeyword:
			b.WriteString(tok.Value)
		default:
			b.WriteString(tok.Value)
		}
	}
}

// scanDeclarations reads "property: value;" pairs until the closing
// brace (inBlock) or EOF (inline). Malformed declarations are dropped
// individually; a scan error abandons the remainder and reports !ok.
func scanDeclarations(s *scanner.Scanner, inBlock bool) ([]Declaration, bool) {
	var decls []Declaration
	for {
		name, tok := scanDeclarationName(s, inBlock)
		if tok != nil {
			return decls, tok.Type != scanner.TokenError
		}
		raw, terminator := scanDeclarationValue(s)
		if name != "" && raw != "" {
			decls = append(decls, expandDeclaration(name, raw)...)
		}
		if terminator != nil {
			return decls, terminator.Type != scanner.TokenError
		}
	}
}

// scanDeclarationName reads up to the colon of a declaration. A nil
// token return means a name was found (possibly empty for malformed
// input) and the value should be scanned next; a non-nil token is the
// end of the declaration list.
func scanDeclarationName(s *scanner.Scanner, inBlock bool) (string, *scanner.Token) {
	name := ""
	for {
		tok := s.Next()
		switch tok.Type {
		case scanner.TokenEOF, scanner.TokenError:
			return "", tok
		case scanner.TokenS, scanner.TokenComment:
		case scanner.TokenIdent:
			if name == "" {
				name = strings.ToLower(tok.Value)
			}
		case scanner.TokenChar:
			switch tok.Value {
			case ":":
				return name, nil
			case ";":
				// Empty or nameless declaration; start over.
				name = ""
			case "}":
				if inBlock {
					return "", tok
				}
			}
		}
	}
}

// scanDeclarationValue accumulates value text until ';', '}', or EOF.
// It returns the trimmed text and, when the declaration list itself
// ended, the terminating token.
func scanDeclarationValue(s *scanner.Scanner) (string, *scanner.Token) {
	var b strings.Builder
	for {
		tok := s.Next()
		switch tok.Type {
		case scanner.TokenEOF, scanner.TokenError:
			return strings.TrimSpace(b.String()), tok
		case scanner.TokenS:
			b.WriteByte(' ')
		case scanner.TokenComment:
		case scanner.TokenChar:
			switch tok.Value {
			case ";":
				return strings.TrimSpace(b.String()), nil
			case "}":
				return strings.TrimSpace(b.String()), tok
			default:
				b.WriteString(tok.Value)
			}
		default:
			b.WriteString(tok.Value)
		}
	}
}

// skipBlock consumes a brace-balanced block after its opening brace,
// for at-rules and unrecoverable rule bodies.
func skipBlock(s *scanner.Scanner) {
	depth := 1
	for depth > 0 {
		tok := s.Next()
		switch tok.Type {
		case scanner.TokenEOF, scanner.TokenError:
			return
		case scanner.TokenChar:
			switch tok.Value {
			case "{":
				depth++
			case "}":
				depth--
			}
		}
	}
}

// boxEdges maps a box-edge shorthand to its longhand edge properties
// in top/right/bottom/left order.
var boxEdges = map[string][4]string{
	"margin":  {"margin-top", "margin-right", "margin-bottom", "margin-left"},
	"padding": {"padding-top", "padding-right", "padding-bottom", "padding-left"},
}

// expandDeclaration turns one source declaration into its stored
// longhand form. Box-edge shorthands expand by the 1/2/4-value rule;
// any other value count keeps the raw unsplit value under the
// shorthand name, leaving the longhands unset. "background" keeps only
// its color.
func expandDeclaration(name, raw string) []Declaration {
	if edges, ok := boxEdges[name]; ok {
		parts := strings.Fields(raw)
		switch len(parts) {
		case 1:
			v := ParseValue(parts[0])
			return []Declaration{
				{edges[0], v}, {edges[1], v}, {edges[2], v}, {edges[3], v},
			}
		case 2:
			tb := ParseValue(parts[0])
			lr := ParseValue(parts[1])
			return []Declaration{
				{edges[0], tb}, {edges[1], lr}, {edges[2], tb}, {edges[3], lr},
			}
		case 4:
			return []Declaration{
				{edges[0], ParseValue(parts[0])},
				{edges[1], ParseValue(parts[1])},
				{edges[2], ParseValue(parts[2])},
				{edges[3], ParseValue(parts[3])},
			}
		default:
			return []Declaration{{name, ParseValue(raw)}}
		}
	}
	if name == "background" {
		return []Declaration{{"background-color", ParseValue(raw)}}
	}
	return []Declaration{{name, ParseValue(raw)}}
}
