// lexer_test.go
package babalang

import (
	"reflect"
	"testing"
)

func toks(t *testing.T, src string) []Token {
	t.Helper()
	ts, err := NewLexer(src).Scan()
	if err != nil {
		t.Fatalf("Scan error: %v", err)
	}
	return ts
}

func typesWithoutEOF(tokens []Token) []TokenType {
	if len(tokens) == 0 {
		return nil
	}
	end := len(tokens)
	if tokens[end-1].Type == EOF {
		end--
	}
	if end > 0 && tokens[end-1].Type == EOL {
		end--
	}
	out := make([]TokenType, 0, end)
	for i := 0; i < end; i++ {
		out = append(out, tokens[i].Type)
	}
	return out
}

func wantTypes(t *testing.T, src string, want []TokenType) []Token {
	t.Helper()
	got := toks(t, src)
	gotTypes := typesWithoutEOF(got)
	if !reflect.DeepEqual(gotTypes, want) {
		t.Fatalf("\nsource:\n%s\nwant types:\n%v\ngot types:\n%v\n", src, want, gotTypes)
	}
	return got
}

func Test_Lexer_BabaIsYou(t *testing.T) {
	wantTypes(t, "baba is you", []TokenType{IDENT, IS, YOU})
}

func Test_Lexer_CompoundLiteral(t *testing.T) {
	wantTypes(t, "x is you and move and more",
		[]TokenType{IDENT, IS, YOU, AND, MOVE, AND, MORE})
}

func Test_Lexer_ConditionLine(t *testing.T) {
	wantTypes(t, "lonely r fear loop",
		[]TokenType{LONELY, IDENT, FEAR, IDENT})
}

func Test_Lexer_EOLBetweenStatements(t *testing.T) {
	wantTypes(t, "a is you\nb is group",
		[]TokenType{IDENT, IS, YOU, EOL, IDENT, IS, GROUP})
}

func Test_Lexer_BlankLinesCollapse(t *testing.T) {
	wantTypes(t, "a is you\n\n\n\nb is you",
		[]TokenType{IDENT, IS, YOU, EOL, IDENT, IS, YOU})
}

func Test_Lexer_LeadingBlankLinesProduceNoTokens(t *testing.T) {
	ts := toks(t, "\n\n\na is you")
	if ts[0].Type != IDENT {
		t.Fatalf("expected stream to start at the identifier, got %v", ts[0].Type)
	}
}

func Test_Lexer_Comments(t *testing.T) {
	src := `// a header comment
a is you // trailing comment
// full-line comment
a is text`
	wantTypes(t, src, []TokenType{IDENT, IS, YOU, EOL, IDENT, IS, TEXT})
}

func Test_Lexer_CaseSensitiveIdentifiers(t *testing.T) {
	got := wantTypes(t, "Is IS baba BABA you YOU",
		[]TokenType{IDENT, IDENT, IDENT, IDENT, YOU, IDENT})
	if got[0].Lexeme != "Is" || got[3].Lexeme != "BABA" {
		t.Fatalf("identifier lexemes were altered: %q, %q", got[0].Lexeme, got[3].Lexeme)
	}
}

func Test_Lexer_Positions(t *testing.T) {
	ts := toks(t, "a is you\nbb is text")
	// a at 1:0, you at 1:5, bb at 2:0, text at 2:6
	if ts[0].Line != 1 || ts[0].Col != 0 {
		t.Fatalf("a at %d:%d", ts[0].Line, ts[0].Col)
	}
	if ts[2].Line != 1 || ts[2].Col != 5 {
		t.Fatalf("you at %d:%d", ts[2].Line, ts[2].Col)
	}
	if ts[4].Line != 2 || ts[4].Col != 0 {
		t.Fatalf("bb at %d:%d", ts[4].Line, ts[4].Col)
	}
	if ts[6].Line != 2 || ts[6].Col != 6 {
		t.Fatalf("text at %d:%d", ts[6].Line, ts[6].Col)
	}
}

func Test_Lexer_CRLF(t *testing.T) {
	wantTypes(t, "a is you\r\nb is you",
		[]TokenType{IDENT, IS, YOU, EOL, IDENT, IS, YOU})
}

func Test_Lexer_MalformedUTF8(t *testing.T) {
	_, err := NewLexer("a is \xff\xfe").Scan()
	if err == nil {
		t.Fatalf("expected a lex error")
	}
	if _, ok := err.(*LexError); !ok {
		t.Fatalf("expected *LexError, got %T: %v", err, err)
	}
}

func Test_Lexer_UnicodeIdentifiers(t *testing.T) {
	got := wantTypes(t, "bäbä is you", []TokenType{IDENT, IS, YOU})
	if got[0].Lexeme != "bäbä" {
		t.Fatalf("unexpected lexeme %q", got[0].Lexeme)
	}
}

// Re-lexing the normalized print of a token stream yields the same
// sequence of tokens.
func Test_Lexer_PrinterRoundTrip(t *testing.T) {
	src := `// fib preamble
a is you
b is you and move

loop is tele
f is a and b
a is b
lonely i fear loop
loop is done`
	first := toks(t, src)
	printed := FormatTokens(first)
	second := toks(t, printed)
	if len(first) != len(second) {
		t.Fatalf("token count changed: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].Type != second[i].Type || first[i].Lexeme != second[i].Lexeme {
			t.Fatalf("token %d changed: %v %q vs %v %q",
				i, first[i].Type, first[i].Lexeme, second[i].Type, second[i].Lexeme)
		}
	}
}
