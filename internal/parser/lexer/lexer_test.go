package lexer

import (
	"testing"
)

func TestNextToken(t *testing.T) {
	input := `SELECT Country, SUM(Amount) FROM Users INNER JOIN Orders ON Users.ID = Orders.UID
WHERE Country IN ('USA', 'Korea') HAVING SUM(Amount) > 200 ORDER BY SUM(Amount) ASC LIMIT 1;`

	tests := []struct {
		expectedType    TokenType
		expectedLiteral string
	}{
		{SELECT, "SELECT"},
		{IDENTIFIER, "Country"},
		{COMMA, ","},
		{SUM, "SUM"},
		{PAREN_OPEN, "("},
		{IDENTIFIER, "Amount"},
		{PAREN_CLOSE, ")"},
		{FROM, "FROM"},
		{IDENTIFIER, "Users"},
		{INNER, "INNER"},
		{JOIN, "JOIN"},
		{IDENTIFIER, "Orders"},
		{ON, "ON"},
		{IDENTIFIER, "Users"},
		{DOT, "."},
		{IDENTIFIER, "ID"},
		{EQUALS, "="},
		{IDENTIFIER, "Orders"},
		{DOT, "."},
		{IDENTIFIER, "UID"},
		{WHERE, "WHERE"},
		{IDENTIFIER, "Country"},
		{IN, "IN"},
		{PAREN_OPEN, "("},
		{STRING, "USA"},
		{COMMA, ","},
		{STRING, "Korea"},
		{PAREN_CLOSE, ")"},
		{HAVING, "HAVING"},
		{SUM, "SUM"},
		{PAREN_OPEN, "("},
		{IDENTIFIER, "Amount"},
		{PAREN_CLOSE, ")"},
		{GREATER, ">"},
		{NUMBER, "200"},
		{ORDER, "ORDER"},
		{BY, "BY"},
		{SUM, "SUM"},
		{PAREN_OPEN, "("},
		{IDENTIFIER, "Amount"},
		{PAREN_CLOSE, ")"},
		{ASC, "ASC"},
		{LIMIT, "LIMIT"},
		{NUMBER, "1"},
		{SEMICOLON, ";"},
		{EOF, ""},
	}

	l := New(input)

	for i, tt := range tests {
		tok := l.NextToken()

		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - tokentype wrong. expected=%q, got=%q",
				i, tt.expectedType, tok.Type)
		}

		if tok.Literal != tt.expectedLiteral {
			t.Fatalf("tests[%d] - literal wrong. expected=%q, got=%q",
				i, tt.expectedLiteral, tok.Literal)
		}
	}
}

func TestTokenOffsets(t *testing.T) {
	input := "WHERE Country IN ('UK')"

	tokens, err := Tokenize(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i, tok := range tokens {
		got := input[tok.Pos:tok.End]
		want := tok.Literal
		if tok.Type == STRING {
			want = "'" + tok.Literal + "'"
		}
		if got != want {
			t.Errorf("tokens[%d] - span wrong. expected=%q, got=%q", i, want, got)
		}
	}
}

func TestTokenClass(t *testing.T) {
	tests := []struct {
		input string
		class Class
	}{
		{"GROUP", ClassKeyword},
		{"limit", ClassKeyword},
		{"SUM", ClassFunction},
		{"'USA'", ClassLiteral},
		{"200", ClassLiteral},
		{">", ClassOperator},
		{"Country", ClassPlain},
		{",", ClassPlain},
	}

	for _, tt := range tests {
		tok := New(tt.input).NextToken()
		if tok.Class() != tt.class {
			t.Errorf("%q - class wrong. expected=%d, got=%d", tt.input, tt.class, tok.Class())
		}
	}
}

func TestTokenizeIllegal(t *testing.T) {
	if _, err := Tokenize("SELECT #"); err == nil {
		t.Fatal("expected error for illegal character")
	}
}
