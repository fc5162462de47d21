package lexer

import (
	"fmt"
	"strings"
)

type TokenType int

const (
	// Special
	ILLEGAL TokenType = iota
	EOF

	// Literals
	IDENTIFIER // table_name, column_name
	STRING     // 'value'
	NUMBER     // 123, 1.23

	// Keywords
	SELECT
	FROM
	INNER
	JOIN
	ON
	WHERE
	IN
	GROUP
	BY
	HAVING
	ORDER
	ASC
	DESC
	LIMIT
	SUM
	COUNT
	AVG

	// Operators & Punctuation
	ASTERISK    // *
	COMMA       // ,
	DOT         // .
	PAREN_OPEN  // (
	PAREN_CLOSE // )
	EQUALS      // =
	GREATER     // >
	LESS        // <
	SEMICOLON   // ;
)

var keywords = map[string]TokenType{
	"SELECT": SELECT,
	"FROM":   FROM,
	"INNER":  INNER,
	"JOIN":   JOIN,
	"ON":     ON,
	"WHERE":  WHERE,
	"IN":     IN,
	"GROUP":  GROUP,
	"BY":     BY,
	"HAVING": HAVING,
	"ORDER":  ORDER,
	"ASC":    ASC,
	"DESC":   DESC,
	"LIMIT":  LIMIT,
	"SUM":    SUM,
	"COUNT":  COUNT,
	"AVG":    AVG,
}

// Class buckets token types for highlighting
type Class int

const (
	ClassPlain Class = iota
	ClassKeyword
	ClassFunction
	ClassLiteral
	ClassOperator
)

type Token struct {
	Type    TokenType
	Literal string
	Line    int
	Column  int
	Pos     int // byte offset of the token in the input
	End     int // byte offset just past the token
}

func (t Token) String() string {
	return fmt.Sprintf("Token(%d, %q)", t.Type, t.Literal)
}

// Class returns the highlighting class of the token
func (t Token) Class() Class {
	switch t.Type {
	case SUM, COUNT, AVG:
		return ClassFunction
	case STRING, NUMBER:
		return ClassLiteral
	case ASTERISK, EQUALS, GREATER, LESS:
		return ClassOperator
	}
	if t.Type >= SELECT && t.Type <= LIMIT {
		return ClassKeyword
	}
	return ClassPlain
}

type Lexer struct {
	input        string
	position     int  // current position in input (points to current char)
	readPosition int  // current reading position in input (after current char)
	ch           byte // current char under examination
	line         int
	column       int
}

func New(input string) *Lexer {
	l := &Lexer{input: input, line: 1, column: 0}
	l.readChar()
	return l
}

func (l *Lexer) readChar() {
	if l.readPosition >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.readPosition]
	}
	l.position = l.readPosition
	l.readPosition += 1
	l.column++
}

func (l *Lexer) peekChar() byte {
	if l.readPosition >= len(l.input) {
		return 0
	}
	return l.input[l.readPosition]
}

func (l *Lexer) NextToken() Token {
	var tok Token

	l.skipWhitespace()

	line, col, start := l.line, l.column, l.position

	switch l.ch {
	case '*':
		tok = newToken(ASTERISK, l.ch)
	case ',':
		tok = newToken(COMMA, l.ch)
	case '.':
		tok = newToken(DOT, l.ch)
	case '(':
		tok = newToken(PAREN_OPEN, l.ch)
	case ')':
		tok = newToken(PAREN_CLOSE, l.ch)
	case '=':
		tok = newToken(EQUALS, l.ch)
	case '>':
		tok = newToken(GREATER, l.ch)
	case '<':
		tok = newToken(LESS, l.ch)
	case ';':
		tok = newToken(SEMICOLON, l.ch)
	case '\'':
		tok.Type = STRING
		tok.Literal = l.readString()
		return l.locate(tok, line, col, start)
	case 0:
		tok.Literal = ""
		tok.Type = EOF
		return l.locate(tok, line, col, start)
	default:
		if isLetter(l.ch) {
			tok.Literal = l.readIdentifier()
			tok.Type = LookupIdent(tok.Literal)
			return l.locate(tok, line, col, start)
		} else if isDigit(l.ch) {
			tok.Type = NUMBER
			tok.Literal = l.readNumber()
			return l.locate(tok, line, col, start)
		} else {
			tok = newToken(ILLEGAL, l.ch)
		}
	}

	l.readChar()
	return l.locate(tok, line, col, start)
}

// locate stamps position info once the token has been consumed
func (l *Lexer) locate(tok Token, line, col, start int) Token {
	tok.Line = line
	tok.Column = col
	tok.Pos = start
	tok.End = l.position
	if tok.Type == EOF {
		tok.End = start
	}
	return tok
}

func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' {
		if l.ch == '\n' {
			l.line++
			l.column = 0
		}
		l.readChar()
	}
}

func (l *Lexer) readIdentifier() string {
	position := l.position
	for isLetter(l.ch) || isDigit(l.ch) || l.ch == '_' {
		l.readChar()
	}
	return l.input[position:l.position]
}

func (l *Lexer) readNumber() string {
	position := l.position
	for isDigit(l.ch) {
		l.readChar()
	}
	// Support simple floats
	if l.ch == '.' && isDigit(l.peekChar()) {
		l.readChar()
		for isDigit(l.ch) {
			l.readChar()
		}
	}
	return l.input[position:l.position]
}

func (l *Lexer) readString() string {
	position := l.position + 1
	for {
		l.readChar()
		if l.ch == '\'' || l.ch == 0 {
			break
		}
	}
	lit := l.input[position:l.position]

	// Consume the closing quote
	if l.ch == '\'' {
		l.readChar()
	}

	return lit
}

func newToken(tokenType TokenType, ch byte) Token {
	return Token{Type: tokenType, Literal: string(ch)}
}

func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[strings.ToUpper(ident)]; ok {
		return tok
	}
	return IDENTIFIER
}

func isLetter(ch byte) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || ch == '_'
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}

// Helper to tokenize entire string at once
func Tokenize(input string) ([]Token, error) {
	l := New(input)
	var tokens []Token
	for {
		tok := l.NextToken()
		if tok.Type == EOF {
			break
		}
		if tok.Type == ILLEGAL {
			return nil, fmt.Errorf("illegal token at line %d, col %d: %s", tok.Line, tok.Column, tok.Literal)
		}
		tokens = append(tokens, tok)
	}
	return tokens, nil
}
