package parser

import (
	"fmt"
	"strings"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokIdent
	tokNumber
	tokString
	tokPunct
)

type token struct {
	kind tokenKind
	text string
	line int
	col  int
}

func (t token) String() string {
	switch t.kind {
	case tokEOF:
		return "end of file"
	case tokString:
		return fmt.Sprintf("string %q", t.text)
	default:
		return fmt.Sprintf("%q", t.text)
	}
}

func (t token) is(text string) bool {
	return (t.kind == tokPunct || t.kind == tokIdent) && t.text == text
}

// puncts is ordered longest first so the scanner can take the first match.
var puncts = []string{
	"<==", "==>", "<--", "-->", "===", "**=", "<<=", ">>=",
	"==", "!=", "<=", ">=", "&&", "||", "<<", ">>", "**",
	"+=", "-=", "*=", "/=", "\\=", "%=", "&=", "|=", "^=", "++", "--",
	"+", "-", "*", "/", "\\", "%", "^", "&", "|", "!", "~", "<", ">", "=",
	"?", ":", ";", ",", ".", "(", ")", "[", "]", "{", "}",
}

type lexError struct {
	line, col int
	msg       string
}

// lex splits src into tokens, dropping whitespace and comments.
func lex(src string) ([]token, *lexError) {
	l := &lexer{src: src, line: 1, col: 1}
	var toks []token
	for {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		toks = append(toks, tok)
		if tok.kind == tokEOF {
			return toks, nil
		}
	}
}

type lexer struct {
	src  string
	pos  int
	line int
	col  int
}

func (l *lexer) advance(n int) {
	for i := 0; i < n && l.pos < len(l.src); i++ {
		if l.src[l.pos] == '\n' {
			l.line++
			l.col = 1
		} else {
			l.col++
		}
		l.pos++
	}
}

func (l *lexer) skipSpaceAndComments() *lexError {
	for l.pos < len(l.src) {
		rest := l.src[l.pos:]
		switch {
		case rest[0] == ' ' || rest[0] == '\t' || rest[0] == '\r' || rest[0] == '\n':
			l.advance(1)
		case strings.HasPrefix(rest, "//"):
			end := strings.IndexByte(rest, '\n')
			if end < 0 {
				end = len(rest)
			}
			l.advance(end)
		case strings.HasPrefix(rest, "/*"):
			end := strings.Index(rest[2:], "*/")
			if end < 0 {
				return &lexError{line: l.line, col: l.col, msg: "unterminated block comment"}
			}
			l.advance(end + 4)
		default:
			return nil
		}
	}
	return nil
}

func (l *lexer) next() (token, *lexError) {
	if err := l.skipSpaceAndComments(); err != nil {
		return token{}, err
	}
	if l.pos >= len(l.src) {
		return token{kind: tokEOF, line: l.line, col: l.col}, nil
	}

	line, col := l.line, l.col
	c := l.src[l.pos]
	switch {
	case isIdentStart(c):
		end := l.pos + 1
		for end < len(l.src) && isIdentPart(l.src[end]) {
			end++
		}
		text := l.src[l.pos:end]
		l.advance(end - l.pos)
		return token{kind: tokIdent, text: text, line: line, col: col}, nil

	case isDigit(c):
		end := l.pos + 1
		if c == '0' && end < len(l.src) && (l.src[end] == 'x' || l.src[end] == 'X') {
			end++
			for end < len(l.src) && isHexDigit(l.src[end]) {
				end++
			}
		} else {
			for end < len(l.src) && isDigit(l.src[end]) {
				end++
			}
		}
		text := l.src[l.pos:end]
		l.advance(end - l.pos)
		return token{kind: tokNumber, text: text, line: line, col: col}, nil

	case c == '"':
		var sb strings.Builder
		end := l.pos + 1
		for end < len(l.src) && l.src[end] != '"' {
			if l.src[end] == '\\' && end+1 < len(l.src) {
				end++
			}
			if l.src[end] == '\n' {
				return token{}, &lexError{line: line, col: col, msg: "unterminated string"}
			}
			sb.WriteByte(l.src[end])
			end++
		}
		if end >= len(l.src) {
			return token{}, &lexError{line: line, col: col, msg: "unterminated string"}
		}
		l.advance(end + 1 - l.pos)
		return token{kind: tokString, text: sb.String(), line: line, col: col}, nil
	}

	rest := l.src[l.pos:]
	for _, p := range puncts {
		if strings.HasPrefix(rest, p) {
			l.advance(len(p))
			return token{kind: tokPunct, text: p, line: line, col: col}, nil
		}
	}
	return token{}, &lexError{line: line, col: col, msg: fmt.Sprintf("unexpected character %q", c)}
}

func isIdentStart(c byte) bool {
	return c == '_' || c == '$' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isHexDigit(c byte) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}
