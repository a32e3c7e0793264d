package formula

import "strings"

// TokenType classifies a lexeme of the Airtable formula language.
type TokenType int

const (
	TokenFunction TokenType = iota
	TokenFieldRef
	TokenString
	TokenNumber
	TokenOperator
	TokenParen
	TokenComma
	TokenWhitespace
	TokenUnknown
)

func (t TokenType) String() string {
	switch t {
	case TokenFunction:
		return "function"
	case TokenFieldRef:
		return "field_ref"
	case TokenString:
		return "string"
	case TokenNumber:
		return "number"
	case TokenOperator:
		return "operator"
	case TokenParen:
		return "paren"
	case TokenComma:
		return "comma"
	case TokenWhitespace:
		return "whitespace"
	default:
		return "unknown"
	}
}

// Token is a single lexeme. Depth is the 1-indexed paren nesting level,
// meaningful only for TokenParen.
type Token struct {
	Type  TokenType
	Value string
	Depth int
}

// functionNames is the full Airtable function set, matched
// case-insensitively. Identifiers outside this set tokenize as unknown.
var functionNames = map[string]bool{
	// Logical
	"IF": true, "SWITCH": true, "IFS": true, "AND": true, "OR": true,
	"XOR": true, "NOT": true, "TRUE": true, "FALSE": true, "BLANK": true,
	// Numeric
	"SUM": true, "AVERAGE": true, "MIN": true, "MAX": true, "COUNT": true,
	"COUNTA": true, "COUNTALL": true, "ROUND": true, "ROUNDUP": true,
	"ROUNDDOWN": true, "CEILING": true, "FLOOR": true, "INT": true,
	"ABS": true, "SQRT": true, "POWER": true, "EXP": true, "LOG": true,
	"LOG10": true, "MOD": true, "EVEN": true, "ODD": true, "VALUE": true,
	// String
	"CONCATENATE": true, "LEFT": true, "RIGHT": true, "MID": true,
	"LEN": true, "FIND": true, "SEARCH": true, "SUBSTITUTE": true,
	"REPLACE": true, "LOWER": true, "UPPER": true, "TRIM": true,
	"REPT": true, "T": true, "ENCODE_URL_COMPONENT": true,
	"REGEX_MATCH": true, "REGEX_EXTRACT": true, "REGEX_REPLACE": true,
	// Date/time
	"TODAY": true, "NOW": true, "DATEADD": true, "DATETIME_DIFF": true,
	"DATETIME_FORMAT": true, "DATETIME_PARSE": true, "SET_LOCALE": true,
	"SET_TIMEZONE": true, "YEAR": true, "MONTH": true, "DAY": true,
	"HOUR": true, "MINUTE": true, "SECOND": true, "WEEKDAY": true,
	"WEEKNUM": true, "TIMESTR": true, "TONOW": true, "FROMNOW": true,
	"IS_SAME": true, "IS_BEFORE": true, "IS_AFTER": true, "WORKDAY": true,
	"WORKDAY_DIFF": true,
	// Array
	"ARRAYJOIN": true, "ARRAYUNIQUE": true, "ARRAYCOMPACT": true,
	"ARRAYFLATTEN": true,
	// Record/special
	"RECORD_ID": true, "CREATED_TIME": true, "LAST_MODIFIED_TIME": true,
	"ERROR": true, "ISERROR": true,
}

// IsFunctionName reports whether name is a known Airtable function,
// ignoring case.
func IsFunctionName(name string) bool {
	return functionNames[strings.ToUpper(name)]
}

// tokenizer scans a formula string left to right. It never fails: anything
// it cannot classify becomes a single-byte unknown token, so malformed
// input still round-trips.
type tokenizer struct {
	src    string
	pos    int
	tokens []Token
	depth  int
}

// Tokenize splits a formula into tokens. Concatenating the token values
// reproduces the input exactly.
func Tokenize(src string) []Token {
	t := &tokenizer{src: src}
	for t.pos < len(t.src) {
		switch {
		case t.whitespace(),
			t.str(),
			t.fieldRef(),
			t.number(),
			t.operator(),
			t.paren(),
			t.comma(),
			t.identifier():
		default:
			t.emit(TokenUnknown, t.src[t.pos:t.pos+1])
			t.pos++
		}
	}
	return t.tokens
}

func (t *tokenizer) emit(typ TokenType, value string) {
	t.tokens = append(t.tokens, Token{Type: typ, Value: value})
}

func isSpace(c byte) bool { return c == ' ' || c == '\t' || c == '\n' || c == '\r' }
func isDigit(c byte) bool { return c >= '0' && c <= '9' }
func isAlpha(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c == '_'
}

func (t *tokenizer) whitespace() bool {
	if !isSpace(t.src[t.pos]) {
		return false
	}
	start := t.pos
	for t.pos < len(t.src) && isSpace(t.src[t.pos]) {
		t.pos++
	}
	t.emit(TokenWhitespace, t.src[start:t.pos])
	return true
}

// str scans a single- or double-quoted literal, honoring backslash escapes.
// An unterminated literal runs to the end of input.
func (t *tokenizer) str() bool {
	quote := t.src[t.pos]
	if quote != '"' && quote != '\'' {
		return false
	}
	start := t.pos
	t.pos++
	for t.pos < len(t.src) {
		c := t.src[t.pos]
		if c == '\\' && t.pos+1 < len(t.src) {
			t.pos += 2
			continue
		}
		t.pos++
		if c == quote {
			break
		}
	}
	t.emit(TokenString, t.src[start:t.pos])
	return true
}

// fieldRef scans {Field Name}, tolerating nested braces.
func (t *tokenizer) fieldRef() bool {
	if t.src[t.pos] != '{' {
		return false
	}
	start := t.pos
	t.pos++
	depth := 1
	for t.pos < len(t.src) && depth > 0 {
		switch t.src[t.pos] {
		case '{':
			depth++
		case '}':
			depth--
		}
		t.pos++
	}
	t.emit(TokenFieldRef, t.src[start:t.pos])
	return true
}

// negativeContext reports whether a '-' at the current position starts a
// negative number rather than acting as subtraction: true at the start of
// input and after an open paren, comma, or operator.
func (t *tokenizer) negativeContext() bool {
	for i := len(t.tokens) - 1; i >= 0; i-- {
		tok := t.tokens[i]
		if tok.Type == TokenWhitespace {
			continue
		}
		switch tok.Type {
		case TokenOperator, TokenComma:
			return true
		case TokenParen:
			return tok.Value == "("
		}
		return false
	}
	return true
}

func (t *tokenizer) number() bool {
	start := t.pos
	if t.src[t.pos] == '-' {
		if !t.negativeContext() {
			return false
		}
		if t.pos+1 >= len(t.src) || !isDigit(t.src[t.pos+1]) {
			return false
		}
		t.pos++
	}
	if t.pos >= len(t.src) || !isDigit(t.src[t.pos]) {
		t.pos = start
		return false
	}
	for t.pos < len(t.src) && isDigit(t.src[t.pos]) {
		t.pos++
	}
	if t.pos < len(t.src) && t.src[t.pos] == '.' {
		t.pos++
		for t.pos < len(t.src) && isDigit(t.src[t.pos]) {
			t.pos++
		}
	}
	t.emit(TokenNumber, t.src[start:t.pos])
	return true
}

func (t *tokenizer) operator() bool {
	if t.pos+1 < len(t.src) {
		two := t.src[t.pos : t.pos+2]
		if two == "!=" || two == "<=" || two == ">=" {
			t.emit(TokenOperator, two)
			t.pos += 2
			return true
		}
	}
	switch t.src[t.pos] {
	case '=', '<', '>', '&', '+', '-', '*', '/':
		t.emit(TokenOperator, t.src[t.pos:t.pos+1])
		t.pos++
		return true
	}
	return false
}

func (t *tokenizer) paren() bool {
	switch t.src[t.pos] {
	case '(':
		t.depth++
		t.tokens = append(t.tokens, Token{Type: TokenParen, Value: "(", Depth: t.depth})
	case ')':
		depth := t.depth
		if depth < 1 {
			depth = 1
		}
		t.tokens = append(t.tokens, Token{Type: TokenParen, Value: ")", Depth: depth})
		if t.depth > 0 {
			t.depth--
		}
	default:
		return false
	}
	t.pos++
	return true
}

func (t *tokenizer) comma() bool {
	if t.src[t.pos] != ',' {
		return false
	}
	t.emit(TokenComma, ",")
	t.pos++
	return true
}

func (t *tokenizer) identifier() bool {
	if !isAlpha(t.src[t.pos]) {
		return false
	}
	start := t.pos
	for t.pos < len(t.src) && (isAlpha(t.src[t.pos]) || isDigit(t.src[t.pos])) {
		t.pos++
	}
	value := t.src[start:t.pos]
	if IsFunctionName(value) {
		t.emit(TokenFunction, value)
	} else {
		t.emit(TokenUnknown, value)
	}
	return true
}
