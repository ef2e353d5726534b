package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookupIdent(t *testing.T) {
	tests := []struct {
		ident    string
		expected Type
	}{
		{"fn", FUNCTION},
		{"let", LET},
		{"true", TRUE},
		{"false", FALSE},
		{"if", IF},
		{"else", ELSE},
		{"return", RETURN},
		{"null", IDENT}, // "null" is not a keyword; it's a plain identifier
		{"foobar", IDENT},
		{"x", IDENT},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, LookupIdent(tt.ident), "ident=%s", tt.ident)
	}
}

func TestPrecedenceOf(t *testing.T) {
	tests := []struct {
		tok      Type
		expected Precedence
	}{
		{EQ, EQUALS},
		{NEQ, EQUALS},
		{LT, LESSGREATER},
		{GE, LESSGREATER},
		{PLUS, SUM},
		{MINUS, SUM},
		{ASTERISK, PRODUCT},
		{MODULO, PRODUCT},
		{LPAREN, CALL},
		{LBRACKET, CALL},
		{SEMICOLON, LOWEST},
		{EOF, LOWEST},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, PrecedenceOf(tt.tok), "tok=%s", tt.tok)
	}

	assert.True(t, PRODUCT > SUM)
	assert.True(t, SUM > EQUALS)
	assert.True(t, PREFIX > PRODUCT)
	assert.True(t, CALL > PREFIX)
}

func TestNew(t *testing.T) {
	tok := New(IDENT, "x", 3, 7)
	assert.Equal(t, Token{Type: IDENT, Literal: "x", Line: 3, Column: 7}, tok)
}
