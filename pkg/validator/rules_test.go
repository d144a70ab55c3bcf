package validator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/mkit/pkg/validator"
)

func TestParseToken(t *testing.T) {
	tests := []struct {
		raw  string
		want validator.Token
	}{
		{"required", validator.Token{Name: "required"}},
		{"min:5", validator.Token{Name: "min", Params: []string{"5"}}},
		{"between:1,10", validator.Token{Name: "between", Params: []string{"1", "10"}}},
		{"after:12:30", validator.Token{Name: "after", Params: []string{"12:30"}}},
		{"min:", validator.Token{Name: "min", Params: []string{""}}},
		{"", validator.Token{Name: ""}},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got := validator.ParseToken(tt.raw)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseRules(t *testing.T) {
	tokens := validator.ParseRules("required|min:5|email")
	assert.Equal(t, []validator.Token{
		{Name: "required"},
		{Name: "min", Params: []string{"5"}},
		{Name: "email"},
	}, tokens)
}

func TestToken_String(t *testing.T) {
	assert.Equal(t, "required", validator.Token{Name: "required"}.String())
	assert.Equal(t, "between:1,10", validator.Token{Name: "between", Params: []string{"1", "10"}}.String())
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "first name", validator.Label("first_name"))
	assert.Equal(t, "zip code", validator.Label("zip-code"))
	assert.Equal(t, "age", validator.Label("age"))
}
