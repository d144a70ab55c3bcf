package validator

import "strings"

// RuleRequired is handled by the validator itself rather than a Handler.
const RuleRequired = "required"

// Token is one parsed rule, e.g. "between:1,10" → {Name: "between", Params: ["1", "10"]}.
type Token struct {
	Name   string
	Params []string
}

// String renders the token back into rule syntax.
func (t Token) String() string {
	if len(t.Params) == 0 {
		return t.Name
	}
	return t.Name + ":" + strings.Join(t.Params, ",")
}

// SplitRules splits a pipe-delimited rule string into its raw tokens.
func SplitRules(rules string) []string {
	return strings.Split(rules, "|")
}

// ParseToken splits a raw rule on its first colon; the remainder is a
// comma-separated parameter list.
func ParseToken(raw string) Token {
	name, params, ok := strings.Cut(raw, ":")
	if !ok {
		return Token{Name: name}
	}
	return Token{Name: name, Params: strings.Split(params, ",")}
}

// ParseRules parses "required|min:5" into tokens.
func ParseRules(rules string) []Token {
	raw := SplitRules(rules)
	out := make([]Token, len(raw))
	for i, r := range raw {
		out[i] = ParseToken(r)
	}
	return out
}

// Label converts a field name into the form used in messages:
// underscores and hyphens become spaces.
func Label(field string) string {
	return strings.NewReplacer("_", " ", "-", " ").Replace(field)
}
