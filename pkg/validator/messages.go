package validator

import "maps"

// Message keys handled by the validator itself.
const (
	MessageCSRF     = "csrf"
	MessageRequired = "required"
)

// DefaultFallbackMessage is used when no message matches a failed rule.
const DefaultFallbackMessage = "The :key field failed to validate."

// DefaultMessages returns a fresh copy of the built-in message set.
func DefaultMessages() map[string]string {
	return map[string]string{
		MessageCSRF:     "CSRF Token Mismatch!  Validation failed.",
		MessageRequired: "The :key field is required.",
	}
}

// mergeMessages returns base overlaid with overrides.
func mergeMessages(base, overrides map[string]string) map[string]string {
	out := maps.Clone(base)
	if out == nil {
		out = make(map[string]string, len(overrides))
	}
	maps.Copy(out, overrides)
	return out
}

// pickMessage returns the most specific message for a failed rule:
// "<rule>.<field>", then "<rule>.<kind>", then "<rule>", then the fallback.
func pickMessage(messages map[string]string, rule, field string, kind Kind) string {
	if m, ok := messages[rule+"."+field]; ok {
		return m
	}
	if m, ok := messages[rule+"."+kind.String()]; ok {
		return m
	}
	if m, ok := messages[rule]; ok {
		return m
	}
	return DefaultFallbackMessage
}
