package validator

import (
	"strconv"
	"strings"
)

// Handler implements the checks for one rule name. Check selects the
// method matching the input's Kind; params are the rule parameters, e.g.
// ["5"] for "min:5".
//
// Embed BaseHandler to get permissive defaults: every check passes unless
// the handler overrides it. A numeric-only handler therefore lets strings,
// arrays and files through.
type Handler interface {
	CheckString(value string, params []string) bool
	CheckNumeric(value float64, params []string) bool
	CheckArray(value any, params []string) bool
	CheckFile(value File, params []string) bool
	FormatMessage(message, label string, params []string) string
}

// HandlerFactory constructs a Handler on first use.
type HandlerFactory func() Handler

// BaseHandler provides the default Handler behaviour.
type BaseHandler struct{}

func (BaseHandler) CheckString(string, []string) bool   { return true }
func (BaseHandler) CheckNumeric(float64, []string) bool { return true }
func (BaseHandler) CheckArray(any, []string) bool       { return true }
func (BaseHandler) CheckFile(File, []string) bool       { return true }

// FormatMessage replaces the :key placeholder with the field label.
func (BaseHandler) FormatMessage(message, label string, _ []string) string {
	return strings.ReplaceAll(message, ":key", label)
}

// dispatch runs the check matching kind. KindNone always passes.
func dispatch(h Handler, kind Kind, value any, params []string) bool {
	switch kind {
	case KindString:
		return h.CheckString(toString(value), params)
	case KindNumeric:
		return h.CheckNumeric(toFloat(value), params)
	case KindArray:
		return h.CheckArray(value, params)
	case KindFile:
		return h.CheckFile(toFile(value), params)
	default:
		return true
	}
}

// IntParam returns params[i] as an integer. Fractions are truncated and
// missing or malformed parameters yield 0.
func IntParam(params []string, i int) int {
	if i < 0 || i >= len(params) {
		return 0
	}
	s := strings.TrimSpace(params[i])
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int(f)
	}
	return 0
}

// Param returns params[i] or an empty string.
func Param(params []string, i int) string {
	if i < 0 || i >= len(params) {
		return ""
	}
	return params[i]
}
