package validator

import (
	"regexp"
	"strings"
)

// MinimumHandler implements the "min" rule: string length in bytes,
// numeric value, item count or file size in bytes must be at least the
// first parameter.
type MinimumHandler struct {
	BaseHandler
}

func NewMinimumHandler() Handler { return &MinimumHandler{} }

func (h *MinimumHandler) CheckString(value string, params []string) bool {
	return len(value) >= IntParam(params, 0)
}

func (h *MinimumHandler) CheckNumeric(value float64, params []string) bool {
	return value >= float64(IntParam(params, 0))
}

func (h *MinimumHandler) CheckArray(value any, params []string) bool {
	return Count(value) >= IntParam(params, 0)
}

func (h *MinimumHandler) CheckFile(value File, params []string) bool {
	return value.Size >= int64(IntParam(params, 0))
}

// FormatMessage replaces :key with the label and :min with the first parameter.
func (h *MinimumHandler) FormatMessage(message, label string, params []string) string {
	return strings.NewReplacer(":key", label, ":min", Param(params, 0)).Replace(message)
}

var emailRegex = regexp.MustCompile(`^([a-z0-9_\.-]+)@([\da-z\.-]+)\.([a-z\.]{2,6})$`)

// EmailHandler implements the "email" rule for string input.
type EmailHandler struct {
	BaseHandler
}

func NewEmailHandler() Handler { return &EmailHandler{} }

func (h *EmailHandler) CheckString(value string, _ []string) bool {
	return emailRegex.MatchString(value)
}
