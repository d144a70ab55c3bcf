package validator

import (
	"crypto/subtle"
	"log/slog"
	"maps"
	"slices"

	"github.com/dmitrymomot/mkit/pkg/logger"
)

// Validator checks flat input records against per-field rule lists and
// keeps an error log across Check calls.
//
// A Validator is request-scoped: it is not safe for concurrent Check calls.
// The log is not reset by Check; call ClearErrors between independent runs.
type Validator struct {
	rules     map[string][]string
	order     []string
	messages  map[string]string
	errors    ValidationErrors
	registry  *Registry
	session   TokenSource
	csrfField string
	log       *slog.Logger
}

// New creates a validator with its own default registry unless WithRegistry is given.
func New(opts ...Option) *Validator {
	v := &Validator{
		rules:     make(map[string][]string),
		messages:  DefaultMessages(),
		csrfField: DefaultCSRFField,
		log:       logger.Discard(),
	}
	for _, opt := range opts {
		opt(v)
	}
	if v.registry == nil {
		v.registry = NewRegistry()
	}
	return v
}

// Registry returns the handler registry used by this validator.
func (v *Validator) Registry() *Registry {
	return v.registry
}

// SetSession attaches a CSRF token source; nil disables the CSRF check.
func (v *Validator) SetSession(s TokenSource) *Validator {
	v.session = s
	return v
}

func (v *Validator) Session() TokenSource {
	return v.session
}

// SetMessages replaces the whole message set.
func (v *Validator) SetMessages(messages map[string]string) *Validator {
	v.messages = maps.Clone(messages)
	if v.messages == nil {
		v.messages = make(map[string]string)
	}
	return v
}

// Messages returns a copy of the message set.
func (v *Validator) Messages() map[string]string {
	return maps.Clone(v.messages)
}

// SetRulesFor sets the rules of field from a pipe-delimited string such as
// "required|min:5", replacing previous rules.
func (v *Validator) SetRulesFor(field, rules string) *Validator {
	return v.SetRuleListFor(field, SplitRules(rules))
}

// SetRuleListFor sets the rules of field from individual tokens.
func (v *Validator) SetRuleListFor(field string, rules []string) *Validator {
	if _, ok := v.rules[field]; !ok {
		v.order = append(v.order, field)
	}
	v.rules[field] = slices.Clone(rules)
	return v
}

// RulesFor returns the raw rule tokens of field, or nil.
func (v *Validator) RulesFor(field string) []string {
	return slices.Clone(v.rules[field])
}

func (v *Validator) HasRulesFor(field string) bool {
	_, ok := v.rules[field]
	return ok
}

func (v *Validator) ClearRulesFor(field string) *Validator {
	if _, ok := v.rules[field]; !ok {
		return v
	}
	delete(v.rules, field)
	v.order = slices.DeleteFunc(v.order, func(f string) bool { return f == field })
	return v
}

// Fields returns the fields with rules in evaluation order.
func (v *Validator) Fields() []string {
	return slices.Clone(v.order)
}

// Check validates data and reports whether the error log is empty afterwards.
//
// overrides are merged over the validator's messages for this call only.
// With a session attached, a missing or wrong CSRF token logs the csrf
// message and returns false before any field rule runs.
func (v *Validator) Check(data map[string]any, overrides map[string]string) bool {
	messages := mergeMessages(v.messages, overrides)

	if v.session != nil && !v.tokenMatches(data) {
		v.log.Debug("csrf token mismatch")
		v.errors.Add(ValidationError{
			Rule:           MessageCSRF,
			Message:        messageOr(messages, MessageCSRF),
			TranslationKey: "validation." + MessageCSRF,
		})
		return false
	}

	for _, field := range v.order {
		v.checkField(field, data[field], messages)
	}

	return len(v.errors) == 0
}

func (v *Validator) tokenMatches(data map[string]any) bool {
	got, ok := data[v.csrfField].(string)
	if !ok {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(got), []byte(v.session.Token())) == 1
}

// checkField runs the rules of one field in order, stopping at the first failure.
func (v *Validator) checkField(field string, input any, messages map[string]string) {
	kind := KindOf(input)
	label := Label(field)
	empty := IsEmpty(input)

	for _, raw := range v.rules[field] {
		token := ParseToken(raw)

		if token.Name == RuleRequired {
			if !empty {
				continue
			}
			msg, ok := messages[RuleRequired+"."+field]
			if !ok {
				msg = BaseHandler{}.FormatMessage(messageOr(messages, MessageRequired), label, nil)
			}
			v.errors.Add(ValidationError{
				Field:             field,
				Rule:              RuleRequired,
				Message:           msg,
				TranslationKey:    "validation." + RuleRequired,
				TranslationValues: map[string]any{"field": field, "label": label},
			})
			return
		}

		// Optional and empty: nothing else to check.
		if empty {
			return
		}

		handler, ok := v.registry.Resolve(token.Name)
		if !ok {
			v.log.Debug("no handler for rule, skipping", logger.Rule(token.Name), logger.Field(field))
			continue
		}

		if dispatch(handler, kind, input, token.Params) {
			continue
		}

		msg := pickMessage(messages, token.Name, field, kind)
		v.errors.Add(ValidationError{
			Field:          field,
			Rule:           token.Name,
			Message:        handler.FormatMessage(msg, label, token.Params),
			TranslationKey: "validation." + token.Name,
			TranslationValues: map[string]any{
				"field":  field,
				"label":  label,
				"params": slices.Clone(token.Params),
			},
		})
		return
	}
}

// Errors returns the accumulated error log.
func (v *Validator) Errors() ValidationErrors {
	return slices.Clone(v.errors)
}

// ErrorMessages returns the logged messages in order.
func (v *Validator) ErrorMessages() []string {
	return v.errors.Messages()
}

// Err returns the log as an error, or nil when it is empty.
func (v *Validator) Err() error {
	if len(v.errors) == 0 {
		return nil
	}
	return v.Errors()
}

// ClearErrors empties the error log.
func (v *Validator) ClearErrors() *Validator {
	v.errors = nil
	return v
}

// messageOr returns messages[key], falling back to the built-in default.
func messageOr(messages map[string]string, key string) string {
	if m, ok := messages[key]; ok {
		return m
	}
	return DefaultMessages()[key]
}

func sortedKeys[V any](m map[string]V) []string {
	return slices.Sorted(maps.Keys(m))
}
