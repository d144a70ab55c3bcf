// Package validator checks flat input records against rule strings such as
// "required|min:5|email".
//
// Each field gets an ordered list of rules. Check walks the fields in the
// order their rules were first set and, per field, runs the rules in order
// until one fails; the failure is formatted into a human-readable message
// and appended to the validator's error log. Other fields are still checked.
//
// # Rules and handlers
//
// "required" is built in: it fails on nil, "", "0", false, zero numbers and
// empty slices or maps. Every other rule name is looked up in a Registry of
// Handlers. A handler has one check per input Kind (string, numeric, array,
// file); BaseHandler makes every check pass by default so a handler only
// overrides what it cares about. Unknown rule names are skipped, and an
// empty optional field skips its remaining rules.
//
// Registries hold either a ready handler or a factory that is invoked on
// first use. Each Validator owns a fresh NewRegistry unless one is shared via
// WithRegistry, in which case registrations affect every validator sharing it.
//
// # Messages
//
// A failed rule picks the most specific message available:
// "<rule>.<field>", "<rule>.<kind>", "<rule>", then DefaultFallbackMessage.
// The handler formats it, replacing :key with the field label ("first_name"
// becomes "first name") and handler specific placeholders such as :min.
// Message sets can be loaded per language from YAML or JSON with LoadCatalog.
//
// # CSRF
//
// With a TokenSource attached (WithSession), Check first compares the
// record's "csrf_token" value with the source's token. A mismatch logs the
// "csrf" message and returns false without running any field rule.
//
// # Usage
//
//	v := validator.New(validator.WithSession(sess)).
//		SetRulesFor("email", "required|email").
//		SetRulesFor("age", "min:18")
//
//	if !v.Check(record, map[string]string{"min.age": "Adults only."}) {
//		for _, msg := range v.ErrorMessages() {
//			fmt.Println(msg)
//		}
//	}
//
// Check never clears the log; call ClearErrors before reusing a validator.
// Validators are not safe for concurrent use, registries are.
package validator
