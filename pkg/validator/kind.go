package validator

import (
	"mime/multipart"
	"reflect"
)

// Kind is the validation type of an input value. It selects which Handler
// check runs for a rule.
type Kind int

const (
	// KindNone covers values no handler checks: nil, bools, structs, pointers.
	KindNone Kind = iota
	KindString
	KindNumeric
	KindArray
	KindFile
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumeric:
		return "numeric"
	case KindArray:
		return "array"
	case KindFile:
		return "file"
	default:
		return ""
	}
}

// File describes an uploaded file in an input record.
type File struct {
	Name    string
	Type    string
	TmpName string
	Size    int64
	Error   int
}

// KindOf classifies v.
//
// A map[string]any counts as a file when it carries a "type" key and a
// non-empty "tmp_name", matching the shape of a decoded upload descriptor.
func KindOf(v any) Kind {
	switch t := v.(type) {
	case nil, bool:
		return KindNone
	case string:
		return KindString
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return KindNumeric
	case File:
		return KindFile
	case *File:
		if t == nil {
			return KindNone
		}
		return KindFile
	case *multipart.FileHeader:
		if t == nil {
			return KindNone
		}
		return KindFile
	case map[string]any:
		if isFileMap(t) {
			return KindFile
		}
		return KindArray
	}

	// Named types classify by their underlying kind.
	switch reflect.ValueOf(v).Kind() {
	case reflect.String:
		return KindString
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return KindNumeric
	case reflect.Slice, reflect.Array, reflect.Map:
		return KindArray
	default:
		return KindNone
	}
}

func isFileMap(m map[string]any) bool {
	if _, ok := m["type"]; !ok {
		return false
	}
	return !IsEmpty(m["tmp_name"])
}

// IsEmpty reports whether v counts as missing: nil, "", "0", false, numeric
// zero, a nil pointer or an empty slice, array or map.
func IsEmpty(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == "" || t == "0"
	case bool:
		return !t
	case File:
		return t == File{}
	case *File:
		return t == nil
	case *multipart.FileHeader:
		return t == nil
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String:
		return rv.String() == "" || rv.String() == "0"
	case reflect.Bool:
		return !rv.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rv.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return rv.Float() == 0
	case reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len() == 0
	case reflect.Pointer, reflect.Interface:
		return rv.IsNil()
	default:
		return false
	}
}

// Count returns the number of items in an array-kind value, or 0.
func Count(v any) int {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len()
	default:
		return 0
	}
}

// toString converts a string-kind value, named string types included.
func toString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return reflect.ValueOf(v).String()
}

// toFloat converts a numeric-kind value.
func toFloat(v any) float64 {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint())
	case reflect.Float32, reflect.Float64:
		return rv.Float()
	default:
		return 0
	}
}

// toFile converts a file-kind value.
func toFile(v any) File {
	switch t := v.(type) {
	case File:
		return t
	case *File:
		return *t
	case *multipart.FileHeader:
		return File{
			Name: t.Filename,
			Type: t.Header.Get("Content-Type"),
			Size: t.Size,
		}
	case map[string]any:
		f := File{}
		f.Name, _ = t["name"].(string)
		f.Type, _ = t["type"].(string)
		f.TmpName, _ = t["tmp_name"].(string)
		if KindOf(t["size"]) == KindNumeric {
			f.Size = int64(toFloat(t["size"]))
		}
		if KindOf(t["error"]) == KindNumeric {
			f.Error = int(toFloat(t["error"]))
		}
		return f
	default:
		return File{}
	}
}
