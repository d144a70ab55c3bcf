package validator

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/goccy/go-json"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// DefaultFallbackLanguage is the fallback when a catalog contains it and no
// other fallback was set with WithFallback.
var DefaultFallbackLanguage = language.English

// Catalog holds message sets per language. When no preferred language
// matches, the fallback language's set is returned: the WithFallback tag,
// else English, else the first language by tag.
//
// Source layout (YAML shown, JSON is equivalent):
//
//	en:
//	  required: "The :key field is required."
//	  min:
//	    string: "The :key field must be at least :min characters."
//	    numeric: "The :key field must be at least :min."
//	de:
//	  required: "Das Feld :key ist erforderlich."
//
// Nested maps are flattened with dots, so the "min" block above yields the
// keys "min.string" and "min.numeric".
type Catalog struct {
	tags     []language.Tag
	messages map[language.Tag]map[string]string
	matcher  language.Matcher
}

// CatalogOption configures catalog parsing.
type CatalogOption func(*catalogOptions)

type catalogOptions struct {
	fallback language.Tag
}

// WithFallback sets the language used when no preferred language matches.
// A tag missing from the catalog is ignored.
func WithFallback(tag language.Tag) CatalogOption {
	return func(o *catalogOptions) { o.fallback = tag }
}

// LoadCatalog reads a catalog file. The format is chosen by extension:
// .yaml/.yml or .json.
func LoadCatalog(ctx context.Context, path string, opts ...CatalogOption) (*Catalog, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read message catalog %s: %w", path, err)
	}
	return ParseCatalog(ctx, content, filepath.Ext(path), opts...)
}

// ParseCatalog decodes catalog content in the given format ("yaml", "yml"
// or "json", with or without a leading dot).
func ParseCatalog(ctx context.Context, content []byte, format string, opts ...CatalogOption) (*Catalog, error) {
	o := catalogOptions{fallback: DefaultFallbackLanguage}
	for _, opt := range opts {
		opt(&o)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var raw map[string]any
	switch strings.ToLower(strings.TrimPrefix(format, ".")) {
	case "yaml", "yml":
		if err := yaml.Unmarshal(content, &raw); err != nil {
			return nil, errors.Join(ErrParseCatalog, err)
		}
	case "json":
		if err := json.Unmarshal(content, &raw); err != nil {
			return nil, errors.Join(ErrParseCatalog, err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedCatalog, format)
	}

	if len(raw) == 0 {
		return nil, ErrEmptyCatalog
	}

	c := &Catalog{messages: make(map[language.Tag]map[string]string, len(raw))}
	for lang, val := range raw {
		tag, err := language.Parse(lang)
		if err != nil {
			return nil, errors.Join(ErrParseCatalog, fmt.Errorf("language %q: %w", lang, err))
		}
		set, ok := val.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: language %q: expected map, got %T", ErrParseCatalog, lang, val)
		}

		flat := make(map[string]string)
		if err := flatten("", set, flat); err != nil {
			return nil, errors.Join(ErrParseCatalog, fmt.Errorf("language %q: %w", lang, err))
		}
		c.messages[tag] = flat
		c.tags = append(c.tags, tag)
	}

	slices.SortFunc(c.tags, func(a, b language.Tag) int {
		return strings.Compare(a.String(), b.String())
	})
	if i := slices.Index(c.tags, o.fallback); i > 0 {
		fallback := c.tags[i]
		c.tags = slices.Delete(c.tags, i, i+1)
		c.tags = slices.Insert(c.tags, 0, fallback)
	}
	// The matcher answers with its first tag when nothing matches.
	c.matcher = language.NewMatcher(c.tags)
	return c, nil
}

func flatten(prefix string, in map[string]any, out map[string]string) error {
	for k, v := range in {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch t := v.(type) {
		case string:
			out[key] = t
		case map[string]any:
			if err := flatten(key, t, out); err != nil {
				return err
			}
		default:
			return fmt.Errorf("key %q: expected string or map, got %T", key, v)
		}
	}
	return nil
}

// Languages returns the catalog languages, fallback first, then by tag.
func (c *Catalog) Languages() []language.Tag {
	return slices.Clone(c.tags)
}

// Fallback returns the language used when nothing matches.
func (c *Catalog) Fallback() language.Tag {
	return c.tags[0]
}

// Messages returns the message set best matching the preferred languages.
// Without a usable match it returns the fallback language's set.
func (c *Catalog) Messages(preferred ...language.Tag) map[string]string {
	tag := c.tags[0]
	if len(preferred) > 0 {
		_, idx, conf := c.matcher.Match(preferred...)
		if conf != language.No {
			tag = c.tags[idx]
		}
	}
	return mergeMessages(nil, c.messages[tag])
}

// MessagesFor picks a message set from an Accept-Language style string,
// e.g. "de-CH, fr;q=0.9". Malformed input yields the fallback set.
func (c *Catalog) MessagesFor(accept string) map[string]string {
	tags, _, err := language.ParseAcceptLanguage(accept)
	if err != nil {
		return c.Messages()
	}
	return c.Messages(tags...)
}
