// Package taxonomy resolves free-text project tags onto a controlled
// vocabulary of canonical tags grouped by category.
//
// A Taxonomy is built once from an ordered list of definitions and is safe
// for concurrent use; it is never mutated after construction.
package taxonomy

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Category groups canonical tags.
type Category string

const (
	CategoryDomain     Category = "Domain"
	CategoryPlatform   Category = "Platform"
	CategoryStyle      Category = "Style"
	CategoryFeature    Category = "Feature"
	CategoryTechnology Category = "Technology"
	CategoryOther      Category = "Other"
)

var categories = []Category{
	CategoryDomain,
	CategoryPlatform,
	CategoryStyle,
	CategoryFeature,
	CategoryTechnology,
	CategoryOther,
}

var (
	// ErrInvalidDefinition indicates a definition that cannot be added to a taxonomy.
	ErrInvalidDefinition = errors.New("invalid tag definition")
	// ErrUnknownCategory indicates a category outside the fixed enumeration.
	ErrUnknownCategory = errors.New("unknown tag category")
)

// Categories returns the fixed category enumeration in display order.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// ParseCategory resolves a category name regardless of case.
func ParseCategory(s string) (Category, error) {
	for _, c := range categories {
		if strings.EqualFold(strings.TrimSpace(s), string(c)) {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
}

// Definition is one entry of the taxonomy table.
type Definition struct {
	Canonical string   `json:"canonical" yaml:"canonical"`
	Category  Category `json:"category" yaml:"category"`
	Aliases   []string `json:"aliases,omitempty" yaml:"aliases"`
}

// Taxonomy is an immutable tag resolver.
type Taxonomy struct {
	defs []Definition
	// lookup maps a lower-cased canonical or alias to the index of the first
	// definition that declared it.
	lookup map[string]int
	// canonical maps an exact canonical string to its definition index.
	canonical map[string]int
}

// New builds a taxonomy from definitions in declaration order. Earlier
// definitions win when aliases collide.
func New(defs []Definition) (*Taxonomy, error) {
	t := &Taxonomy{
		defs:      make([]Definition, 0, len(defs)),
		lookup:    make(map[string]int),
		canonical: make(map[string]int, len(defs)),
	}

	for i, def := range defs {
		canonical := strings.TrimSpace(def.Canonical)
		if canonical == "" {
			return nil, fmt.Errorf("%w: definition %d has no canonical form", ErrInvalidDefinition, i)
		}
		if !validCategory(def.Category) {
			return nil, fmt.Errorf("%w: %q has category %q", ErrInvalidDefinition, canonical, def.Category)
		}

		key := strings.ToLower(canonical)
		if prev, taken := t.lookup[key]; taken {
			return nil, fmt.Errorf("%w: %q is already claimed by %q", ErrInvalidDefinition, canonical, t.defs[prev].Canonical)
		}

		idx := len(t.defs)
		aliases := make([]string, 0, len(def.Aliases))
		t.lookup[key] = idx
		for _, alias := range def.Aliases {
			alias = strings.ToLower(strings.TrimSpace(alias))
			if alias == "" {
				continue
			}
			aliases = append(aliases, alias)
			if _, taken := t.lookup[alias]; !taken {
				t.lookup[alias] = idx
			}
		}

		t.canonical[canonical] = idx
		t.defs = append(t.defs, Definition{
			Canonical: canonical,
			Category:  def.Category,
			Aliases:   aliases,
		})
	}

	return t, nil
}

// MustNew is like New but panics on an invalid table.
func MustNew(defs []Definition) *Taxonomy {
	t, err := New(defs)
	if err != nil {
		panic(err)
	}
	return t
}

// Normalize resolves raw to its canonical tag. Unknown tags are returned with
// the first letter of every word upper-cased. Upper-casing can change the
// lookup key (dotless ı becomes I), so the formatted result is looked up once
// more to keep Normalize idempotent.
func (t *Taxonomy) Normalize(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if idx, ok := t.lookup[strings.ToLower(trimmed)]; ok {
		return t.defs[idx].Canonical
	}
	formatted := titleWords(trimmed)
	if idx, ok := t.lookup[strings.ToLower(formatted)]; ok {
		return t.defs[idx].Canonical
	}
	return formatted
}

// NormalizeAll normalizes every tag and removes duplicates, keeping the
// first occurrence.
func (t *Taxonomy) NormalizeAll(raw []string) []string {
	out := make([]string, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for _, r := range raw {
		tag := t.Normalize(r)
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}

// Category returns the category of an exact canonical tag. Aliases and raw
// spellings are not resolved and yield CategoryOther.
func (t *Taxonomy) Category(tag string) Category {
	if idx, ok := t.canonical[tag]; ok {
		return t.defs[idx].Category
	}
	return CategoryOther
}

// ByCategory returns the canonical tags of a category in declaration order.
func (t *Taxonomy) ByCategory(category Category) []string {
	var out []string
	for _, def := range t.defs {
		if def.Category == category {
			out = append(out, def.Canonical)
		}
	}
	return out
}

// Group is one category with its canonical tags.
type Group struct {
	Category Category `json:"category"`
	Tags     []string `json:"tags"`
}

// Groups returns every category, in enumeration order, with its canonical
// tags. Categories without tags have an empty, non-nil Tags.
func (t *Taxonomy) Groups() []Group {
	out := make([]Group, 0, len(categories))
	for _, c := range categories {
		tags := t.ByCategory(c)
		if tags == nil {
			tags = []string{}
		}
		out = append(out, Group{Category: c, Tags: tags})
	}
	return out
}

// Definitions returns a copy of the table.
func (t *Taxonomy) Definitions() []Definition {
	out := make([]Definition, len(t.defs))
	for i, def := range t.defs {
		out[i] = Definition{
			Canonical: def.Canonical,
			Category:  def.Category,
			Aliases:   append([]string(nil), def.Aliases...),
		}
	}
	return out
}

// titleWords upper-cases the first letter of each whitespace-delimited word
// and leaves every other rune, including the whitespace itself, untouched.
func titleWords(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	atWordStart := true
	for len(s) > 0 {
		r, size := utf8.DecodeRuneInString(s)
		s = s[size:]
		switch {
		case unicode.IsSpace(r):
			atWordStart = true
		case atWordStart:
			r = unicode.ToUpper(r)
			atWordStart = false
		}
		b.WriteRune(r)
	}
	return b.String()
}

func validCategory(c Category) bool {
	for _, known := range categories {
		if c == known {
			return true
		}
	}
	return false
}
