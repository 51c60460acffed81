package project

import (
	"fmt"
	"net/url"
	"strings"
)

// ValidateName rejects blank project names.
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	return nil
}

// ValidateCategory rejects categories outside the enumeration.
func ValidateCategory(c Category) error {
	if !c.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidCategory, c)
	}
	return nil
}

// ValidateLinks requires a label and an absolute http(s) URL on every link.
func ValidateLinks(links []Link) error {
	for i, l := range links {
		if strings.TrimSpace(l.Label) == "" {
			return fmt.Errorf("%w: link %d has no label", ErrInvalidLink, i)
		}
		u, err := url.Parse(strings.TrimSpace(l.URL))
		if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
			return fmt.Errorf("%w: link %q has an invalid url", ErrInvalidLink, l.Label)
		}
	}
	return nil
}
