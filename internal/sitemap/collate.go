package sitemap

import (
	"fmt"
	"strings"
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// DefaultLocale selects the CLDR root collation.
const DefaultLocale = "und"

// Collator compares names using a pinned locale collation.
// It is safe for concurrent use.
type Collator struct {
	mu  sync.Mutex
	c   *collate.Collator
	tag language.Tag
}

// NewCollator returns a collator for the given BCP 47 locale. An empty locale
// means DefaultLocale. Ill-formed locales are rejected rather than degraded
// to byte ordering.
func NewCollator(locale string) (*Collator, error) {
	locale = strings.TrimSpace(locale)
	if locale == "" {
		locale = DefaultLocale
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("collation locale %q: %w", locale, err)
	}
	return &Collator{c: collate.New(tag), tag: tag}, nil
}

// Compare returns -1, 0 or 1 depending on the collation order of a and b.
func (c *Collator) Compare(a, b string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.c.CompareString(a, b)
}

// Locale returns the resolved locale tag.
func (c *Collator) Locale() string {
	return c.tag.String()
}
