package scraper

import (
	"fmt"
	"strings"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"

	"shelf/internal/services"
)

// Extractor finds the candidate srcset value in a parsed page.
type Extractor interface {
	Srcset(doc *html.Node) (string, error)
}

// SelectorExtractor matches the first element for a CSS selector and reads
// its srcset attribute.
type SelectorExtractor struct {
	raw        string
	selector   cascadia.Sel
	compileErr error
}

// NewSelectorExtractor compiles selector. A malformed selector is reported on
// every extraction rather than at construction time.
func NewSelectorExtractor(selector string) *SelectorExtractor {
	raw := strings.TrimSpace(selector)
	sel, err := cascadia.Parse(raw)
	return &SelectorExtractor{raw: raw, selector: sel, compileErr: err}
}

// Err returns the selector compilation error, if any.
func (e *SelectorExtractor) Err() error {
	if e.compileErr == nil {
		return nil
	}
	return services.Wrap(services.ErrParse, component, "compile selector", fmt.Sprintf("invalid selector %q", e.raw), e.compileErr)
}

// Srcset returns the srcset attribute of the first matching element.
func (e *SelectorExtractor) Srcset(doc *html.Node) (string, error) {
	if err := e.Err(); err != nil {
		return "", err
	}
	node := cascadia.Query(doc, e.selector)
	if node == nil {
		return "", services.Wrap(services.ErrParse, component, "extract", "poster element not found on page", nil)
	}
	for _, attr := range node.Attr {
		if attr.Namespace == "" && strings.EqualFold(attr.Key, "srcset") {
			return attr.Val, nil
		}
	}
	return "", services.Wrap(services.ErrParse, component, "extract", "poster element has no srcset attribute", nil)
}
