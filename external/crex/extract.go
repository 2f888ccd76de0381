package crex

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	sonic "github.com/bytedance/sonic"

	"github.com/crickslab/crex-api/internal/usecase"
)

const (
	// The upstream site is a Next.js app; the whole page state ships in a
	// single tagged script element.
	dataTagID = "__NEXT_DATA__"

	// Cloudflare interstitial marker. When the data tag is missing and this
	// phrase is present we are being rate-limited, not looking at a new
	// page shape.
	botBlockMarker = "Just a moment"
)

// extractPayload locates the embedded data blob inside raw HTML and parses
// it into a generic tree.
func extractPayload(html string) (map[string]any, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("%w: parse html: %v", usecase.ErrMalformedPayload, err)
	}

	sel := doc.Find("script#" + dataTagID)
	if sel.Length() == 0 {
		if strings.Contains(html, botBlockMarker) {
			return nil, fmt.Errorf("%w: bot-protection interstitial served instead of page", usecase.ErrBlocked)
		}
		return nil, fmt.Errorf("%w: no #%s script element in page", usecase.ErrDataTagNotFound, dataTagID)
	}

	var root map[string]any
	if err := sonic.UnmarshalString(sel.First().Text(), &root); err != nil {
		return nil, fmt.Errorf("%w: %v", usecase.ErrMalformedPayload, err)
	}

	return root, nil
}
