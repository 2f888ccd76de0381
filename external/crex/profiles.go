package crex

import (
	"strings"

	browser "github.com/EDDYCJY/fake-useragent"
)

const (
	ProfileChrome  = "chrome"
	ProfileFirefox = "firefox"
	ProfileSafari  = "safari"
	ProfileRandom  = "random"
)

// profileHeaders returns the request headers for one impersonation profile.
// Unknown names fall back to the chrome preset.
func profileHeaders(name string) map[string]string {
	headers := map[string]string{
		"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,*/*;q=0.8",
		"Accept-Language": "en-US,en;q=0.9",
		"Cache-Control":   "no-cache",
	}

	switch strings.ToLower(strings.TrimSpace(name)) {
	case ProfileFirefox:
		headers["User-Agent"] = browser.Firefox()
	case ProfileSafari:
		headers["User-Agent"] = browser.Safari()
	case ProfileRandom:
		headers["User-Agent"] = browser.Random()
	case ProfileChrome, "":
		headers["User-Agent"] = browser.Chrome()
	default:
		headers["User-Agent"] = browser.Chrome()
	}

	return headers
}
