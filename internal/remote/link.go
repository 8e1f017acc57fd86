package remote

import (
	"mvdan.cc/xurls/v2"
)

// linkPattern matches scheme-qualified URLs and trims trailing punctuation
// the same way for every hosting provider.
var linkPattern = xurls.Strict()

// FindLink returns the first URL in text, in document order.
func FindLink(text string) (string, bool) {
	loc := linkPattern.FindStringIndex(text)
	if loc == nil {
		return "", false
	}
	return text[loc[0]:loc[1]], true
}
