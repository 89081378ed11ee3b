package extract

import "golang.org/x/net/html"

// Extractor turns one certificate list item into a Record.
// Implementations must be pure functions of the fragment and must report
// problems through Record.Err rather than panicking or returning errors.
type Extractor interface {
	Extract(fragment *html.Node) Record
}

// RuleExtractor applies an ordered rule table to a fragment. The zero value
// uses DefaultRules.
type RuleExtractor struct {
	Rules []Rule
}

func (e RuleExtractor) Extract(fragment *html.Node) Record {
	rules := e.Rules
	if rules == nil {
		rules = DefaultRules
	}
	return extractWith(fragment, rules)
}
