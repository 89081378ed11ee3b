package extract

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// Column identifies one Record field by its output column name.
type Column string

const (
	ColName         Column = "name"
	ColLink         Column = "link"
	ColOrganization Column = "organization"
	ColIssueDate    Column = "issue_date"
)

// Predicate reports whether an element node is the one a rule is looking for.
type Predicate func(n *html.Node) bool

// Rule binds a field to the predicate that locates it and the reader that
// pulls its value from the matched node.
type Rule struct {
	Field Column
	Match Predicate
	// Value reads the field from the matched node. ok=false leaves the field absent.
	Value func(n *html.Node) (string, bool)
}

// DefaultRules matches the markup of a profile "Licenses & certifications" list.
// The visible title is the aria-hidden copy; the screen-reader copy is a
// sibling span.visually-hidden and must not be picked.
var DefaultRules = []Rule{
	{
		Field: ColName,
		Match: And(Tag("span"), AttrEquals("aria-hidden", "true")),
		Value: NormalizedText,
	},
	{
		Field: ColLink,
		Match: And(Tag("a"), HasClass("optional-action-target-wrapper"), AttrContains("aria-label", "Show credential for")),
		Value: Attr("href"),
	},
	{
		Field: ColOrganization,
		Match: And(Tag("span"), ClassListEquals("t-14", "t-normal")),
		Value: NormalizedText,
	},
	{
		Field: ColIssueDate,
		Match: And(Tag("span"), HasClass("pvs-entity__caption-wrapper")),
		Value: NormalizedText,
	},
}

// Extract runs DefaultRules over a single list item.
func Extract(fragment *html.Node) Record {
	return extractWith(fragment, DefaultRules)
}

func extractWith(fragment *html.Node, rules []Rule) (rec Record) {
	defer func() {
		if r := recover(); r != nil {
			rec = failed(fmt.Errorf("%v", r))
		}
	}()
	if fragment == nil {
		return failed(errors.New("nil fragment"))
	}
	if fragment.Type != html.ElementNode {
		return failed(fmt.Errorf("fragment is a %s node, not an element", nodeTypeName(fragment.Type)))
	}
	for _, r := range rules {
		n := FindFirst(fragment, r.Match)
		if n == nil {
			continue
		}
		v, ok := r.Value(n)
		if !ok {
			continue
		}
		if err := rec.set(r.Field, Some(v)); err != nil {
			return failed(err)
		}
	}
	return rec
}

func (r *Record) set(name Column, f Field) error {
	switch name {
	case ColName:
		r.Name = f
	case ColLink:
		r.Link = f
	case ColOrganization:
		r.Organization = f
	case ColIssueDate:
		r.IssueDate = f
	default:
		return fmt.Errorf("unknown field %q", string(name))
	}
	return nil
}

func failed(err error) Record {
	return Record{Err: "failed to parse certificate info: " + err.Error()}
}

// FindFirst returns the first strict descendant of root, in depth-first
// document order, for which match returns true. Only element nodes are tested.
func FindFirst(root *html.Node, match Predicate) *html.Node {
	var res *html.Node
	var dfs func(*html.Node)
	dfs = func(cur *html.Node) {
		for c := cur.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode && match(c) {
				res = c
				return
			}
			dfs(c)
			if res != nil {
				return
			}
		}
	}
	dfs(root)
	return res
}

// Tag matches elements by (case-insensitive) tag name.
func Tag(name string) Predicate {
	return func(n *html.Node) bool {
		return strings.EqualFold(n.Data, name)
	}
}

// AttrEquals matches elements whose attribute key has exactly the value val.
func AttrEquals(key, val string) Predicate {
	return func(n *html.Node) bool {
		v, ok := attr(n, key)
		return ok && v == val
	}
}

// AttrContains matches elements whose attribute key contains substr.
func AttrContains(key, substr string) Predicate {
	return func(n *html.Node) bool {
		v, ok := attr(n, key)
		return ok && strings.Contains(v, substr)
	}
}

// HasClass matches elements whose class list contains class.
func HasClass(class string) Predicate {
	return func(n *html.Node) bool {
		for _, c := range classList(n) {
			if c == class {
				return true
			}
		}
		return false
	}
}

// ClassListEquals matches elements whose class list is exactly classes, in order.
// A span carrying "t-14 t-normal t-black--light" is a caption, not an organization.
func ClassListEquals(classes ...string) Predicate {
	return func(n *html.Node) bool {
		got := classList(n)
		if len(got) != len(classes) {
			return false
		}
		for i := range got {
			if got[i] != classes[i] {
				return false
			}
		}
		return true
	}
}

// And matches when every predicate matches.
func And(preds ...Predicate) Predicate {
	return func(n *html.Node) bool {
		for _, p := range preds {
			if !p(n) {
				return false
			}
		}
		return true
	}
}

// NormalizedText reads the node's visible text with whitespace collapsed.
func NormalizedText(n *html.Node) (string, bool) {
	return NormalizeWhitespace(Text(n)), true
}

// Attr reads an attribute verbatim. A missing attribute leaves the field absent.
func Attr(key string) func(*html.Node) (string, bool) {
	return func(n *html.Node) (string, bool) {
		return attr(n, key)
	}
}

// Text concatenates every descendant text node. Comments are skipped.
func Text(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(cur *html.Node) {
		if cur.Type == html.TextNode {
			b.WriteString(cur.Data)
			return
		}
		for c := cur.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

// NormalizeWhitespace collapses runs of Unicode whitespace to single spaces
// and trims both ends.
func NormalizeWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && strings.EqualFold(a.Key, key) {
			return a.Val, true
		}
	}
	return "", false
}

func classList(n *html.Node) []string {
	v, _ := attr(n, "class")
	return strings.Fields(v)
}

func nodeTypeName(t html.NodeType) string {
	switch t {
	case html.ErrorNode:
		return "error"
	case html.TextNode:
		return "text"
	case html.DocumentNode:
		return "document"
	case html.CommentNode:
		return "comment"
	case html.DoctypeNode:
		return "doctype"
	case html.RawNode:
		return "raw"
	default:
		return "unknown"
	}
}
