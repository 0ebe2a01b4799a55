package htmlutil

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Predicate reports whether an element node is the one being looked for.
type Predicate func(n *html.Node) bool

// Matcher narrows a FindTag search. String describes it for error messages.
type Matcher struct {
	Match Predicate
	Desc  string
}

// Attr matches an attribute with a literal value. For "class" the value is
// compared against each whitespace separated class token.
func Attr(key, value string) Matcher {
	return Matcher{
		Desc: fmt.Sprintf("%s=%q", key, value),
		Match: func(n *html.Node) bool {
			v, ok := attrValue(n, key)
			if !ok {
				return false
			}
			if key == "class" {
				return slices.Contains(strings.Fields(v), value)
			}
			return v == value
		},
	}
}

// AttrMatch matches an attribute value against a pattern.
func AttrMatch(key string, re *regexp.Regexp) Matcher {
	return Matcher{
		Desc: fmt.Sprintf("%s=/%s/", key, re.String()),
		Match: func(n *html.Node) bool {
			v, ok := attrValue(n, key)
			if !ok {
				return false
			}
			if key == "class" {
				return slices.ContainsFunc(strings.Fields(v), re.MatchString)
			}
			return re.MatchString(v)
		},
	}
}

func TextContains(substr string) Matcher {
	return Matcher{
		Desc: fmt.Sprintf("text~%q", substr),
		Match: func(n *html.Node) bool {
			return strings.Contains(GetText(n), substr)
		},
	}
}

// FindTag returns the first element, in document order, among root and its
// descendants whose name is name (any name when empty) and which satisfies
// every matcher.
func FindTag(root *goquery.Selection, name string, matchers ...Matcher) (*goquery.Selection, error) {
	pred := func(n *html.Node) bool {
		if name != "" && n.Data != name {
			return false
		}
		for _, m := range matchers {
			if !m.Match(n) {
				return false
			}
		}
		return true
	}

	sel, ok := find(root, pred)
	if !ok {
		descs := make([]string, 0, len(matchers))
		for _, m := range matchers {
			descs = append(descs, m.Desc)
		}
		return nil, &TagNotFoundError{Tag: name, Attrs: descs}
	}

	return sel, nil
}

// FindFunc is FindTag with an arbitrary predicate.
func FindFunc(root *goquery.Selection, pred Predicate) (*goquery.Selection, error) {
	sel, ok := find(root, pred)
	if !ok {
		return nil, &TagNotFoundError{Attrs: []string{"predicate"}}
	}

	return sel, nil
}

// NextSibling returns the element following sel, which must be named name
// when name is not empty.
func NextSibling(sel *goquery.Selection, name string) (*goquery.Selection, error) {
	next := sel.Next()
	if next.Length() == 0 || (name != "" && goquery.NodeName(next) != name) {
		return nil, &TagNotFoundError{Tag: name, Attrs: []string{"(next sibling)"}}
	}

	return next, nil
}

func find(root *goquery.Selection, pred Predicate) (*goquery.Selection, bool) {
	if root == nil {
		return nil, false
	}

	for i, n := range root.Nodes {
		if n.Type == html.ElementNode && pred(n) {
			return root.Eq(i), true
		}
		if match := walk(n, pred); match != nil {
			return root.FindNodes(match), true
		}
	}

	return nil, false
}

func walk(n *html.Node, pred Predicate) *html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && pred(c) {
			return c
		}
		if match := walk(c, pred); match != nil {
			return match
		}
	}

	return nil
}

func attrValue(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}

	return "", false
}
