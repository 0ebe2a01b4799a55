package htmlutil

import (
	"errors"
	"regexp"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func parse(t *testing.T, src string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(src))
	require.NoError(t, err)
	return doc
}

const page = `<html><body>
<div class="outer wrapper" id="a">
  <section id="first"><p>one</p><div class="toctree-wrapper" id="b"><p>two</p></div></section>
  <div class="toctree-wrapper" id="c"></div>
</div>
<table class="docutils">
  <tr><td><a href="archive-letter.zip">letter</a></td></tr>
  <tr><td><a href="https://x.org/3/archives/python-3.12-docs-pdf-a4.zip">a4</a></td></tr>
</table>
<dl><dt>Author:</dt><dd>Guido</dd><dt>Status:</dt><dd><abbr>Final</abbr></dd></dl>
</body></html>`

func TestFindTagReturnsFirstPreOrderMatch(t *testing.T) {
	doc := parse(t, page)

	got, err := FindTag(doc.Selection, "div", Attr("class", "toctree-wrapper"))
	require.NoError(t, err)
	assert.Equal(t, "b", got.AttrOr("id", ""))

	got, err = FindTag(doc.Selection, "p")
	require.NoError(t, err)
	assert.Equal(t, "one", got.Text())
}

func TestFindTagMatchesRootItself(t *testing.T) {
	doc := parse(t, page)
	outer := doc.Find("div#a")

	got, err := FindTag(outer, "div")
	require.NoError(t, err)
	assert.Equal(t, "a", got.AttrOr("id", ""))
}

func TestFindTagClassTokens(t *testing.T) {
	doc := parse(t, page)

	got, err := FindTag(doc.Selection, "div", Attr("class", "wrapper"))
	require.NoError(t, err)
	assert.Equal(t, "a", got.AttrOr("id", ""))

	_, err = FindTag(doc.Selection, "div", Attr("class", "outer wrap"))
	assert.ErrorIs(t, err, ErrTagNotFound)
}

func TestFindTagPattern(t *testing.T) {
	doc := parse(t, page)

	got, err := FindTag(doc.Selection, "a", AttrMatch("href", regexp.MustCompile(`.+pdf-a4\.zip$`)))
	require.NoError(t, err)
	assert.Equal(t, "a4", got.Text())
}

func TestFindTagNotFound(t *testing.T) {
	doc := parse(t, page)

	tests := []struct {
		name     string
		tag      string
		matchers []Matcher
	}{
		{name: "missing tag", tag: "article"},
		{name: "missing attr", tag: "section", matchers: []Matcher{Attr("id", "numerical-index")}},
		{name: "pattern miss", tag: "a", matchers: []Matcher{AttrMatch("href", regexp.MustCompile(`epub$`))}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FindTag(doc.Selection, tt.tag, tt.matchers...)
			assert.Nil(t, got)

			var tnf *TagNotFoundError
			require.True(t, errors.As(err, &tnf))
			assert.Equal(t, tt.tag, tnf.Tag)
			assert.Len(t, tnf.Attrs, len(tt.matchers))
		})
	}
}

func TestFindTagNilRoot(t *testing.T) {
	_, err := FindTag(nil, "div")
	assert.ErrorIs(t, err, ErrTagNotFound)
}

func TestFindFuncAndNextSibling(t *testing.T) {
	doc := parse(t, page)
	dl, err := FindTag(doc.Selection, "dl")
	require.NoError(t, err)

	dt, err := FindFunc(dl, func(n *html.Node) bool {
		return n.Data == "dt" && strings.Contains(GetText(n), "Status")
	})
	require.NoError(t, err)

	dd, err := NextSibling(dt, "dd")
	require.NoError(t, err)
	assert.Equal(t, "Final", Text(dd))

	last := dl.Find("dd").Last()
	_, err = NextSibling(last, "")
	assert.ErrorIs(t, err, ErrTagNotFound)

	_, err = FindFunc(dl, func(n *html.Node) bool { return n.Data == "table" })
	assert.ErrorIs(t, err, ErrTagNotFound)
}

func TestTextContains(t *testing.T) {
	doc := parse(t, page)

	got, err := FindTag(doc.Selection, "dt", TextContains("Status"))
	require.NoError(t, err)
	assert.Equal(t, "Status:", got.Text())
}

func TestCleanText(t *testing.T) {
	assert.Equal(t, "What’s New In Python 3.12", CleanText("\n  What’s New In Python 3.12¶\n"))
	assert.Equal(t, "Editor: A B", CleanText("Editor:\n\tA   B"))
}

func TestEmptyResponseError(t *testing.T) {
	var err error = &EmptyResponseError{Marker: "All versions"}
	assert.ErrorIs(t, err, ErrEmptyResponse)
	assert.NotErrorIs(t, err, ErrTagNotFound)
	assert.Contains(t, err.Error(), "All versions")
}
