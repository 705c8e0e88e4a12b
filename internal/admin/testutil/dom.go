package testutil

import (
	"bytes"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

// ParseHTML parses the provided HTML payload into a goquery document for assertions.
func ParseHTML(t testing.TB, body []byte) *goquery.Document {
	t.Helper()

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		t.Fatalf("parse html: %v", err)
	}
	return doc
}

// HiddenField returns the value of the first hidden input with the given name,
// failing the test when the page does not carry one.
func HiddenField(t testing.TB, doc *goquery.Document, name string) string {
	t.Helper()

	value, ok := doc.Find(`input[type="hidden"][name="` + name + `"]`).First().Attr("value")
	if !ok {
		t.Fatalf("hidden field %q not found", name)
	}
	return value
}
