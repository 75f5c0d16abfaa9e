package bref

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

func loadFixture(t *testing.T, name string) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err, "failed to load test fixture %s", name)
	return data
}

func docFromFixture(t *testing.T, name string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(loadFixture(t, name)))
	require.NoError(t, err)
	return doc
}

// stubFetcher serves canned documents keyed by URL and counts calls, so
// tests can assert that validation happens before any fetch.
type stubFetcher struct {
	pages map[string][]byte
	calls int
}

func (f *stubFetcher) Fetch(_ context.Context, url string) ([]byte, error) {
	f.calls++
	body, ok := f.pages[url]
	if !ok {
		return nil, fmt.Errorf("unexpected url %s", url)
	}
	return body, nil
}

func newStubFetcher(t *testing.T, pages map[string]string) *stubFetcher {
	t.Helper()
	f := &stubFetcher{pages: make(map[string][]byte, len(pages))}
	for url, fixture := range pages {
		f.pages[url] = loadFixture(t, fixture)
	}
	return f
}
