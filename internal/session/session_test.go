package session

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"testing/iotest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumen-web/lumen/internal/dom"
	"github.com/lumen-web/lumen/internal/infrastructure/config"
	"github.com/lumen-web/lumen/internal/loader"
	"github.com/lumen-web/lumen/internal/parse"
)

func testLoader() *loader.Loader {
	cfg := config.LoaderConfig{
		Timeout:      5 * time.Second,
		RetryMax:     0,
		RetryWaitMin: time.Millisecond,
		RetryWaitMax: time.Millisecond,
		UserAgent:    "lumen-test",
	}
	return loader.New(loader.NewClient(cfg), nil, nil)
}

func bodyTags(t *testing.T, doc *dom.Document) []string {
	t.Helper()
	body := doc.Body()
	require.NotNil(t, body)
	var tags []string
	for c := dom.FirstElementChild(body); c != nil; c = dom.NextElementSibling(c) {
		tags = append(tags, c.Data)
	}
	return tags
}

func TestDefaultState(t *testing.T) {
	s := New()

	doc := s.Document()
	require.NotNil(t, doc)
	assert.Equal(t, "text/html", doc.ContentType())
	assert.Empty(t, bodyTags(t, doc))

	assert.Equal(t, "about:blank", s.Address().String())
	assert.Nil(t, s.Policy())
	assert.NotEmpty(t, s.Generation())
	assert.True(t, strings.HasPrefix(s.ID().String(), "sess_"))
}

func TestWindowFollowsDocument(t *testing.T) {
	s := New()

	w := s.Window()
	require.NotNil(t, w)
	assert.Same(t, s.Document(), w.Document())
	assert.Same(t, w, s.Window())

	s.Clear(nil)
	w2 := s.Window()
	assert.NotSame(t, w, w2)
	assert.Same(t, s.Document(), w2.Document())
}

func TestClear(t *testing.T) {
	s := New()
	_, err := s.LoadContent("<html><head><title>Page</title></head><body><p>x</p></body></html>")
	require.NoError(t, err)
	require.NotEmpty(t, bodyTags(t, s.Document()))

	gen := s.Generation()
	s.Clear(nil)

	assert.Empty(t, bodyTags(t, s.Document()))
	assert.Equal(t, "about:blank", s.Address().String())
	assert.Nil(t, s.Policy())
	assert.NotEqual(t, gen, s.Generation())
}

func TestClearIdempotent(t *testing.T) {
	s := New()
	addr := &url.URL{Scheme: "https", Host: "example.test"}

	s.Clear(addr)
	first := s.Document()
	s.Clear(addr)

	assert.NotSame(t, first, s.Document())
	assert.Empty(t, bodyTags(t, s.Document()))
	assert.Equal(t, addr.String(), s.Address().String())
	assert.Nil(t, s.Policy())
}

func TestReplace(t *testing.T) {
	s := New()

	doc := dom.NewDocument()
	meta := dom.NewElement("meta")
	dom.Attributes(meta).Set("http-equiv", "content-security-policy")
	dom.Attributes(meta).Set("content", "img-src *")
	doc.Head().AppendChild(meta)

	s.Replace(doc, nil)
	assert.Same(t, doc, s.Document())
	require.NotNil(t, s.Policy())
	sources, ok := s.Policy().Directive("img-src")
	require.True(t, ok)
	assert.Equal(t, []string{"*"}, sources)
}

func TestReplaceNil(t *testing.T) {
	s := New()
	_, err := s.LoadContent("<html><body><div></div></body></html>")
	require.NoError(t, err)

	s.Replace(nil, nil)
	assert.Empty(t, bodyTags(t, s.Document()))
	assert.Nil(t, s.Policy())
	assert.Equal(t, "about:blank", s.Address().String())
}

func TestReplaceRoot(t *testing.T) {
	s := New()
	root := dom.NewElement("section")
	root.AppendChild(dom.NewText("hello"))

	doc := s.ReplaceRoot(root, "text/html", nil)
	assert.Same(t, doc, s.Document())
	assert.Equal(t, []string{"section"}, bodyTags(t, doc))
}

func TestLoadContentHTML(t *testing.T) {
	s := New()

	doc, err := s.LoadContent("<html><body><div>Example</div></body></html>")
	require.NoError(t, err)

	assert.Same(t, doc, s.Document())
	assert.Equal(t, "text/html", doc.ContentType())
	assert.Equal(t, []string{"div"}, bodyTags(t, doc))
	div := dom.FirstElementChild(doc.Body())
	assert.Equal(t, "Example", dom.Text(div))
}

func TestLoadContentXMLSniffed(t *testing.T) {
	s := New()

	doc, err := s.LoadContent("<xml><product>Widget</product></xml>")
	require.NoError(t, err)

	assert.Equal(t, parse.MediaTypeXML, doc.ContentType())
	assert.Equal(t, []string{"xml"}, bodyTags(t, doc))
	product := dom.FindElement(doc.Body(), "product")
	require.NotNil(t, product)
	assert.Equal(t, "Widget", dom.Text(product))
}

func TestLoadReader(t *testing.T) {
	s := New()

	doc, err := s.LoadReader(strings.NewReader("<html><body><p>streamed</p></body></html>"))
	require.NoError(t, err)
	assert.Equal(t, []string{"p"}, bodyTags(t, doc))

	_, err = s.LoadReader(iotest.ErrReader(errors.New("read failed")))
	require.Error(t, err)
	assert.Equal(t, []string{"p"}, bodyTags(t, s.Document()))
}

func TestLoadContentDeclaredType(t *testing.T) {
	s := New()

	doc, err := s.LoadContent("<root/>", WithMediaType(parse.MediaTypeXML))
	require.NoError(t, err)
	assert.Equal(t, []string{"root"}, bodyTags(t, doc))
}

func TestLoadContentAddress(t *testing.T) {
	s := New()
	addr := &url.URL{Scheme: "https", Host: "example.test", Path: "/page"}

	_, err := s.LoadContent("<html><body></body></html>", WithAddress(addr))
	require.NoError(t, err)
	assert.Equal(t, "https://example.test/page", s.Address().String())
}

func TestLoadContentMetaPolicy(t *testing.T) {
	s := New()

	content := `<html><head><meta http-equiv="content-security-policy" content="script-src 'self'"></head><body></body></html>`
	_, err := s.LoadContent(content)
	require.NoError(t, err)

	require.NotNil(t, s.Policy())
	assert.False(t, s.Policy().Allows("script-src", "https://evil.test"))
	assert.True(t, s.Policy().Allows("script-src", "'self'"))
}

func TestLoadContentParseErrorKeepsState(t *testing.T) {
	s := New()
	_, err := s.LoadContent("<html><body><div>kept</div></body></html>")
	require.NoError(t, err)
	doc := s.Document()
	gen := s.Generation()

	_, err = s.LoadContent("<a><b></a>", WithMediaType(parse.MediaTypeXML))
	require.Error(t, err)

	assert.Same(t, doc, s.Document())
	assert.Equal(t, gen, s.Generation())
}

func TestLoadURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte("<html><head><title>Remote</title></head><body><div>Example</div></body></html>"))
	}))
	defer srv.Close()

	s := New(WithLoader(testLoader()))
	addr, err := url.Parse(srv.URL)
	require.NoError(t, err)

	var status int
	doc, err := s.LoadURL(context.Background(), addr, WithResponseHook(func(resp *loader.Response) {
		status = resp.Status
	}))
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Remote", doc.Title())
	assert.Equal(t, []string{"div"}, bodyTags(t, doc))
	assert.Equal(t, srv.URL, s.Address().String())
	assert.Nil(t, s.Policy())
}

func TestLoadURLHeaderPolicyWins(t *testing.T) {
	content := `<html><head><meta http-equiv="content-security-policy" content="img-src *"></head><body></body></html>`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Security-Policy", "default-src 'none'")
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(content))
	}))
	defer srv.Close()

	s := New(WithLoader(testLoader()))
	addr, err := url.Parse(srv.URL)
	require.NoError(t, err)

	_, err = s.LoadURL(context.Background(), addr)
	require.NoError(t, err)

	policy := s.Policy()
	require.NotNil(t, policy)
	assert.Equal(t, "default-src 'none'", policy.String())
	_, ok := policy.Directive("img-src")
	assert.False(t, ok, "header policy replaces metadata policy entirely")
	assert.False(t, policy.Allows("img-src", "https://example.test/a.png"))
}

func TestLoadURLXMLContentType(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/xml")
		w.Write([]byte("<catalog><item>x</item></catalog>"))
	}))
	defer srv.Close()

	s := New(WithLoader(testLoader()))
	addr, err := url.Parse(srv.URL)
	require.NoError(t, err)

	doc, err := s.LoadURL(context.Background(), addr)
	require.NoError(t, err)
	assert.Equal(t, []string{"catalog"}, bodyTags(t, doc))
}

func TestLoadURLFailureKeepsState(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	s := New(WithLoader(testLoader()))
	_, err := s.LoadContent("<html><body><div>kept</div></body></html>")
	require.NoError(t, err)
	doc := s.Document()
	addr := s.Address()
	gen := s.Generation()

	target, err := url.Parse(srv.URL)
	require.NoError(t, err)
	_, err = s.LoadURL(context.Background(), target)
	require.Error(t, err)

	var terr *loader.TransportError
	require.ErrorAs(t, err, &terr)
	assert.Same(t, doc, s.Document())
	assert.Same(t, addr, s.Address())
	assert.Equal(t, gen, s.Generation())
}

func TestReload(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte("<html><body><div>Example</div></body></html>"))
	}))
	defer srv.Close()

	s := New(WithLoader(testLoader()))
	addr, err := url.Parse(srv.URL)
	require.NoError(t, err)

	_, err = s.LoadURL(context.Background(), addr)
	require.NoError(t, err)
	gen := s.Generation()

	_, err = s.Reload(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, hits)
	assert.Equal(t, srv.URL, s.Address().String())
	assert.NotEqual(t, gen, s.Generation())
}

func TestGenerationAdvancesPerCommit(t *testing.T) {
	s := New()
	seen := map[string]bool{s.Generation().String(): true}

	for i := 0; i < 3; i++ {
		_, err := s.LoadContent("<html><body></body></html>")
		require.NoError(t, err)
		g := s.Generation().String()
		assert.False(t, seen[g])
		seen[g] = true
	}
}
