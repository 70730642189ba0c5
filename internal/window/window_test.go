package window

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumen-web/lumen/internal/dom"
)

func TestWindowDocument(t *testing.T) {
	doc := dom.NewDocument()
	w := New(doc)
	assert.Same(t, doc, w.Document())
	assert.Equal(t, DefaultUserAgent, w.Navigator().UserAgent)
	assert.False(t, w.Navigator().Online)
}

func TestWindowEventHandlers(t *testing.T) {
	w := New(dom.NewDocument())

	fired := ""
	require.NoError(t, w.SetOn("load", func(event string) {
		fired = event
	}))

	assert.True(t, w.Dispatch("load"))
	assert.Equal(t, "load", fired)
	assert.False(t, w.Dispatch("unload"))

	// Clearing a slot
	require.NoError(t, w.SetOn("load", nil))
	_, ok := w.On("load")
	assert.False(t, ok)

	// Unknown event names are rejected
	err := w.SetOn("teleport", func(string) {})
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestWindowInertMembers(t *testing.T) {
	w := New(dom.NewDocument())

	assert.ErrorIs(t, w.Alert("hi"), ErrUnsupported)
	_, err := w.Confirm("sure?")
	assert.ErrorIs(t, err, ErrUnsupported)
	_, err = w.Prompt("name?")
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestStorage(t *testing.T) {
	s := NewStorage()

	s.Set("b", "2")
	s.Set("a", "1")
	s.Set("b", "3")

	v, ok := s.Get("b")
	require.True(t, ok)
	assert.Equal(t, "3", v)
	assert.Equal(t, 2, s.Len())

	// First-insertion order
	k, ok := s.Key(0)
	require.True(t, ok)
	assert.Equal(t, "b", k)
	_, ok = s.Key(5)
	assert.False(t, ok)

	s.Remove("b")
	assert.Equal(t, 1, s.Len())
	k, _ = s.Key(0)
	assert.Equal(t, "a", k)

	s.Clear()
	assert.Equal(t, 0, s.Len())
}

func TestHistory(t *testing.T) {
	h := &History{}
	assert.Equal(t, "", h.Current())
	assert.False(t, h.Back())

	h.Push("about:blank")
	h.Push("https://example.com/")
	h.Push("https://example.com/two")
	assert.Equal(t, 3, h.Length())

	require.True(t, h.Back())
	assert.Equal(t, "https://example.com/", h.Current())

	// Pushing drops the forward entries
	h.Push("https://example.com/fork")
	assert.False(t, h.Forward())
	assert.Equal(t, 3, h.Length())
	assert.Equal(t, "https://example.com/fork", h.Current())
}
