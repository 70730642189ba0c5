package dom

import "golang.org/x/net/html"

// Map is the adapter over a flat string key/value store. It is
// implemented twice: once raw over an element's attribute table, once
// filtered and key-transformed for the data-* view.
type Map interface {
	// Get returns the value for name, or "" and false when absent.
	Get(name string) (string, bool)
	// Set stores value under name, inserting at the end of the table
	// when the key is new.
	Set(name, value string)
	// SetOrRemove stores *value under name; a nil value removes the key.
	SetOrRemove(name string, value *string)
	// Remove deletes name and returns its previous value, if any.
	Remove(name string) (string, bool)
	// Keys returns the current key sequence in table order.
	Keys() []string
	// Len returns the number of keys currently present.
	Len() int
	// Clear removes every key. The key sequence is snapshotted before
	// removal so in-flight enumeration of the same table cannot skip.
	Clear()
}

// Attributes returns the raw attribute view of an element. The view
// has no storage of its own; every operation reads or writes the
// element's attribute table directly.
func Attributes(n *html.Node) Map {
	return &attrMap{n: n}
}

type attrMap struct {
	n *html.Node
}

func (m *attrMap) Get(name string) (string, bool) {
	for _, a := range m.n.Attr {
		if a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

func (m *attrMap) Set(name, value string) {
	for i := range m.n.Attr {
		if m.n.Attr[i].Key == name {
			m.n.Attr[i].Val = value
			return
		}
	}
	m.n.Attr = append(m.n.Attr, html.Attribute{Key: name, Val: value})
}

func (m *attrMap) SetOrRemove(name string, value *string) {
	if value == nil {
		m.Remove(name)
		return
	}
	m.Set(name, *value)
}

func (m *attrMap) Remove(name string) (string, bool) {
	for i, a := range m.n.Attr {
		if a.Key == name {
			m.n.Attr = append(m.n.Attr[:i], m.n.Attr[i+1:]...)
			return a.Val, true
		}
	}
	return "", false
}

func (m *attrMap) Keys() []string {
	keys := make([]string, 0, len(m.n.Attr))
	for _, a := range m.n.Attr {
		keys = append(keys, a.Key)
	}
	return keys
}

func (m *attrMap) Len() int {
	return len(m.n.Attr)
}

func (m *attrMap) Clear() {
	for _, k := range m.Keys() {
		m.Remove(k)
	}
}
