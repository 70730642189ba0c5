package dom

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/net/html"
)

// dataPrefix is the reserved attribute prefix backing the dataset view.
const dataPrefix = "data-"

// Dataset is the data-* view of an element's attributes. Dataset key K
// always maps to attribute key "data-" + hyphenated(K); writes through
// the view materialize as prefixed, hyphenated attributes. The view
// itself stores nothing.
type Dataset struct {
	attrs Map
}

var _ Map = (*Dataset)(nil)

// DatasetOf returns the dataset view of an element, layered on its raw
// attribute view.
func DatasetOf(n *html.Node) *Dataset {
	return &Dataset{attrs: Attributes(n)}
}

// Get returns the value stored under the dataset key name.
func (d *Dataset) Get(name string) (string, bool) {
	return d.attrs.Get(AttributeKey(name))
}

// Set stores value under the dataset key name.
func (d *Dataset) Set(name, value string) {
	d.attrs.Set(AttributeKey(name), value)
}

// SetOrRemove stores *value under name; a nil value removes the key.
func (d *Dataset) SetOrRemove(name string, value *string) {
	d.attrs.SetOrRemove(AttributeKey(name), value)
}

// Remove deletes the dataset key name and returns its previous value.
func (d *Dataset) Remove(name string) (string, bool) {
	return d.attrs.Remove(AttributeKey(name))
}

// Keys returns the dataset keys currently present, in attribute table
// order.
func (d *Dataset) Keys() []string {
	var keys []string
	for _, k := range d.attrs.Keys() {
		if strings.HasPrefix(k, dataPrefix) {
			keys = append(keys, DatasetKey(k))
		}
	}
	return keys
}

// Values returns the values of every dataset key, in key order.
func (d *Dataset) Values() []string {
	var vals []string
	d.ForEach(func(_, value string) {
		vals = append(vals, value)
	})
	return vals
}

// Len returns the number of dataset keys present.
func (d *Dataset) Len() int {
	return len(d.Keys())
}

// ContainsKey reports whether the dataset key name is present.
func (d *Dataset) ContainsKey(name string) bool {
	_, ok := d.Get(name)
	return ok
}

// ContainsValue reports whether any dataset key holds value.
func (d *Dataset) ContainsValue(value string) bool {
	found := false
	d.ForEach(func(_, v string) {
		if v == value {
			found = true
		}
	})
	return found
}

// PutIfAbsent stores value under name unless the key already exists,
// returning the value now present.
func (d *Dataset) PutIfAbsent(name, value string) string {
	if prev, ok := d.Get(name); ok {
		return prev
	}
	d.Set(name, value)
	return value
}

// ForEach calls fn for every dataset key/value pair in table order.
func (d *Dataset) ForEach(fn func(name, value string)) {
	for _, k := range d.Keys() {
		if v, ok := d.Get(k); ok {
			fn(k, v)
		}
	}
}

// Clear removes every dataset key, leaving non-prefixed attributes
// untouched. The filtered key set is snapshotted before removal.
func (d *Dataset) Clear() {
	for _, k := range d.Keys() {
		d.Remove(k)
	}
}

// AttributeKey maps a dataset key to its backing attribute name:
// "viewBox" -> "data-view-box".
func AttributeKey(name string) string {
	var b strings.Builder
	b.WriteString(dataPrefix)
	for _, r := range name {
		if unicode.IsUpper(r) {
			b.WriteByte('-')
			b.WriteRune(unicode.ToLower(r))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// DatasetKey maps a data-* attribute name back to its dataset key:
// "data-view-box" -> "viewBox". The leading segment is left unchanged;
// each later non-empty segment has its first letter upper-cased.
func DatasetKey(attr string) string {
	segments := strings.Split(strings.TrimPrefix(attr, dataPrefix), "-")
	var b strings.Builder
	b.WriteString(segments[0])
	for _, seg := range segments[1:] {
		if seg == "" {
			continue
		}
		r, size := utf8.DecodeRuneInString(seg)
		b.WriteRune(unicode.ToUpper(r))
		b.WriteString(seg[size:])
	}
	return b.String()
}
