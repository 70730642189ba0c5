package dom

import "golang.org/x/net/html"

// Cursor steps through an element's element-kind children once, in the
// scanner style:
//
//	it := dom.Children(el).Iter()
//	for it.Next() {
//		use(it.Node())
//	}
//	if err := it.Err(); err != nil { ... }
//
// Before each advance past the first, the cursor re-validates that its
// current node still hangs off the viewed element; if the node was
// detached in the meantime, Next returns false and Err reports
// ErrTreeModified. The check is deliberately partial: it catches
// detachment of the current node only, not insertion or removal of
// siblings elsewhere in the same list.
type Cursor struct {
	owner   *html.Node
	cur     *html.Node
	started bool
	done    bool
	err     error
}

// Next advances the cursor and reports whether a node is available.
// Once Next returns false the cursor is spent; check Err to tell
// exhaustion from a detected modification.
func (c *Cursor) Next() bool {
	if c.done || c.err != nil {
		return false
	}
	if !c.started {
		c.started = true
		c.cur = FirstElementChild(c.owner)
	} else {
		if c.cur.Parent != c.owner {
			c.err = ErrTreeModified
			c.cur = nil
			return false
		}
		c.cur = NextElementSibling(c.cur)
	}
	if c.cur == nil {
		c.done = true
		return false
	}
	return true
}

// Node returns the current element. It is valid only after a Next call
// that returned true.
func (c *Cursor) Node() *html.Node {
	return c.cur
}

// Err returns ErrTreeModified when the traversal failed revalidation,
// nil otherwise.
func (c *Cursor) Err() error {
	return c.err
}
