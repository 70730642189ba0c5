package dom

import (
	"fmt"

	"golang.org/x/net/html"
)

// ChildList is a live, ordered view over an element's element-kind
// children. It owns no storage: length and indexed access walk the
// sibling links at the instant of the call, so the view always
// reflects the tree as it is now.
type ChildList struct {
	owner *html.Node
}

// Children returns the live element-children view of n.
func Children(n *html.Node) *ChildList {
	return &ChildList{owner: n}
}

// Owner returns the element this list views.
func (l *ChildList) Owner() *html.Node {
	return l.owner
}

// Len counts the element-kind children of the owner.
func (l *ChildList) Len() int {
	count := 0
	for c := FirstElementChild(l.owner); c != nil; c = NextElementSibling(c) {
		count++
	}
	return count
}

// At returns the element child at index i, or ErrOutOfRange when the
// list is exhausted first.
func (l *ChildList) At(i int) (*html.Node, error) {
	if i < 0 {
		return nil, fmt.Errorf("child index %d: %w", i, ErrOutOfRange)
	}
	remaining := i
	for c := FirstElementChild(l.owner); c != nil; c = NextElementSibling(c) {
		if remaining == 0 {
			return c, nil
		}
		remaining--
	}
	return nil, fmt.Errorf("child index %d: %w", i, ErrOutOfRange)
}

// Replace swaps el into the tree position of the element currently at
// index i and detaches the old element. Any cursor positioned on the
// replaced node fails on its next advance.
func (l *ChildList) Replace(i int, el *html.Node) error {
	old, err := l.At(i)
	if err != nil {
		return err
	}
	Replace(old, el)
	return nil
}

// SetLen shrinks the list to n element children. With n == 0 every
// element child is removed; otherwise the element following index n-1
// is removed until none remain. Growing the list this way is not
// supported and returns ErrOutOfRange.
func (l *ChildList) SetLen(n int) error {
	if n < 0 {
		return fmt.Errorf("length %d: %w", n, ErrOutOfRange)
	}
	if n == 0 {
		for c := FirstElementChild(l.owner); c != nil; c = FirstElementChild(l.owner) {
			Detach(c)
		}
		return nil
	}
	last, err := l.At(n - 1)
	if err != nil {
		return err
	}
	for c := NextElementSibling(last); c != nil; c = NextElementSibling(last) {
		Detach(c)
	}
	return nil
}

// Iter returns a single-use cursor over the list.
func (l *ChildList) Iter() *Cursor {
	return &Cursor{owner: l.owner}
}
