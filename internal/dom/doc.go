// Package dom provides the mutable document surface of the engine.
//
// The node model is golang.org/x/net/html: trees keep parent, sibling,
// and child links, and elements carry an ordered attribute slice. On
// top of that this package layers:
//   - attributes: an adapter-interface view of an element's attribute table
//   - dataset: the filtered, key-transformed data-* sub-view
//   - collection: a live, uncached list of an element's element children
//   - cursor: a single-pass iterator that detects detachment of its
//     current node
//   - document: the canonical html/head/body wrapper with adoption of
//     arbitrary parsed trees
//   - query: CSS (goquery) and XPath (htmlquery) lookups
//
// Everything here is synchronous and single-owner; callers that share
// a tree across goroutines must serialize externally.
package dom
