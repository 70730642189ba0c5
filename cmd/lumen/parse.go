package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/spf13/cobra"
	"github.com/xlab/treeprint"
	"golang.org/x/net/html"

	"github.com/lumen-web/lumen/internal/dom"
	"github.com/lumen-web/lumen/internal/session"
)

func parseCmd() *cobra.Command {
	var (
		mediaType string
		selector  string
		outline   bool
	)

	cmd := &cobra.Command{
		Use:   "parse <file|->",
		Short: "Parse local markup and inspect the resulting document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var in io.Reader = os.Stdin
			if args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}

			sess := newSession()
			var opts []session.LoadOption
			if mediaType != "" {
				opts = append(opts, session.WithMediaType(mediaType))
			}
			doc, err := sess.LoadReader(in, opts...)
			if err != nil {
				return err
			}
			return inspect(sess, doc, selector, outline)
		},
	}

	cmd.Flags().StringVar(&mediaType, "type", "", "declare the media type instead of sniffing")
	cmd.Flags().StringVar(&selector, "selector", "", "print elements matching a CSS selector")
	cmd.Flags().BoolVar(&outline, "outline", false, "print the element tree")
	return cmd
}

// inspect prints the common document summary shared by fetch and parse.
func inspect(sess *session.Session, doc *dom.Document, selector string, outline bool) error {
	fmt.Printf("address:      %s\n", sess.Address())
	fmt.Printf("content-type: %s\n", doc.ContentType())
	if title := doc.Title(); title != "" {
		fmt.Printf("title:        %s\n", title)
	}
	if policy := sess.Policy(); policy != nil {
		fmt.Printf("policy:       %s\n", policy)
	}

	if selector != "" {
		matches := doc.Find(selector)
		fmt.Printf("matches for %q: %d\n", selector, matches.Length())
		matches.Each(func(i int, s *goquery.Selection) {
			fmt.Printf("  [%d] <%s> %s\n", i, goquery.NodeName(s), strings.TrimSpace(s.Text()))
		})
	}
	if outline {
		tree := treeprint.New()
		addOutline(tree, doc.Root())
		fmt.Print(tree.String())
	}
	return nil
}

func addOutline(branch treeprint.Tree, n *html.Node) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		label := c.Data
		if id, ok := dom.Attributes(c).Get("id"); ok {
			label += "#" + id
		}
		addOutline(branch.AddBranch(label), c)
	}
}
