package main

import (
	"fmt"
	"net/url"

	"github.com/microcosm-cc/bluemonday"
	"github.com/spf13/cobra"

	"github.com/lumen-web/lumen/internal/infrastructure/config"
	"github.com/lumen-web/lumen/internal/infrastructure/logging"
	"github.com/lumen-web/lumen/internal/loader"
	"github.com/lumen-web/lumen/internal/parse"
	"github.com/lumen-web/lumen/internal/session"
)

func fetchCmd() *cobra.Command {
	var (
		mediaType string
		selector  string
		outline   bool
	)

	cmd := &cobra.Command{
		Use:   "fetch <url>",
		Short: "Load a document from a URL and inspect it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			address, err := url.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid url %q: %w", args[0], err)
			}

			sess := newSession()
			var opts []session.LoadOption
			if mediaType != "" {
				opts = append(opts, session.WithMediaType(mediaType))
			}
			opts = append(opts, session.WithResponseHook(func(resp *loader.Response) {
				fmt.Printf("HTTP %d  %s  (%d bytes)\n", resp.Status, resp.ContentType, len(resp.Body))
			}))

			doc, err := sess.LoadURL(cmd.Context(), address, opts...)
			if err != nil {
				return err
			}
			return inspect(sess, doc, selector, outline)
		},
	}

	cmd.Flags().StringVar(&mediaType, "type", "", "override the media type")
	cmd.Flags().StringVar(&selector, "selector", "", "print elements matching a CSS selector")
	cmd.Flags().BoolVar(&outline, "outline", false, "print the element tree")
	return cmd
}

func newSession() *session.Session {
	cfg := config.LoadOrDefault()

	log, err := logging.New(logging.Config{
		Level:       cfg.Logging.Level,
		Development: cfg.Logging.Development,
		OutputPaths: []string{"stderr"},
	})
	if err != nil {
		log = logging.NewDefault()
	}

	var parserOpts []parse.Option
	if cfg.Parser.Sanitize {
		parserOpts = append(parserOpts, parse.WithSanitizer(bluemonday.UGCPolicy()))
	}

	client := loader.NewClient(cfg.Loader)
	return session.New(
		session.WithLogger(log),
		session.WithParser(parse.NewEngine(parserOpts...)),
		session.WithLoader(loader.New(client, log, nil)),
	)
}
