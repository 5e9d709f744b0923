package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kailas-cloud/pixgallery/internal/db"
	"github.com/kailas-cloud/pixgallery/internal/domain"
	"github.com/kailas-cloud/pixgallery/internal/domain/pagination"
	"github.com/kailas-cloud/pixgallery/internal/domain/session"
	galleryuc "github.com/kailas-cloud/pixgallery/internal/usecase/gallery"
)

var errSearchFailed = errors.New("image search failed")

func newSearchCmd() *cobra.Command {
	var (
		pages   int
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "search <term>...",
		Short: "Search photos and print the gallery to the terminal",
		Long: `Search runs a new search for the given term and keeps loading pages while
more results are available, up to --pages. Cards are printed to stdout,
notifications to stderr.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if pages < 1 {
				return fmt.Errorf("--pages must be >= 1, got %d", pages)
			}

			a, err := loadApp()
			if err != nil {
				return err
			}
			defer func() { _ = a.logger.Sync() }()

			var store db.Store
			if !noCache && a.cfg.CacheEnabled() {
				s, err := a.connectStore(cmd.Context())
				if err != nil {
					a.logger.Warn("Page cache unavailable, searching without it", zap.Error(err))
				} else {
					defer s.Close()
					store = s
				}
			}

			searcher, _ := a.buildSearcher(cmd.Context(), store)
			svc := galleryuc.New(searcher, a.logger)
			ui := newTerminalUI(cmd.OutOrStdout(), cmd.ErrOrStderr())
			return runSearch(cmd.Context(), svc, strings.Join(args, " "), pages, ui)
		},
	}

	cmd.Flags().IntVarP(&pages, "pages", "p", 1, "maximum number of pages to load")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "skip the page cache")
	return cmd
}

// runSearch submits term and loads up to pages-1 further pages.
func runSearch(ctx context.Context, svc *galleryuc.Service, term string, pages int, ui *terminalUI) error {
	s := svc.Submit(ctx, session.New(), term, ui)
	if s.Query().IsIdle() {
		if ui.failed {
			return errSearchFailed
		}
		return domain.ErrEmptyTerm
	}

	for loaded := 1; loaded < pages && s.Status() == pagination.MoreAvailable; loaded++ {
		s = svc.LoadMore(ctx, s, ui)
		if ui.failed {
			return errSearchFailed
		}
	}

	ui.summary(&s)
	return nil
}

// writef ignores write errors on the terminal.
func writef(w io.Writer, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}
