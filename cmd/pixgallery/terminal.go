package main

import (
	"io"
	"strconv"
	"strings"

	"github.com/kailas-cloud/pixgallery/internal/domain/gallery"
	"github.com/kailas-cloud/pixgallery/internal/domain/notice"
	"github.com/kailas-cloud/pixgallery/internal/domain/session"
)

// terminalUI prints gallery output: cards and full-size links to out,
// notifications to errOut.
type terminalUI struct {
	out      io.Writer
	errOut   io.Writer
	rendered int
	pending  []string
	loadMore bool
	failed   bool
}

func newTerminalUI(out, errOut io.Writer) *terminalUI {
	return &terminalUI{out: out, errOut: errOut}
}

func (u *terminalUI) Info(n notice.Notice) {
	if n.Kind == notice.KindRequestFailed {
		u.failed = true
	}
	writef(u.errOut, "* %s\n", n.Message)
}

func (u *terminalUI) Reset() {
	u.rendered = 0
	u.pending = nil
}

func (u *terminalUI) Append(cards []gallery.Card) {
	for i := range cards {
		c := &cards[i]
		u.rendered++
		writef(u.out, "#%d %s\n", u.rendered, c.Alt)
		writef(u.out, "    %s\n", c.ThumbURL)
		fields := make([]string, len(c.Fields))
		for j, f := range c.Fields {
			fields[j] = f.Label + ": " + strconv.Itoa(f.Value)
		}
		writef(u.out, "    %s\n", strings.Join(fields, "  "))
		u.pending = append(u.pending, c.LinkURL)
	}
}

// Refresh lists the full-size links of the cards added since the last refresh.
func (u *terminalUI) Refresh() {
	if len(u.pending) == 0 {
		return
	}
	writef(u.out, "Full size:\n")
	for _, link := range u.pending {
		writef(u.out, "    %s\n", link)
	}
	u.pending = nil
}

func (u *terminalUI) SetLoadMoreVisible(visible bool) { u.loadMore = visible }

func (u *terminalUI) ScrollCards(int) {}

func (u *terminalUI) summary(s *session.Session) {
	if s.RenderedCount() == 0 {
		return
	}
	more := ""
	if u.loadMore {
		more = " (more available, use --pages)"
	}
	writef(u.errOut, "Shown %d of %d images%s\n", s.RenderedCount(), s.TotalHits(), more)
}
