package chi

import (
	"github.com/kailas-cloud/pixgallery/internal/domain/gallery"
	"github.com/kailas-cloud/pixgallery/internal/domain/notice"
)

// responseUI records what a gallery action asked the browser to do so it
// can be sent back as a GalleryUpdate.
type responseUI struct {
	options  notice.Options
	notices  []NoticeItem
	appended []gallery.Card
	reset    bool
	refresh  bool
	loadMore *bool
	scroll   int
}

func newResponseUI(opts notice.Options) *responseUI {
	return &responseUI{options: opts, notices: []NoticeItem{}}
}

func (u *responseUI) Info(n notice.Notice) {
	u.notices = append(u.notices, NoticeItem{Kind: n.Kind, Message: n.Message, Options: u.options})
}

func (u *responseUI) Refresh() { u.refresh = true }

func (u *responseUI) Reset() {
	u.reset = true
	u.appended = nil
}

func (u *responseUI) Append(cards []gallery.Card) {
	u.appended = append(u.appended, cards...)
}

func (u *responseUI) SetLoadMoreVisible(visible bool) { u.loadMore = &visible }

func (u *responseUI) ScrollCards(n int) { u.scroll = n }

// loadMoreVisible returns the visibility the action set, or fallback when
// it left the button alone.
func (u *responseUI) loadMoreVisible(fallback bool) bool {
	if u.loadMore == nil {
		return fallback
	}
	return *u.loadMore
}
