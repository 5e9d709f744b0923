package chi

import (
	"bytes"
	"fmt"
	"html/template"
	"io"

	"github.com/kailas-cloud/pixgallery/internal/domain/gallery"
	"github.com/kailas-cloud/pixgallery/internal/domain/notice"
)

// cardsTemplate renders gallery cards. It is shared by the full page and
// the JSON replies so both produce identical markup.
const cardsTemplate = `{{define "cards"}}{{range .}}<div class="photo-card">` +
	`<a href="{{.LinkURL}}" data-lightbox="gallery"><img src="{{.ThumbURL}}" alt="{{.Alt}}" loading="lazy"></a>` +
	`<div class="info">{{range .Fields}}<p class="info-item"><b>{{.Label}}:</b> {{.Value}}</p>{{end}}</div>` +
	`</div>{{end}}{{end}}`

// pageTemplate is the gallery page. Without JavaScript the forms post back
// and the server renders the whole page again.
const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{if .Term}}{{.Term}} · {{end}}Image search</title>
  <link rel="stylesheet" href="https://cdn.jsdelivr.net/npm/simplelightbox@2.14.2/dist/simple-lightbox.min.css">
  <link rel="stylesheet" href="/static/style.css">
</head>
<body data-notify-timeout="{{.Options.TimeoutMS}}" data-notify-position="{{.Options.Position}}">
  <form class="search-form" id="search-form" method="post" action="/search">
    <input type="text" name="searchQuery" value="{{.Term}}" autocomplete="off" autofocus placeholder="Search images..." maxlength="{{.MaxTermLength}}">
    <button type="submit">Search</button>
  </form>
  {{if .Notices}}<ul class="notices" id="notices">{{range .Notices}}<li class="notice notice-{{.Kind}}">{{.Message}}</li>{{end}}</ul>{{end}}
  <div class="gallery">{{template "cards" .Cards}}</div>
  <form class="load-more-form" method="post" action="/more">
    <button type="submit" class="load-more"{{if not .LoadMore}} style="display: none"{{end}}>Load more</button>
  </form>
  <script src="https://cdn.jsdelivr.net/npm/simplelightbox@2.14.2/dist/simple-lightbox.min.js"></script>
  <script src="https://cdn.jsdelivr.net/npm/notiflix@3.2.6/dist/notiflix-aio-3.2.6.min.js"></script>
  <script src="/static/app.js"></script>
</body>
</html>`

type pageData struct {
	Term          string
	Cards         []gallery.Card
	LoadMore      bool
	Notices       []NoticeItem
	Options       notice.Options
	MaxTermLength int
}

var pageTmpl = template.Must(template.Must(template.New("page").Parse(cardsTemplate)).Parse(pageTemplate))

func renderPage(w io.Writer, data *pageData) error {
	return pageTmpl.ExecuteTemplate(w, "page", data)
}

func renderCards(cards []gallery.Card) (string, error) {
	if len(cards) == 0 {
		return "", nil
	}
	var buf bytes.Buffer
	if err := pageTmpl.ExecuteTemplate(&buf, "cards", cards); err != nil {
		return "", fmt.Errorf("render cards: %w", err)
	}
	return buf.String(), nil
}
