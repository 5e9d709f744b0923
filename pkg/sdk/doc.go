// Package pixgallery provides a Go client for searching Pixabay photos and
// paging through them as a gallery, with an optional Valkey or Redis page cache.
//
// # One-off lookups
//
//	client, _ := pixgallery.New(ctx, pixgallery.WithAPIKey(os.Getenv("PIXABAY_API_KEY")))
//	res, _ := client.Search(ctx, "yellow flowers", 1)
//	for _, img := range res.Images {
//	    fmt.Println(img.LargeImageURL)
//	}
//
// # Gallery with load more
//
//	g := client.NewGallery()
//	upd := g.Submit(ctx, "yellow flowers")
//	for upd.LoadMore {
//	    upd = g.LoadMore(ctx)
//	}
//	fmt.Println(len(g.Cards()))
package pixgallery
