package news

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
)

// Scraper fetches the configured source page and stores every article it
// has not seen before. Articles are matched by title, so a rerun against
// an unchanged page inserts nothing.
type Scraper struct {
	repository Repository
	client     *resty.Client
	sourceURL  string
}

// NewScraper creates a Scraper for the given source page.
func NewScraper(repository Repository, sourceURL string) *Scraper {
	client := resty.New().
		SetTimeout(15 * time.Second).
		SetRetryCount(2)
	return &Scraper{
		repository: repository,
		client:     client,
		sourceURL:  sourceURL,
	}
}

// Run performs one scrape pass and returns the number of new items stored.
// Each <article> on the page contributes its first <h2> as the title, the
// first <img> src as the image and the first <p> as the body.
func (s *Scraper) Run(ctx context.Context) (int, error) {
	resp, err := s.client.R().SetContext(ctx).Get(s.sourceURL)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch %s: %w", s.sourceURL, err)
	}
	if resp.IsError() {
		return 0, fmt.Errorf("source returned %s", resp.Status())
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(resp.Body()))
	if err != nil {
		return 0, fmt.Errorf("failed to parse source page: %w", err)
	}

	var items []*Item
	doc.Find("article").Each(func(_ int, sel *goquery.Selection) {
		title := strings.TrimSpace(sel.Find("h2").First().Text())
		if title == "" {
			return
		}
		image, _ := sel.Find("img").First().Attr("src")
		body := strings.TrimSpace(sel.Find("p").First().Text())
		items = append(items, NewItem(title, image, body))
	})

	inserted := 0
	for _, item := range items {
		ok, err := s.repository.CreateIfNew(ctx, item)
		if err != nil {
			return inserted, fmt.Errorf("failed to store %q: %w", item.Title, err)
		}
		if ok {
			inserted++
		}
	}
	log.Printf("news: scraped %s, %d of %d items new", s.sourceURL, inserted, len(items))
	return inserted, nil
}
