package scraper

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly/v2"
	"golang.org/x/net/html"

	"github.com/pfrederiksen/deadline-tracker/internal/logger"
)

const (
	UserAgent = "deadline-tracker/1.0 (github.com/pfrederiksen/deadline-tracker)"
	Timeout   = 30 * time.Second
)

// auxSelectors are queried in order; fragments keep first-seen order.
// Attribute substring matches are case-sensitive, hence both spellings.
var auxSelectors = []string{
	`[class*="deadline"]`, `[class*="Deadline"]`,
	`[class*="date"]`, `[class*="Date"]`,
	`[class*="time"]`, `[class*="Time"]`,
	`[id*="deadline"]`, `[id*="Deadline"]`,
	`[id*="date"]`, `[id*="Date"]`,
	`.submission-end`, `.registration-close`,
	`.event-date`, `.hackathon-date`,
}

// Elements that start a new line in rendered text.
var blockElements = map[string]bool{
	"address": true, "article": true, "aside": true, "blockquote": true,
	"br": true, "dd": true, "div": true, "dl": true, "dt": true,
	"fieldset": true, "figcaption": true, "figure": true, "footer": true,
	"form": true, "h1": true, "h2": true, "h3": true, "h4": true,
	"h5": true, "h6": true, "header": true, "hr": true, "li": true,
	"main": true, "nav": true, "ol": true, "p": true, "pre": true,
	"section": true, "table": true, "td": true, "th": true, "tr": true,
	"ul": true,
}

var lineBreaks = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

// Meta holds the descriptive meta tags of a page.
type Meta struct {
	Description   string `json:"description,omitempty"`
	Keywords      string `json:"keywords,omitempty"`
	OGTitle       string `json:"ogTitle,omitempty"`
	OGDescription string `json:"ogDescription,omitempty"`
}

// Page is everything the extractor needs from one web page.
type Page struct {
	Title              string
	BodyText           string
	URL                string
	AuxiliaryFragments []string
	Meta               Meta
}

// Options configures a Scraper. Zero values fall back to the defaults.
type Options struct {
	UserAgent string
	Timeout   time.Duration
	// MaxBodyText truncates BodyText to this many runes; 0 means no limit.
	MaxBodyText int
}

// Scraper fetches and inspects event pages.
type Scraper struct {
	userAgent   string
	timeout     time.Duration
	maxBodyText int
}

// New creates a new Scraper instance
func New(opts Options) *Scraper {
	s := &Scraper{
		userAgent:   opts.UserAgent,
		timeout:     opts.Timeout,
		maxBodyText: opts.MaxBodyText,
	}
	if s.userAgent == "" {
		s.userAgent = UserAgent
	}
	if s.timeout <= 0 {
		s.timeout = Timeout
	}
	return s
}

// Fetch downloads pageURL and inspects it.
func (s *Scraper) Fetch(ctx context.Context, pageURL string) (*Page, error) {
	c := colly.NewCollector(
		colly.UserAgent(s.userAgent),
		colly.StdlibContext(ctx),
	)
	c.SetRequestTimeout(s.timeout)

	var page *Page
	var fetchErr error

	c.OnResponse(func(r *colly.Response) {
		logger.Debug("Page fetched", logger.Fields{
			"url":    r.Request.URL.String(),
			"status": r.StatusCode,
			"bytes":  len(r.Body),
		})
		page, fetchErr = s.Inspect(bytes.NewReader(r.Body), r.Request.URL.String())
	})

	c.OnError(func(r *colly.Response, err error) {
		fetchErr = fmt.Errorf("fetching page: status %d: %w", r.StatusCode, err)
	})

	if err := c.Visit(pageURL); err != nil && fetchErr == nil {
		fetchErr = fmt.Errorf("fetching page: %w", err)
	}
	if fetchErr != nil {
		return nil, fetchErr
	}
	if page == nil {
		return nil, fmt.Errorf("fetching page: no response from %s", pageURL)
	}

	return page, nil
}

// Inspect parses an HTML document and collects its title, rendered body
// text, auxiliary deadline fragments and meta tags.
func (s *Scraper) Inspect(r io.Reader, pageURL string) (*Page, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	page := &Page{
		Title: strings.Join(strings.Fields(doc.Find("title").First().Text()), " "),
		URL:   pageURL,
		Meta:  extractMeta(doc),
	}

	page.AuxiliaryFragments = auxiliaryFragments(doc)

	doc.Find("script, style, noscript, template").Remove()
	page.BodyText = renderText(doc.Find("body"))
	if s.maxBodyText > 0 {
		if runes := []rune(page.BodyText); len(runes) > s.maxBodyText {
			page.BodyText = string(runes[:s.maxBodyText])
		}
	}

	return page, nil
}

func auxiliaryFragments(doc *goquery.Document) []string {
	seen := make(map[string]bool)
	fragments := make([]string, 0)

	for _, selector := range auxSelectors {
		doc.Find(selector).Each(func(_ int, sel *goquery.Selection) {
			text := strings.Join(strings.Fields(sel.Text()), " ")
			if text == "" || seen[text] {
				return
			}
			seen[text] = true
			fragments = append(fragments, text)
		})
	}

	return fragments
}

func extractMeta(doc *goquery.Document) Meta {
	content := func(selector string) string {
		value, _ := doc.Find(selector).First().Attr("content")
		return strings.TrimSpace(value)
	}

	return Meta{
		Description:   content(`meta[name="description"]`),
		Keywords:      content(`meta[name="keywords"]`),
		OGTitle:       content(`meta[property="og:title"]`),
		OGDescription: content(`meta[property="og:description"]`),
	}
}

// renderText approximates what a browser shows for sel: block elements break
// lines, runs of whitespace collapse, blank lines are dropped.
func renderText(sel *goquery.Selection) string {
	var buf strings.Builder

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			buf.WriteString(lineBreaks.Replace(n.Data))
			return
		case html.ElementNode:
			if blockElements[n.Data] {
				buf.WriteByte('\n')
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
		if n.Type == html.ElementNode && blockElements[n.Data] {
			buf.WriteByte('\n')
		}
	}
	for _, n := range sel.Nodes {
		walk(n)
	}

	lines := strings.Split(buf.String(), "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}
