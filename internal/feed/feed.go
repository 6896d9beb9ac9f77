// Package feed renders the RSS 2.0 syndication document.
package feed

import (
	"fmt"
	"html"
	"sort"
	"strings"
	"time"

	"github.com/dgallion1/sitegen/internal/content"
)

// DefaultLimit is the item count used when no limit is given, and the most
// any feed carries.
const DefaultLimit = 20

// DateFormat is RFC 1123 with a literal GMT zone, as browsers print UTC.
const DateFormat = "Mon, 02 Jan 2006 15:04:05 GMT"

// Site is the channel-level metadata.
type Site struct {
	Title       string
	Description string
	URL         string
	Language    string
}

// Item is one feed entry.
type Item struct {
	Title       string
	Description string
	Link        string
	PubDate     time.Time
	Categories  []string
}

// Feed is a built channel, newest item first.
type Feed struct {
	Site  Site
	Built time.Time
	Items []Item
}

// Build selects non-draft records, newest first, and keeps the first limit,
// never more than DefaultLimit.
// Records with equal dates keep their input order.
func Build(site Site, records []*content.Record, limit int, now time.Time) Feed {
	if limit <= 0 || limit > DefaultLimit {
		limit = DefaultLimit
	}
	if site.Language == "" {
		site.Language = "en-us"
	}
	base := strings.TrimRight(site.URL, "/")

	live := make([]*content.Record, 0, len(records))
	for _, r := range records {
		if !r.Draft {
			live = append(live, r)
		}
	}
	sort.SliceStable(live, func(i, j int) bool { return live[i].Date.After(live[j].Date) })
	if len(live) > limit {
		live = live[:limit]
	}

	items := make([]Item, 0, len(live))
	for _, r := range live {
		cats := make([]string, 0, len(r.Tags)+1)
		cats = append(cats, r.Category)
		cats = append(cats, r.Tags...)
		items = append(items, Item{
			Title:       r.Title,
			Description: r.Description,
			Link:        base + "/" + r.URL(),
			PubDate:     r.Date,
			Categories:  cats,
		})
	}
	return Feed{Site: site, Built: now, Items: items}
}

// Render writes the feed as RSS 2.0 XML.
func (f Feed) Render() []byte {
	base := strings.TrimRight(f.Site.URL, "/")

	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	b.WriteString(`<rss version="2.0" xmlns:atom="http://www.w3.org/2005/Atom">` + "\n")
	b.WriteString("  <channel>\n")
	fmt.Fprintf(&b, "    <title>%s</title>\n", cdata(f.Site.Title))
	fmt.Fprintf(&b, "    <description>%s</description>\n", cdata(f.Site.Description))
	fmt.Fprintf(&b, "    <link>%s</link>\n", html.EscapeString(base))
	fmt.Fprintf(&b, "    <language>%s</language>\n", html.EscapeString(f.Site.Language))
	fmt.Fprintf(&b, "    <lastBuildDate>%s</lastBuildDate>\n", f.Built.UTC().Format(DateFormat))
	fmt.Fprintf(&b, "    <atom:link href=\"%s/feed.xml\" rel=\"self\" type=\"application/rss+xml\"/>\n", html.EscapeString(base))
	for _, it := range f.Items {
		link := html.EscapeString(it.Link)
		b.WriteString("    <item>\n")
		fmt.Fprintf(&b, "      <title>%s</title>\n", cdata(it.Title))
		fmt.Fprintf(&b, "      <description>%s</description>\n", cdata(it.Description))
		fmt.Fprintf(&b, "      <link>%s</link>\n", link)
		fmt.Fprintf(&b, "      <guid isPermaLink=\"true\">%s</guid>\n", link)
		if !it.PubDate.IsZero() {
			fmt.Fprintf(&b, "      <pubDate>%s</pubDate>\n", it.PubDate.UTC().Format(DateFormat))
		}
		for _, c := range it.Categories {
			fmt.Fprintf(&b, "      <category>%s</category>\n", cdata(c))
		}
		b.WriteString("    </item>\n")
	}
	b.WriteString("  </channel>\n")
	b.WriteString("</rss>\n")
	return []byte(b.String())
}

// cdata wraps s in a CDATA section, splitting any embedded terminator.
func cdata(s string) string {
	return "<![CDATA[" + strings.ReplaceAll(s, "]]>", "]]]]><![CDATA[>") + "]]>"
}
