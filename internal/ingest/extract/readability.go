package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// junkTags never contain posting text and get stripped before any scoring.
var junkTags = []string{"script", "style", "noscript", "iframe", "svg", "canvas", "template"}

// candidateTags are the block containers considered as the posting body.
var candidateTags = []string{"article", "main", "section", "div", "td"}

// readerMode recovers the article-like content of a page by scoring block
// containers on text density: lots of own text, little of it inside links.
// Navigation, footers and ad rails are text-light and link-heavy, so the
// posting body wins on any page where it is present in the HTML at all.
func readerMode(doc *goquery.Document) (text string, ok bool) {
	var best *goquery.Selection
	var bestScore float64

	for _, tag := range candidateTags {
		doc.Find(tag).Each(func(_ int, s *goquery.Selection) {
			score := scoreCandidate(s)
			if score > bestScore {
				bestScore = score
				best = s
			}
		})
	}

	if best == nil || bestScore < 250 {
		return "", false
	}

	return best.Text(), true
}

// scoreCandidate weights a block's text length by how little of it is link
// text and how much sits in paragraph-like children.
func scoreCandidate(s *goquery.Selection) float64 {
	total := len(strings.TrimSpace(s.Text()))
	if total < 200 {
		return 0
	}

	linkLen := 0
	s.Find("a").Each(func(_ int, a *goquery.Selection) {
		linkLen += len(strings.TrimSpace(a.Text()))
	})

	linkDensity := float64(linkLen) / float64(total)
	if linkDensity > 0.5 {
		return 0
	}

	paraLen := 0
	s.Find("p, li").Each(func(_ int, p *goquery.Selection) {
		paraLen += len(strings.TrimSpace(p.Text()))
	})

	score := float64(total) * (1 - linkDensity)
	if paraLen > total/2 {
		score *= 1.25
	}
	return score
}

// titleGuess pulls the best available page title: the <title> tag first,
// then OpenGraph and Twitter card metadata.
func titleGuess(doc *goquery.Document) string {
	if t := strings.TrimSpace(doc.Find("title").First().Text()); t != "" {
		return t
	}
	if t, ok := doc.Find(`meta[property="og:title"]`).Attr("content"); ok {
		if t = strings.TrimSpace(t); t != "" {
			return t
		}
	}
	if t, ok := doc.Find(`meta[name="twitter:title"]`).Attr("content"); ok {
		if t = strings.TrimSpace(t); t != "" {
			return t
		}
	}
	return ""
}

// stripJunk removes elements that never carry posting text.
func stripJunk(doc *goquery.Document) {
	doc.Find(strings.Join(junkTags, ", ")).Remove()
}
