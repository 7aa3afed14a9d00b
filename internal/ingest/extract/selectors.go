package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// fallbackSelectors is the prioritized list tried when reader-mode scoring
// comes up short. Whatever yields the longest trimmed text wins.
var fallbackSelectors = []string{
	// common semantic containers
	"main",
	"article",
	`[role="main"]`,

	// common job-posting containers
	".job",
	".job-description",
	".jobDescription",
	".job-desc",
	".description",
	".posting",
	".content",
	"#job",
	"#job-description",
	"#jobDescriptionText",
	"#posting",
	"#description",
	"#content",

	// ATS patterns
	`[data-automation='jobDescription']`,
	`[data-testid='jobDescription']`,
	`[class*='description']`,
	`[id*='description']`,
}

// selectorFallback evaluates the selector list and keeps the longest text;
// when every selector comes up empty it falls back to the whole document.
func selectorFallback(doc *goquery.Document) string {
	best := ""
	for _, sel := range fallbackSelectors {
		if t := strings.TrimSpace(doc.Find(sel).Text()); len(t) > len(best) {
			best = t
		}
	}

	if best == "" {
		best = strings.TrimSpace(doc.Find("body").Text())
	}

	return best
}
