package extract

import (
	"regexp"
	"strings"
)

var (
	trailingWS   = regexp.MustCompile(`[ \t]+\n`)
	newlineRuns  = regexp.MustCompile(`\n{3,}`)
	spaceRuns    = regexp.MustCompile(`[ \t]+`)
	nbspReplacer = strings.NewReplacer(" ", " ", "​", "")
)

// CleanText normalizes extracted posting text: non-breaking spaces become
// plain spaces, trailing whitespace is stripped per line, runs of three or
// more newlines collapse to two, and surrounding whitespace is trimmed.
func CleanText(s string) string {
	s = nbspReplacer.Replace(s)
	s = trailingWS.ReplaceAllString(s, "\n")
	s = spaceRuns.ReplaceAllString(s, " ")
	s = newlineRuns.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}
