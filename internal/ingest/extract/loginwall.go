package extract

import "strings"

// loginSignals are phrases that show up when a job board serves its auth
// wall instead of the posting. One hit is common in page chrome; two or
// more means the extracted text is probably the wall itself.
var loginSignals = []string{
	"sign in",
	"log in",
	"login",
	"password",
	"create an account",
	"create account",
	"join now",
	"continue with google",
	"forgot password",
	"verify you are human",
}

// loginWallThreshold is the number of distinct signals required.
const loginWallThreshold = 2

// DetectLoginWall reports whether the extracted text plus title guess looks
// like a login or registration wall rather than posting content.
func DetectLoginWall(text, titleGuess string) bool {
	haystack := strings.ToLower(text + "\n" + titleGuess)

	hits := 0
	for _, signal := range loginSignals {
		if strings.Contains(haystack, signal) {
			hits++
			if hits >= loginWallThreshold {
				return true
			}
		}
	}
	return false
}
