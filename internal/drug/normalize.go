package drug

import (
	"regexp"
	"strings"
)

// FormTokens are the dosage-form and category words stripped from drug names
// before comparison. Order matters: 정제 must be removed before 정.
var FormTokens = []string{"주사제", "정제", "정", "약", "캡슐", "시럽"}

var stripRe = regexp.MustCompile(`[\s()\[\]_/-]|` + strings.Join(FormTokens, "|"))

// Normalize canonicalizes a product or ingredient name for comparison:
// whitespace, brackets, dashes and dosage-form tokens are removed, the
// result is trimmed and lower-cased. It is the single key-equivalence
// function for the whole engine and must be applied identically to stored
// values and query strings.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(stripRe.ReplaceAllString(s, "")))
}
