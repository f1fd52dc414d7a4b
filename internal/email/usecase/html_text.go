package usecase

import (
	"regexp"
	"strings"
)

var (
	scriptRe    = regexp.MustCompile(`(?is)<script\b.*?>.*?</script\s*>`)
	styleRe     = regexp.MustCompile(`(?is)<style\b.*?>.*?</style\s*>`)
	lineBreakRe = regexp.MustCompile(`(?i)<br\s*/?>`)
	paraCloseRe = regexp.MustCompile(`(?i)</p\s*>`)
	tagRe       = regexp.MustCompile(`(?s)<.*?>`)
	hspaceRe    = regexp.MustCompile(`[ \t]+`)
	blankRunRe  = regexp.MustCompile(`\n\s+\n`)
)

// HTMLToText is a rough tag stripper, not a renderer. Script and style
// blocks are dropped with their content, <br> and </p> become newlines and
// at most one blank line survives between paragraphs.
func HTMLToText(html string) string {
	if html == "" {
		return ""
	}
	html = scriptRe.ReplaceAllString(html, " ")
	html = styleRe.ReplaceAllString(html, " ")
	html = lineBreakRe.ReplaceAllString(html, "\n")
	html = paraCloseRe.ReplaceAllString(html, "\n")
	html = tagRe.ReplaceAllString(html, " ")
	html = hspaceRe.ReplaceAllString(html, " ")
	html = blankRunRe.ReplaceAllString(html, "\n\n")
	return strings.TrimSpace(html)
}
