package nlp

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/kingsley-judewin/the-sentiment-oracle/internal/domain"
)

var (
	urlPattern   = regexp.MustCompile(`https?://\S+|www\.\S+`)
	htmlPattern  = regexp.MustCompile(`<[^>]+>`)
	emojiPattern = regexp.MustCompile(`[\x{1F300}-\x{1F5FF}\x{1F600}-\x{1F64F}\x{1F680}-\x{1F6FF}\x{1F1E0}-\x{1F1FF}\x{1F900}-\x{1F9FF}\x{1FA00}-\x{1FAFF}\x{2700}-\x{27BF}]+`)
	spacePattern = regexp.MustCompile(`\s+`)
)

// Cleaner strips noise from post text and drops low-effort posts before
// classification.
type Cleaner struct {
	minWords int
}

func NewCleaner(minWords int) *Cleaner {
	return &Cleaner{minWords: minWords}
}

// Clean runs the full cleaning pipeline on a single text string.
func (c *Cleaner) Clean(text string) string {
	text = urlPattern.ReplaceAllString(text, "")
	text = htmlPattern.ReplaceAllString(text, "")
	text = emojiPattern.ReplaceAllString(text, "")
	text = stripSymbolRuns(text)
	text = collapseRepeats(text)
	text = strings.ToLower(strings.TrimSpace(text))
	text = spacePattern.ReplaceAllString(text, " ")
	return text
}

// Apply cleans every post and drops the ones that fail the quality filters:
// fewer than the minimum word count after cleaning, or all-caps shouting in
// the original text.
func (c *Cleaner) Apply(posts []domain.Post) []domain.CleanedPost {
	cleaned := make([]domain.CleanedPost, 0, len(posts))
	for _, post := range posts {
		if isShouting(post.Text) {
			continue
		}
		text := c.Clean(post.Text)
		if len(strings.Fields(text)) < c.minWords {
			continue
		}
		cleaned = append(cleaned, domain.CleanedPost{Post: post, CleanedText: text})
	}
	return cleaned
}

// stripSymbolRuns removes runs of 3+ identical special characters (e.g.
// "!!!" or "$$$"). Implemented by hand since RE2 has no backreferences.
func stripSymbolRuns(text string) string {
	runes := []rune(text)
	var b strings.Builder
	b.Grow(len(text))

	for i := 0; i < len(runes); {
		r := runes[i]
		run := 1
		for i+run < len(runes) && runes[i+run] == r {
			run++
		}
		symbol := !unicode.IsLetter(r) && !unicode.IsDigit(r) && !unicode.IsSpace(r) && r != '_'
		if !(symbol && run >= 3) {
			for n := 0; n < run; n++ {
				b.WriteRune(r)
			}
		}
		i += run
	}
	return b.String()
}

// collapseRepeats shortens runs of 3+ identical characters to 2
// (e.g. "sooooo" becomes "soo").
func collapseRepeats(text string) string {
	runes := []rune(text)
	var b strings.Builder
	b.Grow(len(text))

	for i := 0; i < len(runes); {
		r := runes[i]
		run := 1
		for i+run < len(runes) && runes[i+run] == r {
			run++
		}
		keep := run
		if keep > 2 {
			keep = 2
		}
		for n := 0; n < keep; n++ {
			b.WriteRune(r)
		}
		i += run
	}
	return b.String()
}

// isShouting reports whether a text is written entirely in capitals.
func isShouting(text string) bool {
	letters := 0
	upper := 0
	for _, r := range text {
		if unicode.IsLetter(r) {
			letters++
			if unicode.IsUpper(r) {
				upper++
			}
		}
	}
	return letters >= 5 && upper == letters
}
