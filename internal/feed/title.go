package feed

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	maxTitleLength  = 80
	ellipsis        = "…"
	openParenthesis = '('
	punctuation     = ",.;:!? "
	untitled        = "Instagram post"
)

var (
	multipleSpacesRegex = regexp.MustCompile(`\s+`)
	sentenceEndRegex    = regexp.MustCompile(`[.!?…](?:\s|$)|\.{3}`)
	hashtagTailRegex    = regexp.MustCompile(`(?:\s*[#@][^\s#@]+)+\s*$`)
)

// extractTitle derives a feed item title from a caption.
// It prioritizes:
// 1. The first line of the caption.
// 2. The first sentence of that line.
// Trailing hashtags and mentions are dropped.
func extractTitle(caption string) string {
	line, _, _ := strings.Cut(strings.TrimSpace(caption), "\n")
	line = hashtagTailRegex.ReplaceAllString(line, "")

	if matches := sentenceEndRegex.FindStringIndex(line); matches != nil {
		line = line[:matches[1]]
	}

	if title := formatTitle(line); title != "" {
		return title
	}

	return untitled
}

// formatTitle ensures the title follows the specified rules
func formatTitle(text string) string {
	// Clean up spaces
	text = multipleSpacesRegex.ReplaceAllString(text, " ")
	text = strings.TrimSpace(text)

	// Remove parenthetical text if it crosses the character limit
	text = removeIncompleteParens(text, maxTitleLength)

	// Ensure we don't cut words in half
	return truncateAtWordBoundary(text, maxTitleLength)
}

// removeIncompleteParens removes parenthetical text that crosses the character limit
func removeIncompleteParens(text string, limit int) string {
	if utf8.RuneCountInString(text) <= limit {
		return text
	}

	var result strings.Builder
	inParens := false
	parenStart := 0
	runeCount := 0

	for i, r := range text {
		runeCount++

		if r == openParenthesis {
			inParens = true
			parenStart = i
		} else if r == ')' && inParens {
			inParens = false
			continue
		}

		if runeCount > limit && inParens {
			return strings.TrimRight(text[:parenStart], punctuation) + ellipsis
		}

		if !inParens {
			result.WriteRune(r)
		}
	}

	return result.String()
}

// truncateAtWordBoundary truncates text at a word boundary
func truncateAtWordBoundary(text string, limit int) string {
	if utf8.RuneCountInString(text) <= limit {
		return text
	}

	lastWordEnd := 0
	currentCount := 0

	for i, r := range text {
		currentCount++

		if unicode.IsSpace(r) {
			lastWordEnd = i
		}

		if currentCount >= limit {
			var truncated string

			if lastWordEnd > 0 {
				truncated = text[:lastWordEnd]
			} else {
				// No word boundary, cut at the limit
				truncated = text[:i]
			}

			return strings.TrimRight(truncated, punctuation) + ellipsis
		}
	}

	return text
}
