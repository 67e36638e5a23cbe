package content

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// threadPrefixReserve is the packing headroom for the eventual "(NN/NN) "
// numbering stamp. The true total is unknown until packing completes, so
// every chunk reserves the widest realistic prefix up front.
const threadPrefixReserve = 8

var sentencePattern = regexp.MustCompile(`[^.!?]+[.!?]*`)

// FormatForPlatform adapts raw content to a platform's length constraints.
// LinkedIn and Threads truncate to their ceilings; Twitter splits long content
// into a numbered thread. Unknown platforms pass content through unchanged.
// Lengths are counted in NFC-normalized runes.
func FormatForPlatform(content string, platform string) []string {
	normalized := norm.NFC.String(content)

	switch platform {
	case PlatformTwitter, "x":
		return splitThread(normalized)
	case PlatformLinkedin:
		return []string{truncateRunes(normalized, LinkedinLimit)}
	case PlatformThreads:
		return []string{truncateRunes(normalized, ThreadsLimit)}
	default:
		return []string{normalized}
	}
}

// splitThread packs sentences greedily into tweet-sized chunks, then stamps
// "(i/N) " prefixes in a second pass once the total is known. Content that
// fits in a single tweet is returned as-is, unprefixed.
func splitThread(content string) []string {
	if utf8.RuneCountInString(content) <= TwitterLimit {
		return []string{content}
	}

	budget := TwitterLimit - threadPrefixReserve

	var chunks []string
	var current string

	for _, sentence := range sentencePattern.FindAllString(content, -1) {
		sentence = strings.TrimSpace(sentence)
		if sentence == "" {
			continue
		}

		// A sentence that alone exceeds the budget gets hard-split by
		// character count; no attempt to preserve word boundaries.
		if utf8.RuneCountInString(sentence) > budget {
			if current != "" {
				chunks = append(chunks, current)
				current = ""
			}
			chunks = append(chunks, hardSplit(sentence, budget)...)
			continue
		}

		candidate := sentence
		if current != "" {
			candidate = current + " " + sentence
		}
		if utf8.RuneCountInString(candidate) <= budget {
			current = candidate
		} else {
			chunks = append(chunks, current)
			current = sentence
		}
	}
	if current != "" {
		chunks = append(chunks, current)
	}

	if len(chunks) <= 1 {
		return chunks
	}

	total := len(chunks)
	numbered := make([]string, total)
	for i, chunk := range chunks {
		numbered[i] = fmt.Sprintf("(%d/%d) %s", i+1, total, chunk)
	}

	return numbered
}

func hardSplit(s string, size int) []string {
	runes := []rune(s)

	var pieces []string
	for start := 0; start < len(runes); start += size {
		end := start + size
		if end > len(runes) {
			end = len(runes)
		}
		pieces = append(pieces, string(runes[start:end]))
	}

	return pieces
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
