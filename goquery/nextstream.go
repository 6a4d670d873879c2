package goquery

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf16"

	"github.com/fwojciec/newsscout"
	"github.com/fwojciec/newsscout/dateparse"
)

// streamedPush matches one self.__next_f.push([n,"..."]) call and captures
// the string argument.
var streamedPush = regexp.MustCompile(`self\.__next_f\.push\(\[\s*\d+\s*,\s*"((?:[^"\\]|\\.)*)"\s*\]\)`)

// streamedHref matches an href prop in a decoded payload.
var streamedHref = regexp.MustCompile(`"href"\s*:\s*"(/[^"\\]*(?:\\.[^"\\]*)*)"`)

// streamedChildren matches a string children prop.
var streamedChildren = regexp.MustCompile(`"children"\s*:\s*"((?:[^"\\]|\\.)*)"`)

// Class-name markers of post cards. CSS modules append a hash after the
// double underscore, so only the prefix is matched.
const (
	markerTitle       = "_postTitle__"
	markerExcerpt     = "_postExcerpt__"
	markerDate        = "_postDate__"
	markerAuthor      = "_postAuthor__"
	markerReadingTime = "_postReadingTime__"
)

// streamedBlockWindow bounds the block searched for card fields after an
// href.
const streamedBlockWindow = 3000

// ParseStreamedPayload reads post cards from Next.js app-router streamed
// payload scripts (self.__next_f.push calls). Each href is followed by a
// block, up to the next href, in which the card's title, excerpt, date,
// author and reading time are found by their CSS module class names.
// Cards without a title are dropped.
func ParseStreamedPayload(script, baseURL string) []*newsscout.Candidate {
	var payload strings.Builder
	for _, m := range streamedPush.FindAllStringSubmatch(script, -1) {
		payload.WriteString(UnescapeJSString(m[1]))
	}
	text := payload.String()
	if text == "" {
		return nil
	}

	hrefs := streamedHref.FindAllStringSubmatchIndex(text, -1)
	var out []*newsscout.Candidate
	for i, m := range hrefs {
		end := min(len(text), m[1]+streamedBlockWindow)
		if i+1 < len(hrefs) && hrefs[i+1][0] < end {
			end = hrefs[i+1][0]
		}
		block := text[m[1]:end]

		title := markerText(block, markerTitle)
		if title == "" {
			continue
		}
		link := newsscout.ResolveURL(baseURL, decodeJSONString(text[m[2]:m[3]]))
		if link == "" {
			continue
		}

		c := newsscout.NewCandidate(link, title, newsscout.StrategyNextJSStream)
		c.Summary = markerText(block, markerExcerpt)
		if date := markerText(block, markerDate); date != "" {
			c.PublishedAt = dateparse.ParsePtr(date)
		}
		c.AddAuthors(markerText(block, markerAuthor))
		c.SetExtra("reading_time", markerText(block, markerReadingTime))
		out = append(out, c)
	}
	return out
}

// markerText returns the first string children that follows marker within
// block.
func markerText(block, marker string) string {
	idx := strings.Index(block, marker)
	if idx < 0 {
		return ""
	}
	m := streamedChildren.FindStringSubmatch(block[idx:])
	if m == nil {
		return ""
	}
	return cleanText(decodeJSONString(m[1]))
}

// UnescapeJSString decodes the escape sequences of a JavaScript string
// literal body. Unknown escapes yield the escaped character.
func UnescapeJSString(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if ch != '\\' || i+1 >= len(s) {
			b.WriteByte(ch)
			continue
		}
		i++
		switch s[i] {
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case 't':
			b.WriteByte('\t')
		case 'b':
			b.WriteByte('\b')
		case 'f':
			b.WriteByte('\f')
		case 'v':
			b.WriteByte('\v')
		case '0':
			b.WriteByte(0)
		case 'x':
			if i+2 < len(s) {
				if n, err := strconv.ParseUint(s[i+1:i+3], 16, 8); err == nil {
					b.WriteRune(rune(n))
					i += 2
					continue
				}
			}
			b.WriteByte('x')
		case 'u':
			r, width := decodeUnicodeEscape(s[i+1:])
			if width == 0 {
				b.WriteByte('u')
				continue
			}
			b.WriteRune(r)
			i += width
		default:
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

// decodeUnicodeEscape decodes the hex digits following a \u, combining a
// surrogate pair when a second \u escape follows. Returns the rune and the
// number of bytes consumed, or zero width when s does not start with four
// hex digits.
func decodeUnicodeEscape(s string) (rune, int) {
	if len(s) < 4 {
		return 0, 0
	}
	n, err := strconv.ParseUint(s[:4], 16, 16)
	if err != nil {
		return 0, 0
	}
	r := rune(n)
	if utf16.IsSurrogate(r) && len(s) >= 10 && s[4] == '\\' && s[5] == 'u' {
		if n2, err := strconv.ParseUint(s[6:10], 16, 16); err == nil {
			if pair := utf16.DecodeRune(r, rune(n2)); pair != unicode.ReplacementChar {
				return pair, 10
			}
		}
	}
	return r, 4
}
