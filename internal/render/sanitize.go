package render

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// inlineTags are the tags a message may carry. Everything else is dropped
// but its text is kept.
var inlineTags = map[string]bool{
	"b":      true,
	"strong": true,
	"em":     true,
	"i":      true,
	"span":   true,
	"code":   true,
	"br":     true,
}

// classAttrTags may keep a class attribute (icon fonts, emphasis styles).
var classAttrTags = map[string]bool{
	"i":    true,
	"span": true,
}

// droppedContent are elements whose text must not leak into the output.
var droppedContent = map[string]bool{
	"script": true,
	"style":  true,
}

var validClass = regexp.MustCompile(`^[A-Za-z0-9 _-]+$`)

// SanitizeMessage returns msg as HTML containing only whitelisted inline tags.
// Attributes are removed except a plain class on i and span. Unbalanced tags
// are closed at the end of the message.
func SanitizeMessage(msg string) string {
	var (
		out     strings.Builder
		open    []string
		skipped int
	)

	z := html.NewTokenizer(strings.NewReader(msg))
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			// io.EOF or malformed input; either way the message ends here
			break
		}

		tok := z.Token()
		switch tt {
		case html.TextToken:
			if skipped == 0 {
				out.WriteString(html.EscapeString(tok.Data))
			}

		case html.StartTagToken, html.SelfClosingTagToken:
			if droppedContent[tok.Data] && tt == html.StartTagToken {
				skipped++
				continue
			}
			if skipped > 0 || !inlineTags[tok.Data] {
				continue
			}
			if tok.Data == "br" {
				out.WriteString("<br>")
				continue
			}
			out.WriteString("<" + tok.Data)
			if classAttrTags[tok.Data] {
				if class := attr(tok, "class"); class != "" && validClass.MatchString(class) {
					out.WriteString(` class="` + class + `"`)
				}
			}
			if tt == html.SelfClosingTagToken {
				out.WriteString("></" + tok.Data + ">")
				continue
			}
			out.WriteString(">")
			open = append(open, tok.Data)

		case html.EndTagToken:
			if droppedContent[tok.Data] {
				if skipped > 0 {
					skipped--
				}
				continue
			}
			if skipped > 0 || !inlineTags[tok.Data] {
				continue
			}
			// Close back to the matching open tag, ignoring strays
			for i := len(open) - 1; i >= 0; i-- {
				if open[i] != tok.Data {
					continue
				}
				for j := len(open) - 1; j >= i; j-- {
					out.WriteString("</" + open[j] + ">")
				}
				open = open[:i]
				break
			}
		}
	}

	for i := len(open) - 1; i >= 0; i-- {
		out.WriteString("</" + open[i] + ">")
	}
	return out.String()
}

// StripMarkup returns the plain text of msg with all tags removed and
// entities decoded. Line breaks become newlines.
func StripMarkup(msg string) string {
	var (
		out     strings.Builder
		skipped int
	)

	z := html.NewTokenizer(strings.NewReader(msg))
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			break
		}

		tok := z.Token()
		switch tt {
		case html.TextToken:
			if skipped == 0 {
				out.WriteString(tok.Data)
			}
		case html.StartTagToken, html.SelfClosingTagToken:
			if droppedContent[tok.Data] && tt == html.StartTagToken {
				skipped++
			} else if tok.Data == "br" && skipped == 0 {
				out.WriteString("\n")
			}
		case html.EndTagToken:
			if droppedContent[tok.Data] && skipped > 0 {
				skipped--
			}
		}
	}

	return strings.TrimSpace(out.String())
}

func attr(tok html.Token, name string) string {
	for _, a := range tok.Attr {
		if a.Key == name {
			return strings.TrimSpace(a.Val)
		}
	}
	return ""
}
