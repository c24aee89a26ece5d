package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"

	"podpost/internal/metadata"
)

func anchor(link metadata.Link) string {
	return fmt.Sprintf(`<a href="%s">%s</a>`, link.URL, link.Name)
}

// enumerate joins items English-style: "a", "a and b", "a, b and c".
func enumerate(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	case 2:
		return items[0] + " and " + items[1]
	default:
		return strings.Join(items[:len(items)-2], ", ") + ", " +
			items[len(items)-2] + " and " + items[len(items)-1]
	}
}

func enumerateLinks(links []metadata.Link) string {
	anchors := make([]string, len(links))
	for i, link := range links {
		anchors[i] = anchor(link)
	}
	return enumerate(anchors)
}

// realLinks drops pairs still carrying a placeholder URL or name.
func realLinks(links []metadata.Link) []metadata.Link {
	var real []metadata.Link
	for _, link := range links {
		if !link.IsPlaceholder() {
			real = append(real, link)
		}
	}
	return real
}

// realNames drops placeholder pairs and keeps the display names.
func realNames(links []metadata.Link) []string {
	var names []string
	for _, link := range links {
		if !metadata.IsPlaceholderValue(link.Name) {
			names = append(names, link.Name)
		}
	}
	return names
}

// img renders a cover image tag. An empty src renders the stand-in that
// invites cover art instead of a broken image.
func img(src string, width, height int) string {
	var b strings.Builder
	if src == "" {
		b.WriteString(`<img src="COVER"`)
	} else {
		fmt.Fprintf(&b, `<img src="%s"`, src)
	}
	if width > 0 {
		fmt.Fprintf(&b, ` width="%d"`, width)
	}
	if height > 0 {
		fmt.Fprintf(&b, ` height="%d"`, height)
	}
	if src == "" {
		b.WriteString(` alt="cover art welcome" />`)
	} else {
		b.WriteString(` alt="cover art" />`)
	}
	return b.String()
}

func listItems(items []string) string {
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = "<li>" + item + "</li>"
	}
	return strings.Join(lines, "\n")
}

var markdown = goldmark.New()

// markdownHTML converts operator-written markdown to HTML. Input that fails
// to convert passes through unchanged.
func markdownHTML(src string) string {
	if src == "" {
		return ""
	}
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(src), &buf); err != nil {
		return src
	}
	return strings.TrimSpace(buf.String())
}
