package extractor

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/aleister1102/pagewatch/internal/models"
	"github.com/rs/zerolog"
	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"
)

// TextExtractor turns raw page markup into canonical text
type TextExtractor struct {
	logger zerolog.Logger
}

// New creates a TextExtractor
func New(logger zerolog.Logger) *TextExtractor {
	return &TextExtractor{
		logger: logger.With().Str("component", "TextExtractor").Logger(),
	}
}

// Extract returns the visible text of raw as trimmed, non-empty lines in
// document order. Markup that cannot be parsed yields empty text.
func (e *TextExtractor) Extract(raw []byte) models.CanonicalText {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(e.toUTF8(raw)))
	if err != nil {
		e.logger.Warn().Err(err).Int("size", len(raw)).Msg("Failed to parse markup, treating page as empty")
		return models.CanonicalText{}
	}

	doc.Find(ignoredSelector).Remove()

	var sb strings.Builder
	for _, n := range doc.Nodes {
		collectText(n, &sb)
	}

	return models.NewCanonicalText(normalizeLines(sb.String())...)
}

// toUTF8 returns raw unchanged when it is valid UTF-8. Otherwise the charset is
// sniffed from a byte order mark or <meta> declaration, falling back to
// windows-1252.
func (e *TextExtractor) toUTF8(raw []byte) []byte {
	if utf8.Valid(raw) {
		return raw
	}
	enc, name, _ := charset.DetermineEncoding(raw, "")
	decoded, err := enc.NewDecoder().Bytes(raw)
	if err != nil {
		e.logger.Debug().Err(err).Str("charset", name).Msg("Failed to decode markup, using raw bytes")
		return raw
	}
	return decoded
}

// collectText writes text nodes under n to sb, breaking lines around block elements.
func collectText(n *html.Node, sb *strings.Builder) {
	switch n.Type {
	case html.TextNode:
		sb.WriteString(n.Data)
		return
	case html.CommentNode, html.DoctypeNode:
		return
	}

	block := n.Type == html.ElementNode && blockElements[n.Data]
	if block {
		sb.WriteByte('\n')
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, sb)
	}
	if block {
		sb.WriteByte('\n')
	}
}

// normalizeLines splits text into lines, collapses whitespace runs inside each
// line and drops lines left empty.
func normalizeLines(text string) []string {
	rawLines := strings.FieldsFunc(text, func(r rune) bool {
		return r == '\n' || r == '\r' || r == '\f' || r == '\v'
	})

	lines := make([]string, 0, len(rawLines))
	for _, line := range rawLines {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		lines = append(lines, strings.Join(fields, " "))
	}
	return lines
}
