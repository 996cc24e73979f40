package markdown

import "strings"

// Delimiter bounds the front-matter block. It is matched as a plain
// substring, so it must not appear inside regular content.
const Delimiter = "#####"

// Block is the result of locating a front-matter block in a document.
type Block struct {
	Span string // trimmed text between the two delimiters
	Pre  string // text before the first delimiter
	Post string // text after the second delimiter
}

// ParsedMarkdown is a document split into its metadata and display content.
type ParsedMarkdown struct {
	Metadata *Metadata // nil when there is no block or it failed to decode
	Content  string
}

// FindMetadataBlock locates the first two occurrences of Delimiter.
// It reports false when either is missing; an unterminated block is
// plain content.
func FindMetadataBlock(text string) (Block, bool) {
	first := strings.Index(text, Delimiter)
	if first < 0 {
		return Block{}, false
	}
	afterFirst := text[first+len(Delimiter):]

	second := strings.Index(afterFirst, Delimiter)
	if second < 0 {
		return Block{}, false
	}

	return Block{
		Span: strings.TrimSpace(afterFirst[:second]),
		Pre:  text[:first],
		Post: afterFirst[second+len(Delimiter):],
	}, true
}

// AssembleContent returns the display content of raw. Without a block the
// document is returned untouched. With one, the trimmed halves around the
// block are joined with no separator.
func AssembleContent(raw string, block Block, found bool) string {
	if !found {
		return raw
	}
	return strings.TrimSpace(block.Pre) + strings.TrimSpace(block.Post)
}

// Parse splits document into metadata and content. It never fails: a
// missing or malformed block yields nil Metadata.
func Parse(document string) ParsedMarkdown {
	parsed, _ := Inspect(document)
	return parsed
}

// Inspect is Parse that also returns the decode error, if any. The
// returned ParsedMarkdown is identical to what Parse would return.
func Inspect(document string) (ParsedMarkdown, error) {
	block, found := FindMetadataBlock(document)
	parsed := ParsedMarkdown{Content: AssembleContent(document, block, found)}
	if !found {
		return parsed, nil
	}

	meta, err := DecodeMetadata(block.Span)
	if err != nil {
		return parsed, err
	}
	parsed.Metadata = meta
	return parsed, nil
}
