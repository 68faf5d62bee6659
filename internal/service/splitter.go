package service

import "strings"

// defaultSeparators are tried in order, from coarsest to finest. The empty
// string is the last resort and splits between every character.
var defaultSeparators = []string{"\n\n", "\n", " ", ""}

// TextSplitter breaks long text into overlapping chunks, preferring to
// split on paragraph and line boundaries before falling back to words and
// raw characters.
type TextSplitter struct {
	chunkSize    int
	chunkOverlap int
	separators   []string
}

func NewTextSplitter(chunkSize, chunkOverlap int) *TextSplitter {
	return &TextSplitter{
		chunkSize:    chunkSize,
		chunkOverlap: chunkOverlap,
		separators:   defaultSeparators,
	}
}

// Split returns the chunks of text in document order. Whitespace-only
// pieces are dropped.
func (s *TextSplitter) Split(text string) []string {
	return s.splitText(text, s.separators)
}

func (s *TextSplitter) splitText(text string, separators []string) []string {
	separator := separators[len(separators)-1]
	var next []string
	for i, sep := range separators {
		if sep == "" || strings.Contains(text, sep) {
			separator = sep
			next = separators[i+1:]
			break
		}
	}

	splits := splitOn(text, separator)

	var chunks []string
	var pending []string
	for _, piece := range splits {
		if len(piece) < s.chunkSize {
			pending = append(pending, piece)
			continue
		}
		if len(pending) > 0 {
			chunks = append(chunks, s.merge(pending, separator)...)
			pending = nil
		}
		if len(next) == 0 {
			chunks = append(chunks, piece)
		} else {
			chunks = append(chunks, s.splitText(piece, next)...)
		}
	}
	if len(pending) > 0 {
		chunks = append(chunks, s.merge(pending, separator)...)
	}

	return chunks
}

// merge joins small pieces back together into chunks no longer than
// chunkSize, carrying chunkOverlap worth of trailing pieces into the next
// chunk.
func (s *TextSplitter) merge(pieces []string, separator string) []string {
	var chunks []string
	var window []string
	total := 0

	flush := func() {
		if len(window) == 0 {
			return
		}
		chunk := strings.TrimSpace(strings.Join(window, separator))
		if chunk != "" {
			chunks = append(chunks, chunk)
		}
	}

	for _, piece := range pieces {
		pieceLen := len(piece) + len(separator)
		if total+pieceLen > s.chunkSize && len(window) > 0 {
			flush()
			// Drop leading pieces until the carried-over tail fits the
			// overlap budget.
			for total > s.chunkOverlap && len(window) > 0 {
				total -= len(window[0]) + len(separator)
				window = window[1:]
			}
		}
		window = append(window, piece)
		total += pieceLen
	}
	flush()

	return chunks
}

func splitOn(text, separator string) []string {
	var raw []string
	if separator == "" {
		for _, r := range text {
			raw = append(raw, string(r))
		}
	} else {
		raw = strings.Split(text, separator)
	}

	pieces := raw[:0]
	for _, p := range raw {
		if strings.TrimSpace(p) != "" {
			pieces = append(pieces, p)
		}
	}
	return pieces
}
