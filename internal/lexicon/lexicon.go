// Package lexicon provides the word-polarity mapping used for bag-of-words
// sentiment scoring. The lexicon is loaded once at startup and immutable for
// the run.
package lexicon

import (
	"bufio"
	"embed"
	"fmt"
	"os"
	"strings"
)

//go:embed data/positive.txt data/negative.txt
var defaultLists embed.FS

// Polarity labels a lexicon word as positive or negative.
type Polarity int

const (
	Positive Polarity = iota
	Negative
)

func (p Polarity) String() string {
	if p == Positive {
		return "positive"
	}
	return "negative"
}

// Lexicon is a fixed word -> polarity mapping. Keys are lowercase; lookups
// are case-insensitive exact matches only (no stemming, no phrases).
type Lexicon struct {
	words map[string]Polarity
}

// Lookup returns the polarity of a word. Words absent from the lexicon
// return ok=false and contribute to neither count.
func (l *Lexicon) Lookup(word string) (Polarity, bool) {
	p, ok := l.words[strings.ToLower(word)]
	return p, ok
}

// Len returns the number of words in the lexicon.
func (l *Lexicon) Len() int {
	return len(l.words)
}

// New builds a lexicon from explicit word lists. Later entries win when a
// word appears in both lists.
func New(positive, negative []string) *Lexicon {
	words := make(map[string]Polarity, len(positive)+len(negative))
	for _, w := range positive {
		if w = strings.ToLower(strings.TrimSpace(w)); w != "" {
			words[w] = Positive
		}
	}
	for _, w := range negative {
		if w = strings.ToLower(strings.TrimSpace(w)); w != "" {
			words[w] = Negative
		}
	}
	return &Lexicon{words: words}
}

// Default returns the embedded finance polarity lexicon.
func Default() *Lexicon {
	pos, _ := readList("data/positive.txt")
	neg, _ := readList("data/negative.txt")
	return New(pos, neg)
}

func readList(path string) ([]string, error) {
	f, err := defaultLists.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var words []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words = append(words, line)
	}
	return words, scanner.Err()
}

// LoadFile loads a lexicon from a "word,polarity" CSV-style file, one entry
// per line. Polarity must be "positive" or "negative".
func LoadFile(path string) (*Lexicon, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open lexicon file: %w", err)
	}
	defer f.Close()

	words := make(map[string]Polarity)
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		word, polarity, found := strings.Cut(line, ",")
		if !found {
			return nil, fmt.Errorf("lexicon file %s line %d: expected word,polarity", path, lineNo)
		}

		word = strings.ToLower(strings.TrimSpace(word))
		switch strings.ToLower(strings.TrimSpace(polarity)) {
		case "positive":
			words[word] = Positive
		case "negative":
			words[word] = Negative
		default:
			return nil, fmt.Errorf("lexicon file %s line %d: unknown polarity %q", path, lineNo, polarity)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read lexicon file: %w", err)
	}

	return &Lexicon{words: words}, nil
}
