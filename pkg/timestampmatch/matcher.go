package timestampmatch

import (
	"regexp"
	"sort"
	"strings"

	"github.com/documind-ai/documind/pkg/types"
)

// DefaultMinSimilarity is the floor a topic must strictly beat for its
// time offset to be suggested alongside an answer.
const DefaultMinSimilarity = 0.1

var nonWord = regexp.MustCompile(`[^\w\s]`)

// stopWords are common English function words ignored during keyword
// extraction so topic matching keys on content-bearing terms only.
var stopWords = map[string]struct{}{}

func init() {
	for _, w := range strings.Fields(`
		the a an is are was were be been being
		have has had do does did will would could
		should may might must shall can need dare
		ought used to of in for on with at by
		from as into through during before after above
		below between under again further then once
		here there when where why how all each few
		more most other some such no nor not only
		own same so than too very just and but
		if or because until while about against this
		that these those it its what which who whom
		i me my myself we our ours ourselves you
		your yours yourself yourselves he him his himself
		she her hers herself they them their theirs`) {
		stopWords[w] = struct{}{}
	}
}

// ExtractKeywords lower-cases the text, strips punctuation, and keeps
// tokens of at least three characters that are not stop words.
func ExtractKeywords(text string) map[string]struct{} {
	text = nonWord.ReplaceAllString(strings.ToLower(text), " ")

	keywords := make(map[string]struct{})
	for _, word := range strings.Fields(text) {
		if len(word) < 3 {
			continue
		}
		if _, stop := stopWords[word]; stop {
			continue
		}
		keywords[word] = struct{}{}
	}
	return keywords
}

// CalculateSimilarity returns the Jaccard similarity of two keyword sets.
// Either set being empty scores zero.
func CalculateSimilarity(a, b map[string]struct{}) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	intersection := 0
	for w := range a {
		if _, ok := b[w]; ok {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	return float64(intersection) / float64(union)
}

// entryKeywords builds the comparable keyword set for one timestamp entry
// from its topic, description and explicit keyword list. An entry with no
// usable keywords is skipped by the callers rather than failing the match.
func entryKeywords(entry types.TimestampEntry) map[string]struct{} {
	parts := []string{entry.Topic}
	if entry.Description != "" {
		parts = append(parts, entry.Description)
	}
	if len(entry.Keywords) > 0 {
		parts = append(parts, strings.Join(entry.Keywords, " "))
	}
	return ExtractKeywords(strings.Join(parts, " "))
}

// FindBest matches answer content against topic timestamps by keyword
// overlap and returns the time offset of the closest topic. The result is
// nil when no entry strictly exceeds minSimilarity. Ties keep the first
// entry encountered.
func FindBest(answer string, sourceChunks []string, entries []types.TimestampEntry, minSimilarity float64) *int {
	if len(entries) == 0 {
		return nil
	}

	combined := answer
	if len(sourceChunks) > 0 {
		combined += " " + strings.Join(sourceChunks, " ")
	}
	answerKeywords := ExtractKeywords(combined)
	if len(answerKeywords) == 0 {
		return nil
	}

	var bestTime *int
	bestSimilarity := minSimilarity

	for _, entry := range entries {
		keywords := entryKeywords(entry)
		if len(keywords) == 0 {
			continue
		}
		if similarity := CalculateSimilarity(answerKeywords, keywords); similarity > bestSimilarity {
			bestSimilarity = similarity
			t := entry.Time
			bestTime = &t
		}
	}
	return bestTime
}

// Match is one scored candidate from FindTopN, kept for explainability
// endpoints and debugging rather than the primary answer path.
type Match struct {
	Time       int     `json:"time"`
	Topic      string  `json:"topic"`
	Similarity float64 `json:"similarity"`
}

// FindTopN returns up to topN entries scoring at or above minSimilarity,
// best first. The sort is stable so equal scores keep timeline order.
func FindTopN(answer string, sourceChunks []string, entries []types.TimestampEntry, topN int, minSimilarity float64) []Match {
	if len(entries) == 0 {
		return nil
	}

	combined := answer
	if len(sourceChunks) > 0 {
		combined += " " + strings.Join(sourceChunks, " ")
	}
	answerKeywords := ExtractKeywords(combined)
	if len(answerKeywords) == 0 {
		return nil
	}

	var matches []Match
	for _, entry := range entries {
		keywords := entryKeywords(entry)
		if len(keywords) == 0 {
			continue
		}
		if similarity := CalculateSimilarity(answerKeywords, keywords); similarity >= minSimilarity {
			matches = append(matches, Match{Time: entry.Time, Topic: entry.Topic, Similarity: similarity})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Similarity > matches[j].Similarity
	})

	if topN > 0 && len(matches) > topN {
		matches = matches[:topN]
	}
	return matches
}
