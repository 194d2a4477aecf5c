// Package words classifies keywords by part of speech and fetches
// related words for prompt enrichment.
package words

// WordType is the grammatical bucket a keyword is sorted into.
type WordType string

const (
	Noun          WordType = "noun"
	ProperNoun    WordType = "proper_noun"
	MultiwordNoun WordType = "multiword_noun"
	Gerund        WordType = "gerund"
	Adjective     WordType = "adjective"
	Unusable      WordType = "unusable"
)

// Buckets groups keywords by word type. Within a bucket, keywords keep
// their input order; template filling consumes them from the front.
type Buckets map[WordType][]string

// Add appends a keyword to the bucket for the given type.
func (b Buckets) Add(t WordType, word string) {
	b[t] = append(b[t], word)
}

// Count returns the total number of keywords across all buckets.
func (b Buckets) Count() int {
	var n int
	for _, list := range b {
		n += len(list)
	}
	return n
}
