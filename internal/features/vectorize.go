package features

import (
	"math"
	"strings"
)

// stopWords excluded from text vectors. A short list is enough here; the
// vectors only feed cosine comparisons, not retrieval.
var stopWords = map[string]bool{
	"a": true, "an": true, "and": true, "are": true, "as": true, "at": true,
	"be": true, "by": true, "for": true, "from": true, "has": true, "in": true,
	"is": true, "it": true, "of": true, "on": true, "or": true, "that": true,
	"the": true, "to": true, "was": true, "were": true, "with": true,
}

// Vectorizer builds sparse TF-IDF vectors over a fixed corpus. Fit must be
// called once with the full document set of a ranking run before Transform;
// fitting per comparison pair makes weights incomparable across documents.
type Vectorizer struct {
	docCount int
	docFreq  map[string]int
}

// NewVectorizer returns an unfitted Vectorizer.
func NewVectorizer() *Vectorizer {
	return &Vectorizer{docFreq: map[string]int{}}
}

// Fit computes document frequencies over the corpus.
func (v *Vectorizer) Fit(docs []string) {
	v.docCount = len(docs)
	v.docFreq = map[string]int{}

	for _, doc := range docs {
		seen := map[string]bool{}
		for _, term := range Tokenize(doc) {
			if !seen[term] {
				seen[term] = true
				v.docFreq[term]++
			}
		}
	}
}

// Transform converts a document into a sparse TF-IDF vector. Terms unseen
// during Fit get a smoothed IDF so out-of-corpus text still vectorizes.
func (v *Vectorizer) Transform(doc string) map[string]float64 {
	terms := Tokenize(doc)
	if len(terms) == 0 {
		return map[string]float64{}
	}

	tf := map[string]float64{}
	for _, term := range terms {
		tf[term]++
	}

	vec := make(map[string]float64, len(tf))
	for term, count := range tf {
		idf := math.Log(float64(v.docCount+1)/float64(v.docFreq[term]+1)) + 1
		vec[term] = (count / float64(len(terms))) * idf
	}

	return vec
}

// Tokenize splits cleaned text into analysis terms, dropping stop words and
// single characters.
func Tokenize(doc string) []string {
	fields := strings.Fields(cleanText(doc))
	terms := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.Trim(f, ".,-")
		if len(f) < 2 || stopWords[f] {
			continue
		}
		terms = append(terms, f)
	}
	return terms
}

// Cosine returns the cosine similarity of two sparse vectors in [0,1].
// Either vector being empty yields 0.
func Cosine(a, b map[string]float64) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0.0
	}

	// Iterate the smaller map.
	if len(b) < len(a) {
		a, b = b, a
	}

	dot := 0.0
	for term, wa := range a {
		if wb, ok := b[term]; ok {
			dot += wa * wb
		}
	}
	if dot == 0 {
		return 0.0
	}

	normA := 0.0
	for _, w := range a {
		normA += w * w
	}
	normB := 0.0
	for _, w := range b {
		normB += w * w
	}

	sim := dot / (math.Sqrt(normA) * math.Sqrt(normB))
	if sim > 1 {
		return 1.0
	}
	return sim
}
