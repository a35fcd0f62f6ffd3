package matching

import (
	"errors"
	"math"
	"sort"
)

var (
	ErrNotFitted   = errors.New("vectorizer is not fitted")
	ErrEmptyCorpus = errors.New("corpus is empty")
)

// Vector is a sparse, L2-normalized term-weight vector keyed by vocabulary index.
type Vector map[int]float64

// Vectorizer is a TF-IDF model fit on one corpus. The zero value is unfit.
// A fit Vectorizer is read-only, so concurrent Transform calls are safe
// as long as nobody calls Fit at the same time.
type Vectorizer struct {
	vocab map[string]int
	idf   []float64
}

func NewVectorizer() *Vectorizer {
	return &Vectorizer{}
}

// Fit builds the vocabulary and smoothed idf weights, replacing any previous model.
func (v *Vectorizer) Fit(corpus []string) error {
	if len(corpus) == 0 {
		return ErrEmptyCorpus
	}

	df := make(map[string]int)
	for _, doc := range corpus {
		seen := make(map[string]struct{})
		for _, tok := range tokenize(Normalize(doc)) {
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}
			df[tok]++
		}
	}
	if len(df) == 0 {
		return ErrEmptyCorpus
	}

	terms := make([]string, 0, len(df))
	for t := range df {
		terms = append(terms, t)
	}
	sort.Strings(terms)

	n := float64(len(corpus))
	vocab := make(map[string]int, len(terms))
	idf := make([]float64, len(terms))
	for i, t := range terms {
		vocab[t] = i
		idf[i] = math.Log((1+n)/(1+float64(df[t]))) + 1
	}

	v.vocab = vocab
	v.idf = idf
	return nil
}

func (v *Vectorizer) Fitted() bool {
	return v != nil && v.vocab != nil
}

// VocabularySize returns the number of terms in the fit model, 0 when unfit.
func (v *Vectorizer) VocabularySize() int {
	if !v.Fitted() {
		return 0
	}
	return len(v.vocab)
}

// Transform projects text into the fit vector space. Terms outside the
// vocabulary are ignored; text with no known terms yields an empty vector.
func (v *Vectorizer) Transform(text string) (Vector, error) {
	if !v.Fitted() {
		return nil, ErrNotFitted
	}

	counts := make(map[int]float64)
	for _, tok := range tokenize(Normalize(text)) {
		idx, ok := v.vocab[tok]
		if !ok {
			continue
		}
		counts[idx]++
	}

	var sq float64
	for idx, c := range counts {
		w := c * v.idf[idx]
		counts[idx] = w
		sq += w * w
	}
	if sq == 0 {
		return Vector{}, nil
	}

	l2 := math.Sqrt(sq)
	for idx := range counts {
		counts[idx] /= l2
	}
	return Vector(counts), nil
}

// Cosine returns the cosine similarity of two vectors. Empty vectors score 0.
func Cosine(a, b Vector) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	if len(b) < len(a) {
		a, b = b, a
	}

	var dot, na, nb float64
	for idx, w := range a {
		dot += w * b[idx]
		na += w * w
	}
	for _, w := range b {
		nb += w * w
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
