package features

import (
	"strings"
	"time"

	"github.com/jonathan/template-pilot/internal/types"
	"go.uber.org/zap"
)

// Extractor parses candidate documents into ContentFeatures, memoized by
// file path for the lifetime of the process. It is not safe for concurrent
// use; the pipeline runs single-threaded by design.
type Extractor struct {
	cache  map[string]*types.ContentFeatures
	texts  map[string]string
	logger *zap.Logger
	now    func() time.Time
}

// NewExtractor returns an Extractor with an empty cache.
func NewExtractor(logger *zap.Logger) *Extractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Extractor{
		cache:  map[string]*types.ContentFeatures{},
		texts:  map[string]string{},
		logger: logger,
		now:    time.Now,
	}
}

// Extract returns the feature bundle for the document at path. The boolean
// reports whether usable text was extracted; on failure the features are
// empty but valid, never nil, and the failure is cached so a bad document
// is parsed at most once.
func (e *Extractor) Extract(path string) (*types.ContentFeatures, bool) {
	if cached, ok := e.cache[path]; ok {
		return cached, !cached.IsEmpty()
	}

	text, err := readDocumentText(path)
	if err != nil {
		e.logger.Warn("failed to extract document text",
			zap.String("path", path),
			zap.Error(err))
		empty := types.EmptyContentFeatures()
		e.cache[path] = empty
		e.texts[path] = ""
		return empty, false
	}

	content := cleanText(text)
	e.texts[path] = content

	features := e.analyze(content)
	e.cache[path] = features

	return features, !features.IsEmpty()
}

// Text returns the cleaned document text for path, extracting it on first
// use. Empty string means the document was unreadable.
func (e *Extractor) Text(path string) string {
	if _, ok := e.texts[path]; !ok {
		e.Extract(path)
	}
	return e.texts[path]
}

// Similarity vectorizes both documents and returns their cosine similarity
// in [0,1]; 0.0 if either text is empty.
//
// The vectorizer is fitted on just these two documents, which is fine for a
// pairwise comparison but produces weights that are not comparable across
// pairs. Corpus-wide comparisons must go through FitCorpus/Vector instead.
func (e *Extractor) Similarity(pathA, pathB string) float64 {
	textA := e.Text(pathA)
	textB := e.Text(pathB)
	if textA == "" || textB == "" {
		return 0.0
	}

	v := NewVectorizer()
	v.Fit([]string{textA, textB})

	return Cosine(v.Transform(textA), v.Transform(textB))
}

// FitCorpus fits a shared vectorizer over the candidate documents at the
// given paths plus any extra raw texts (e.g. the job description), and
// refreshes the cached feature vectors so they are mutually comparable
// within the current ranking run.
func (e *Extractor) FitCorpus(paths []string, extra ...string) *Vectorizer {
	docs := make([]string, 0, len(paths)+len(extra))
	for _, p := range paths {
		if text := e.Text(p); text != "" {
			docs = append(docs, text)
		}
	}
	docs = append(docs, extra...)

	v := NewVectorizer()
	v.Fit(docs)

	for _, p := range paths {
		if feats, ok := e.cache[p]; ok && !feats.IsEmpty() {
			feats.Vector = v.Transform(e.texts[p])
		}
	}

	return v
}

// analyze builds the feature bundle from cleaned content.
func (e *Extractor) analyze(content string) *types.ContentFeatures {
	if strings.TrimSpace(content) == "" {
		return types.EmptyContentFeatures()
	}

	words := strings.Fields(content)
	paragraphs := 0
	for _, line := range strings.Split(content, "\n") {
		if strings.TrimSpace(line) != "" {
			paragraphs++
		}
	}
	if paragraphs == 0 {
		paragraphs = 1
	}

	v := NewVectorizer()
	v.Fit([]string{content})

	return &types.ContentFeatures{
		WordCount:       len(words),
		CharCount:       len(content),
		ParagraphCount:  paragraphs,
		Sections:        detectSections(content),
		Skills:          detectSkills(content),
		ExperienceYears: estimateExperienceYears(content, e.now()),
		RoleKeywords:    countRoleKeywords(content),
		Vector:          v.Transform(content),
		Readability:     readabilityScore(content),
	}
}
