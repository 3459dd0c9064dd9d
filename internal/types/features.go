package types

// ContentFeatures is the feature bundle derived from a candidate document's
// extracted text. Built once per path per process lifetime and cached by the
// extractor, so values must be treated as read-only by consumers.
type ContentFeatures struct {
	WordCount      int
	CharCount      int
	ParagraphCount int

	// Sections holds the canonical section names detected in the document
	// (experience, education, skills, projects, certifications, summary).
	Sections map[string]bool

	// Skills holds recognized skill keywords, lowercased.
	Skills map[string]bool

	// ExperienceYears is the estimated years of experience; 0 means unknown.
	ExperienceYears int

	// RoleKeywords maps role codes to the number of role-specific keywords
	// found in the text.
	RoleKeywords map[string]int

	// Vector is a sparse term-weight vector over the document text.
	Vector map[string]float64

	// Readability is a normalized [0,1] score; higher reads easier.
	Readability float64
}

// EmptyContentFeatures returns a zero-valued feature bundle used when a
// document cannot be read or parsed.
func EmptyContentFeatures() *ContentFeatures {
	return &ContentFeatures{
		Sections:     map[string]bool{},
		Skills:       map[string]bool{},
		RoleKeywords: map[string]int{},
		Vector:       map[string]float64{},
	}
}

// IsEmpty reports whether no usable text was extracted.
func (f *ContentFeatures) IsEmpty() bool {
	return f == nil || f.WordCount == 0
}

// DominantRole returns the role code with the highest keyword count and that
// count. Returns ("", 0) when no role keywords were found.
func (f *ContentFeatures) DominantRole() (string, int) {
	best := ""
	bestCount := 0
	for role, count := range f.RoleKeywords {
		// Lexicographic tie-break keeps map iteration order from leaking out.
		if count > bestCount || (count == bestCount && count > 0 && role < best) {
			best = role
			bestCount = count
		}
	}
	return best, bestCount
}

// TotalRoleKeywords returns the sum of all role keyword counts.
func (f *ContentFeatures) TotalRoleKeywords() int {
	total := 0
	for _, count := range f.RoleKeywords {
		total += count
	}
	return total
}
