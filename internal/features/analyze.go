// Package features turns candidate documents into content feature bundles
// used by the similarity booster and for pairwise document comparison.
package features

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// roleKeywords maps role codes to content keywords that signal the role.
var roleKeywords = map[string][]string{
	"PA":  {"product analyst", "data analysis", "analytics", "product metrics", "kpi", "dashboard"},
	"DA":  {"data analyst", "sql", "python", "tableau", "power bi", "data visualization"},
	"PM":  {"product manager", "roadmap", "stakeholder", "product strategy", "product development"},
	"PO":  {"product owner", "agile", "scrum", "user stories", "backlog", "sprint"},
	"PJM": {"project manager", "gantt", "milestone", "timeline", "resource management"},
	"BA":  {"business analyst", "requirements", "process", "workflow", "documentation"},
}

// skillTaxonomy is the fixed skill vocabulary, grouped by category.
var skillTaxonomy = map[string][]string{
	"technical":  {"python", "sql", "java", "javascript", "aws", "azure", "docker", "kubernetes"},
	"analytics":  {"tableau", "power bi", "excel", "google analytics", "mixpanel", "amplitude"},
	"management": {"jira", "confluence", "slack", "trello", "asana", "notion"},
	"design":     {"figma", "sketch", "adobe", "photoshop", "illustrator"},
}

// sectionKeywords maps canonical section names to the phrases that mark them.
var sectionKeywords = map[string][]string{
	"experience":     {"experience", "work experience", "professional experience"},
	"education":      {"education", "academic background", "qualifications"},
	"skills":         {"skills", "technical skills", "competencies"},
	"projects":       {"projects", "project experience", "key projects"},
	"certifications": {"certifications", "certificates", "licenses"},
	"summary":        {"summary", "profile", "objective", "about"},
}

var (
	yearRangePattern   = regexp.MustCompile(`(?i)(\d{4})\s*[-–]\s*(\d{4}|present|current)`)
	yearMentionPattern = regexp.MustCompile(`(?i)(\d+)\+?\s*years?`)
	whitespacePattern  = regexp.MustCompile(`[ \t]+`)
	sentencePattern    = regexp.MustCompile(`[.!?]+`)
)

// cleanText normalizes extracted document text for analysis: collapsed
// horizontal whitespace, alphanumerics plus basic punctuation only,
// lowercased. Line structure is preserved for paragraph counting.
func cleanText(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = whitespacePattern.ReplaceAllString(strings.TrimSpace(text), " ")

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if r == ' ' || r == '.' || r == ',' || r == '-' || r == '\n' ||
			(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}

	return strings.ToLower(b.String())
}

// detectSections returns the canonical section names whose keywords appear
// in the (already lowercased) content.
func detectSections(content string) map[string]bool {
	sections := map[string]bool{}
	for section, keywords := range sectionKeywords {
		for _, keyword := range keywords {
			if strings.Contains(content, keyword) {
				sections[section] = true
				break
			}
		}
	}
	return sections
}

// detectSkills returns the taxonomy skills mentioned in the content.
func detectSkills(content string) map[string]bool {
	skills := map[string]bool{}
	for _, group := range skillTaxonomy {
		for _, skill := range group {
			if strings.Contains(content, skill) {
				skills[skill] = true
			}
		}
	}
	return skills
}

// countRoleKeywords counts role-specific keyword mentions per role code.
// Roles with zero matches are omitted.
func countRoleKeywords(content string) map[string]int {
	counts := map[string]int{}
	for role, keywords := range roleKeywords {
		n := 0
		for _, keyword := range keywords {
			if strings.Contains(content, keyword) {
				n++
			}
		}
		if n > 0 {
			counts[role] = n
		}
	}
	return counts
}

// estimateExperienceYears scans for "YYYY-YYYY" / "YYYY-Present" ranges and
// explicit "N+ years" mentions, returning the maximum found. 0 means unknown.
func estimateExperienceYears(content string, now time.Time) int {
	best := 0

	for _, m := range yearRangePattern.FindAllStringSubmatch(content, -1) {
		start, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		end := now.Year()
		if y, err := strconv.Atoi(m[2]); err == nil {
			end = y
		}
		if span := end - start; span > best && span < 60 {
			best = span
		}
	}

	for _, m := range yearMentionPattern.FindAllStringSubmatch(content, -1) {
		if n, err := strconv.Atoi(m[1]); err == nil && n > best && n < 60 {
			best = n
		}
	}

	return best
}

// readabilityScore computes a words-per-sentence / syllables-per-word
// measure normalized to [0,1], higher meaning easier to read.
func readabilityScore(content string) float64 {
	words := strings.Fields(content)
	sentences := 0
	for _, s := range sentencePattern.Split(content, -1) {
		if strings.TrimSpace(s) != "" {
			sentences++
		}
	}

	if sentences == 0 || len(words) == 0 {
		return 0.0
	}

	avgWordsPerSentence := float64(len(words)) / float64(sentences)
	totalSyllables := 0
	for _, w := range words {
		totalSyllables += countSyllables(w)
	}
	avgSyllablesPerWord := float64(totalSyllables) / float64(len(words))

	// Flesch-Kincaid style grade estimate; lower grade reads easier.
	grade := 0.39*avgWordsPerSentence + 11.8*avgSyllablesPerWord - 15.59

	score := (100 - grade) / 100
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}

// countSyllables approximates syllable count by vowel-group transitions.
func countSyllables(word string) int {
	word = strings.ToLower(word)
	if word == "" {
		return 1
	}

	const vowels = "aeiouy"
	count := 0
	prevVowel := false
	for _, r := range word {
		isVowel := strings.ContainsRune(vowels, r)
		if isVowel && !prevVowel {
			count++
		}
		prevVowel = isVowel
	}

	if strings.HasSuffix(word, "e") {
		count--
	}
	if count < 1 {
		return 1
	}
	return count
}
