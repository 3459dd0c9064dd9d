// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/jonathan/template-pilot/internal/feedback"
	"github.com/jonathan/template-pilot/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 72
	// maxCandidatesToShow is the number of candidates in the analysis table
	maxCandidatesToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintJobSummary outputs a human-readable summary of the job being matched.
func (p *Printer) PrintJobSummary(job *types.JobRecord) {
	if job == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Title:    %s\n", job.Title))
	if job.Company != "" {
		sb.WriteString(fmt.Sprintf("Company:  %s\n", job.Company))
	}
	if job.Seniority != "" {
		sb.WriteString(fmt.Sprintf("Level:    %s\n", job.Seniority))
	}
	if len(job.Skills) > 0 {
		sb.WriteString(fmt.Sprintf("Skills:   %s\n", truncateList(job.Skills, 40)))
	}
	if len(job.Software) > 0 {
		sb.WriteString(fmt.Sprintf("Software: %s\n", truncateList(job.Software, 40)))
	}
	if job.ExperienceYears > 0 {
		sb.WriteString(fmt.Sprintf("Years:    %d+\n", job.ExperienceYears))
	}

	p.printBox("JOB PROFILE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintCandidateAnalysis outputs the top-ranked candidates with their score
// breakdown and key reasons.
func (p *Printer) PrintCandidateAnalysis(scored []types.ScoredCandidate) {
	if len(scored) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Candidates analyzed: %d\n\n", len(scored)))

	count := min(len(scored), maxCandidatesToShow)
	for i := 0; i < count; i++ {
		sc := scored[i]
		sb.WriteString(fmt.Sprintf("#%d  %s\n", i+1, filepath.Base(sc.Candidate.FilePath)))
		sb.WriteString(fmt.Sprintf("    Base: %.2f", sc.BaseScore))
		if boosts := sc.LearningBoost + sc.SimilarityBoost + sc.FitBoost; boosts != 0 {
			sb.WriteString(fmt.Sprintf("  Boosts: ML %.2f / Content %.2f / Fit %.2f",
				sc.LearningBoost, sc.SimilarityBoost, sc.FitBoost))
		}
		sb.WriteString(fmt.Sprintf("  Total: %.2f\n", sc.Total))

		if len(sc.Reasons) > 0 {
			reasons := strings.Join(sc.Reasons, ", ")
			if len(reasons) > 55 {
				reasons = reasons[:52] + "..."
			}
			sb.WriteString(fmt.Sprintf("    %s\n", reasons))
		}
		if i < count-1 {
			sb.WriteString("\n")
		}
	}

	if len(scored) > maxCandidatesToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more candidates", len(scored)-maxCandidatesToShow))
	}

	p.printBox("CANDIDATE ANALYSIS", sb.String())
}

// PrintSelection outputs the winning template.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintSelection(result *types.RankedResult) {
	if result == nil {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, "NO REUSABLE TEMPLATE FOUND")
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Template: %s\n", filepath.Base(result.FilePath)))
	sb.WriteString(fmt.Sprintf("Path:     %s\n", result.FilePath))
	sb.WriteString(fmt.Sprintf("Score:    %.2f (base %.2f)\n", result.Score, result.BaseScore))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Why: %s", result.Explanation))

	p.printBox("SELECTED TEMPLATE", sb.String())
}

// PrintLearningStats outputs the selection-history statistics.
func (p *Printer) PrintLearningStats(stats feedback.LearningStats) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Selections recorded: %d\n", stats.TotalSelections))
	sb.WriteString(fmt.Sprintf("Templates tracked:   %d\n", stats.TemplatesTracked))
	sb.WriteString(fmt.Sprintf("Auto-selection rate: %.0f%%\n", stats.AutoSelectionRate*100))
	sb.WriteString(fmt.Sprintf("Avg selection score: %.2f\n", stats.AvgSelectionScore))

	if len(stats.OutcomeCounts) > 0 {
		sb.WriteString("\nOutcomes:\n")
		for _, outcome := range []string{types.OutcomeSuccess, types.OutcomeModified, types.OutcomeRejected} {
			if count, ok := stats.OutcomeCounts[outcome]; ok {
				sb.WriteString(fmt.Sprintf("  %-9s %d\n", outcome, count))
			}
		}
	}

	status := "learning active"
	if !stats.LearningActive {
		status = "cold start, base scoring only"
	}
	sb.WriteString(fmt.Sprintf("\nStatus: %s", status))

	p.printBox("LEARNING", sb.String())
}

// PrintFeedbackStats outputs the feedback-collection statistics.
func (p *Printer) PrintFeedbackStats(stats feedback.FeedbackStats) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Sessions:        %d\n", stats.TotalSessions))
	sb.WriteString(fmt.Sprintf("Collected:       %d (%.0f%%)\n", stats.FeedbackCollected, stats.CollectionRate*100))
	sb.WriteString(fmt.Sprintf("Ratings:         %d\n", stats.TotalRatings))
	sb.WriteString(fmt.Sprintf("Average rating:  %.1f/5", stats.AvgRating))

	if len(stats.CategoryAverages) > 0 {
		sb.WriteString("\n\nBy category:\n")
		for _, category := range []string{
			types.CategoryRoleFit, types.CategorySkillsMatch,
			types.CategoryContentQuality, types.CategoryRelevance,
		} {
			if avg, ok := stats.CategoryAverages[category]; ok {
				sb.WriteString(fmt.Sprintf("  %-16s %.1f/5\n", category, avg))
			}
		}
	}

	p.printBox("FEEDBACK", strings.TrimSuffix(sb.String(), "\n"))
}

func truncateList(items []string, limit int) string {
	joined := strings.Join(items, ", ")
	if len(joined) > limit {
		joined = joined[:limit-3] + "..."
	}
	return joined
}
