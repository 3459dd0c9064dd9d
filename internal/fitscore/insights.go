package fitscore

import "path/filepath"

// PerformanceInsights summarizes a template's logged track record for
// reporting surfaces.
type PerformanceInsights struct {
	TemplateName     string  `json:"template_name"`
	TotalUses        int     `json:"total_uses"`
	SuccessRate      float64 `json:"success_rate"`
	PerformanceLevel string  `json:"performance_level"`
	Recommendation   string  `json:"recommendation"`
}

// Insights builds the reporting summary for a template path.
func (i *Integrator) Insights(templatePath string) PerformanceInsights {
	rate, uses := i.SuccessRate(templatePath)

	return PerformanceInsights{
		TemplateName:     filepath.Base(templatePath),
		TotalUses:        uses,
		SuccessRate:      rate,
		PerformanceLevel: categorizePerformance(rate),
		Recommendation:   recommendation(rate, uses),
	}
}

func categorizePerformance(successRate float64) string {
	switch {
	case successRate >= 0.8:
		return "Excellent"
	case successRate >= 0.6:
		return "Good"
	case successRate >= 0.4:
		return "Average"
	case successRate >= 0.2:
		return "Below Average"
	default:
		return "Poor"
	}
}

func recommendation(successRate float64, totalUses int) string {
	switch {
	case totalUses < 3:
		return "Insufficient data - needs more usage"
	case successRate >= 0.8:
		return "High performer - prioritize for similar jobs"
	case successRate >= 0.6:
		return "Good performer - use for appropriate matches"
	case successRate >= 0.4:
		return "Average - monitor performance"
	default:
		return "Low performance - consider alternatives or improvement"
	}
}
