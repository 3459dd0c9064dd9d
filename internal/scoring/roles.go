// Package scoring computes the deterministic, rule-based fit score between a
// job record and a template candidate.
package scoring

import "strings"

// titleRoles maps job-title phrases to template role codes, checked in order
// so the most specific phrase wins.
var titleRoles = []struct {
	phrase string
	code   string
}{
	{"product analyst", "PA"},
	{"data analyst", "DA"},
	{"product manager", "PM"},
	{"product owner", "PO"},
	{"project manager", "PJM"},
	{"business analyst", "BA"},
	{"operations manager", "OM"},
}

// profileRoles maps profile types to the role codes considered aliases of
// that profile.
var profileRoles = map[string][]string{
	"product_analyst":    {"PA"},
	"data_analyst":       {"DA"},
	"product_management": {"PM", "PO", "PA"},
	"product_manager":    {"PM"},
	"product_owner":      {"PO"},
	"project_manager":    {"PJM"},
	"business_analyst":   {"BA"},
	"operations_manager": {"OM"},
}

// RoleUnknown is returned when no role phrase matches a job title.
const RoleUnknown = "UNKNOWN"

// InferRoleCode extracts the template role code implied by a job title, or
// RoleUnknown when no known phrase appears.
func InferRoleCode(jobTitle string) string {
	title := strings.ToLower(jobTitle)
	for _, tr := range titleRoles {
		if strings.Contains(title, tr.phrase) {
			return tr.code
		}
	}
	return RoleUnknown
}
