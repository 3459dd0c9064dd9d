// Package types provides type definitions for structured data used throughout the template-pilot system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "strings"

// JobRecord is the canonical job representation consumed by every internal
// component. The ingestion collaborator is responsible for producing it;
// nothing downstream reads raw job payloads.
type JobRecord struct {
	JobID           string   `json:"job_id" validate:"required"`
	Title           string   `json:"title" validate:"required"`
	Company         string   `json:"company,omitempty"`
	Skills          []string `json:"skills,omitempty"`
	Software        []string `json:"software,omitempty"`
	Seniority       string   `json:"seniority,omitempty"`
	ExperienceYears int      `json:"experience_years,omitempty" validate:"gte=0"`
	ProfileType     string   `json:"profile_type,omitempty"`
}

// TitleLower returns the job title lowercased for keyword matching.
func (j *JobRecord) TitleLower() string {
	return strings.ToLower(j.Title)
}

// RequiredTools returns the union of required skills and software,
// lowercased and deduplicated.
func (j *JobRecord) RequiredTools() map[string]bool {
	tools := make(map[string]bool, len(j.Skills)+len(j.Software))
	for _, s := range j.Skills {
		if t := strings.ToLower(strings.TrimSpace(s)); t != "" {
			tools[t] = true
		}
	}
	for _, s := range j.Software {
		if t := strings.ToLower(strings.TrimSpace(s)); t != "" {
			tools[t] = true
		}
	}
	return tools
}
