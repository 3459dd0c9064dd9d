// Package fitscore mines prior run logs for the fit scores recorded when
// templates were originally generated, and turns them into ranking boosts.
package fitscore

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// NoPriorFitData is the reason returned when no logged fit score exists for
// a template. Cold start is not an error.
const NoPriorFitData = "No prior fit data"

// maxLogFiles bounds how many log files are searched per lookup, newest
// first. Older logs rarely mention templates still worth reusing.
const maxLogFiles = 10

// usage aggregates how often a template shows up in run logs and how often
// those mentions indicate a completed run.
type usage struct {
	successRate float64
	totalUses   int
}

// Integrator reads the append-only run logs produced by earlier document
// generation runs. It never writes; the logs belong to the generator.
type Integrator struct {
	logsDir string
	logger  *zap.Logger

	fitCache   map[string]*float64
	usageCache map[string]usage
}

// NewIntegrator returns an Integrator over the given logs directory.
func NewIntegrator(logsDir string, logger *zap.Logger) *Integrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Integrator{
		logsDir:    logsDir,
		logger:     logger,
		fitCache:   map[string]*float64{},
		usageCache: map[string]usage{},
	}
}

// Boost converts a template's originally logged fit score into a bounded
// score adjustment. High original performers are promoted, poor ones
// slightly penalized; templates without prior data get exactly zero with
// the NoPriorFitData reason.
func (i *Integrator) Boost(templatePath string) (float64, string) {
	fit, ok := i.fitScore(templatePath)
	if !ok {
		return 0.0, NoPriorFitData
	}

	switch {
	case fit >= 0.8:
		return 0.15, fmt.Sprintf("Originally high performer (%.2f)", fit)
	case fit >= 0.6:
		return 0.08, fmt.Sprintf("Originally good performer (%.2f)", fit)
	case fit >= 0.4:
		return 0.0, fmt.Sprintf("Originally average performer (%.2f)", fit)
	default:
		return -0.1, fmt.Sprintf("Originally low performer (%.2f)", fit)
	}
}

// SuccessRate reports how often the template's logged runs completed
// successfully and how many uses were found. Reporting only; it feeds no
// score.
func (i *Integrator) SuccessRate(templatePath string) (float64, int) {
	name := filepath.Base(templatePath)
	if cached, ok := i.usageCache[name]; ok {
		return cached.successRate, cached.totalUses
	}

	u := i.analyzeUsage(name)
	i.usageCache[name] = u
	return u.successRate, u.totalUses
}

// fitScore finds the highest fit score logged for the template, memoized
// including negative results.
func (i *Integrator) fitScore(templatePath string) (float64, bool) {
	name := filepath.Base(templatePath)
	if cached, ok := i.fitCache[name]; ok {
		if cached == nil {
			return 0, false
		}
		return *cached, true
	}

	score, found := i.searchLogs(name)
	if found {
		i.fitCache[name] = &score
	} else {
		i.fitCache[name] = nil
	}
	return score, found
}

// searchLogs scans the newest log files for fit-score lines that mention the
// template by name and returns the highest score found.
func (i *Integrator) searchLogs(templateName string) (float64, bool) {
	files := i.logFiles()
	if len(files) > maxLogFiles {
		files = files[:maxLogFiles]
	}

	escaped := regexp.QuoteMeta(templateName)
	patterns := []*regexp.Regexp{
		regexp.MustCompile(`(?i)final fit score: (\d+\.\d+).*?` + escaped),
		regexp.MustCompile(`(?i)fit_score.*?: (\d+\.\d+).*?` + escaped),
		regexp.MustCompile(`(?i)template.*?: ` + escaped + `.*?fit.*?: (\d+\.\d+)`),
	}

	best := 0.0
	found := false

	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			i.logger.Debug("failed to read run log", zap.String("file", file), zap.Error(err))
			continue
		}
		content := string(data)

		for _, pattern := range patterns {
			for _, m := range pattern.FindAllStringSubmatch(content, -1) {
				if score, err := strconv.ParseFloat(m[1], 64); err == nil {
					if !found || score > best {
						best = score
						found = true
					}
				}
			}
		}
	}

	return best, found
}

// analyzeUsage counts template mentions and success indicators across all
// run logs.
func (i *Integrator) analyzeUsage(templateName string) usage {
	escaped := regexp.QuoteMeta(templateName)
	usagePattern := regexp.MustCompile(`(?i)template.*?: ` + escaped)
	successPattern := regexp.MustCompile(`(?i)(success|completed).*?:.*?` + escaped)

	totalUses := 0
	successCount := 0

	for _, file := range i.logFiles() {
		data, err := os.ReadFile(file)
		if err != nil {
			continue
		}
		content := string(data)

		uses := len(usagePattern.FindAllString(content, -1))
		if uses == 0 {
			continue
		}
		totalUses += uses
		successCount += len(successPattern.FindAllString(content, -1))
	}

	rate := 0.0
	if totalUses > 0 {
		rate = float64(successCount) / float64(totalUses)
		if rate > 1.0 {
			rate = 1.0
		}
	}

	return usage{successRate: rate, totalUses: totalUses}
}

// logFiles lists *.log and *.txt files under the logs directory, newest
// first. A missing directory yields an empty list.
func (i *Integrator) logFiles() []string {
	entries, err := os.ReadDir(i.logsDir)
	if err != nil {
		return nil
	}

	type logFile struct {
		path    string
		modTime int64
	}
	files := make([]logFile, 0, len(entries))

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext != ".log" && ext != ".txt" {
			continue
		}
		lf := logFile{path: filepath.Join(i.logsDir, entry.Name())}
		if info, err := entry.Info(); err == nil {
			lf.modTime = info.ModTime().UnixNano()
		}
		files = append(files, lf)
	}

	sort.Slice(files, func(a, b int) bool { return files[a].modTime > files[b].modTime })

	paths := make([]string, len(files))
	for idx, f := range files {
		paths[idx] = f.path
	}
	return paths
}
