// Package scanning discovers previously generated documents under the output
// root and parses them into template candidates.
package scanning

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/jonathan/template-pilot/internal/types"
	"go.uber.org/zap"
)

// documentPattern matches generated document names of the form
// {Prefix}_{ROLE}_{SPEC}_{MODEL}_{YEAR}.{ext}, e.g.
// PedroHerrera_PA_ANAL_B2C_2025.docx. Anything else is skipped.
var documentPattern = regexp.MustCompile(`^[A-Za-z]+_([A-Z]+)_([A-Z]+)_([A-Z0-9]+)_(\d{4})\.(docx|html|md|txt)$`)

// Scanner enumerates candidate templates under a single output root.
// Scanning is read-only and rebuilds the candidate set from scratch on every
// call; nothing discovered here is persisted.
type Scanner struct {
	outputRoot string
	logger     *zap.Logger
}

// NewScanner returns a Scanner rooted at outputRoot.
func NewScanner(outputRoot string, logger *zap.Logger) *Scanner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scanner{outputRoot: outputRoot, logger: logger}
}

// Scan walks the output root and returns all documents matching the naming
// convention. An unreadable root yields an empty slice and a warning, never
// an error: having no templates is a valid state for the caller.
func (s *Scanner) Scan() []types.TemplateCandidate {
	candidates := []types.TemplateCandidate{}

	entries, err := os.ReadDir(s.outputRoot)
	if err != nil {
		s.logger.Warn("output root not readable, no candidates",
			zap.String("output_root", s.outputRoot),
			zap.Error(err))
		return candidates
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		folder := entry.Name()
		folderPath := filepath.Join(s.outputRoot, folder)

		files, err := os.ReadDir(folderPath)
		if err != nil {
			s.logger.Warn("skipping unreadable folder",
				zap.String("folder", folderPath),
				zap.Error(err))
			continue
		}

		tools := ToolsFromFolderName(folder)

		for _, file := range files {
			if file.IsDir() {
				continue
			}

			m := documentPattern.FindStringSubmatch(file.Name())
			if m == nil {
				continue
			}

			candidate := types.TemplateCandidate{
				FilePath:       filepath.Join(folderPath, file.Name()),
				FolderName:     folder,
				Role:           m[1],
				Specialization: m[2],
				BusinessModel:  m[3],
				Year:           m[4],
				Tools:          tools,
			}

			// Missing timestamps degrade the recency sub-score to zero
			// instead of excluding the candidate.
			if info, err := file.Info(); err == nil {
				candidate.ModTime = info.ModTime()
			} else {
				s.logger.Debug("no modification time for candidate",
					zap.String("file", candidate.FilePath),
					zap.Error(err))
			}

			candidates = append(candidates, candidate)
		}
	}

	s.logger.Info("scanned output root",
		zap.String("output_root", s.outputRoot),
		zap.Int("candidates", len(candidates)))

	return candidates
}

// ToolsFromFolderName extracts the tool list from a descriptive folder name
// like "Product Analyst - Analytics - Python, SQL, Tableau". The trailing
// segment is comma-separated; folders without one yield an empty list.
func ToolsFromFolderName(folderName string) []string {
	parts := strings.Split(folderName, " - ")
	if len(parts) < 3 {
		return []string{}
	}

	raw := strings.Split(parts[2], ",")
	tools := make([]string, 0, len(raw))
	for _, tool := range raw {
		if t := strings.TrimSpace(tool); t != "" {
			tools = append(tools, t)
		}
	}
	return tools
}
