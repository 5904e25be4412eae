package report

import (
	"context"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/varoOP/bandpix/internal/domain"
	"gopkg.in/yaml.v3"
)

// Report is the YAML summary written after a batch run.
type Report struct {
	GeneratedAt string  `yaml:"generatedAt"`
	Resolved    []Entry `yaml:"resolved"`
	Missing     []Entry `yaml:"missing"`
}

// Entry is one band's outcome in the report.
type Entry struct {
	Name        string `yaml:"name"`
	Year        int    `yaml:"year,omitempty"`
	ImageURL    string `yaml:"imageUrl,omitempty"`
	FilePageURL string `yaml:"filePageUrl,omitempty"`
	Credit      string `yaml:"credit,omitempty"`
	LicenseName string `yaml:"licenseName,omitempty"`
	FileName    string `yaml:"fileName,omitempty"`
}

// Service writes resolution reports.
type Service interface {
	Write(ctx context.Context, path string, entries []*domain.CacheEntry) error
}

type service struct {
	log zerolog.Logger
}

// NewService creates a report writer.
func NewService(log zerolog.Logger) Service {
	return &service{
		log: log.With().Str("module", "report").Logger(),
	}
}

// Write stores a YAML report for the given resolution results, resolved and
// missing sections each sorted by name. Nil results (failed entities when
// the run continues on error) are skipped.
func (s *service) Write(ctx context.Context, path string, entries []*domain.CacheEntry) error {
	rep := Report{GeneratedAt: time.Now().UTC().Format(time.RFC3339)}

	for _, e := range entries {
		if e == nil {
			continue
		}
		re := Entry{
			Name:     e.Name,
			Year:     e.Year,
			FileName: e.FileName,
		}
		if e.Missing {
			rep.Missing = append(rep.Missing, re)
			continue
		}
		re.ImageURL = e.ImageURL
		re.FilePageURL = e.FilePageURL
		re.Credit = e.Credit
		re.LicenseName = e.LicenseName
		rep.Resolved = append(rep.Resolved, re)
	}

	sort.Slice(rep.Resolved, func(i, j int) bool { return rep.Resolved[i].Name < rep.Resolved[j].Name })
	sort.Slice(rep.Missing, func(i, j int) bool { return rep.Missing[i].Name < rep.Missing[j].Name })

	out, err := yaml.Marshal(&rep)
	if err != nil {
		return errors.Wrap(err, "failed to marshal report")
	}

	if err := os.WriteFile(path, out, 0644); err != nil {
		return fmt.Errorf("failed to write report %s: %w", path, err)
	}

	s.log.Info().Str("path", path).Int("resolved", len(rep.Resolved)).Int("missing", len(rep.Missing)).Msg("Wrote resolution report")
	return nil
}
