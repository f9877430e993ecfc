package knowledge

import (
	"context"
	_ "embed"
	"os"
	"regexp"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/sunbank-labs/vaani/pkg/domain/interfaces"
	"github.com/sunbank-labs/vaani/pkg/domain/model"
	"gopkg.in/yaml.v3"
)

//go:embed data/finance.yaml
var defaultDataset []byte

// matchThreshold is the minimum overlap score (0..100) for a record to be
// returned at all. Below it the assistant says it found nothing rather than
// guessing.
const matchThreshold = 55.0

// Service answers loan and investment questions from a curated YAML dataset.
// Matching is lexical; records carry tags to widen the match surface.
type Service struct {
	records []*model.Knowledge
}

var _ interfaces.KnowledgeQuerier = (*Service)(nil)

// New loads the embedded dataset
func New() (*Service, error) {
	return load(defaultDataset)
}

// NewFromFile loads a dataset from path, replacing the embedded one
func NewFromFile(path string) (*Service, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read knowledge dataset", goerr.V("path", path))
	}
	return load(raw)
}

func load(raw []byte) (*Service, error) {
	var records []*model.Knowledge
	if err := yaml.Unmarshal(raw, &records); err != nil {
		return nil, goerr.Wrap(err, "failed to parse knowledge dataset")
	}
	for i, record := range records {
		if record.ID == "" {
			return nil, goerr.New("knowledge record has no id", goerr.V("index", i))
		}
	}
	return &Service{records: records}, nil
}

// Records returns the loaded dataset, used by the evaluate command
func (s *Service) Records() []*model.Knowledge {
	return s.records
}

var wordRe = regexp.MustCompile(`[a-z0-9]+`)

// stopwords are question scaffolding that carries no product signal
var stopwords = map[string]struct{}{
	"a": {}, "an": {}, "the": {}, "is": {}, "are": {}, "what": {}, "whats": {},
	"tell": {}, "me": {}, "about": {}, "my": {}, "i": {}, "want": {}, "to": {},
	"know": {}, "for": {}, "of": {}, "on": {}, "in": {}, "do": {}, "you": {},
	"have": {}, "can": {}, "get": {}, "how": {}, "much": {},
}

func terms(text string) map[string]struct{} {
	out := map[string]struct{}{}
	for _, w := range wordRe.FindAllString(strings.ToLower(text), -1) {
		if _, skip := stopwords[w]; skip {
			continue
		}
		out[w] = struct{}{}
	}
	return out
}

// score rates how well the question terms cover the record's searchable
// terms, scaled to 0..100. Coverage of the question drives the score so a
// short focused question ("gold bonds") ranks the right record highly even
// though the record text is much longer.
func score(question, record map[string]struct{}) float64 {
	if len(question) == 0 || len(record) == 0 {
		return 0
	}
	hits := 0
	for w := range question {
		if _, ok := record[w]; ok {
			hits++
		}
	}
	return 100 * float64(hits) / float64(len(question))
}

func searchTerms(record *model.Knowledge) map[string]struct{} {
	parts := []string{record.Title, record.Category, record.Description}
	parts = append(parts, record.Tags...)
	return terms(strings.Join(parts, " "))
}

// Query returns the best matching record or nil when nothing clears the
// threshold. "Not found" is not an error; only a broken dataset would be.
func (s *Service) Query(ctx context.Context, question string) (*model.Knowledge, error) {
	questionTerms := terms(question)
	if len(questionTerms) == 0 {
		return nil, nil
	}

	var best *model.Knowledge
	bestScore := 0.0
	for _, record := range s.records {
		if sc := score(questionTerms, searchTerms(record)); sc > bestScore {
			best = record
			bestScore = sc
		}
	}
	if bestScore < matchThreshold {
		return nil, nil
	}
	return best, nil
}
