package knowledge_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/sunbank-labs/vaani/pkg/service/knowledge"
)

func TestEmbeddedDataset(t *testing.T) {
	svc, err := knowledge.New()
	gt.NoError(t, err).Required()
	gt.Bool(t, len(svc.Records()) >= 5).True()
}

func TestQuery(t *testing.T) {
	svc, err := knowledge.New()
	gt.NoError(t, err).Required()
	ctx := t.Context()

	t.Run("tag match", func(t *testing.T) {
		got, err := svc.Query(ctx, "tell me about gold bonds")
		gt.NoError(t, err).Required()
		gt.Value(t, got).NotNil()
		gt.Value(t, got.ID).Equal("sovereign_gold_bond")
	})

	t.Run("title match", func(t *testing.T) {
		got, err := svc.Query(ctx, "what is a personal loan")
		gt.NoError(t, err).Required()
		gt.Value(t, got).NotNil()
		gt.Value(t, got.ID).Equal("personal_loan")
	})

	t.Run("unrelated question returns nil without error", func(t *testing.T) {
		got, err := svc.Query(ctx, "cricket match score yesterday")
		gt.NoError(t, err)
		gt.Value(t, got).Nil()
	})

	t.Run("empty question returns nil", func(t *testing.T) {
		got, err := svc.Query(ctx, "   ")
		gt.NoError(t, err)
		gt.Value(t, got).Nil()
	})
}

func TestNewFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kb.yaml")
	data := `
- id: recurring_deposit
  title: Recurring Deposit
  category: investment
  description: Monthly savings deposit with fixed returns.
  tags: [rd, monthly, savings]
`
	gt.NoError(t, os.WriteFile(path, []byte(data), 0o600)).Required()

	svc, err := knowledge.NewFromFile(path)
	gt.NoError(t, err).Required()
	gt.Array(t, svc.Records()).Length(1)

	got, err := svc.Query(t.Context(), "recurring deposit")
	gt.NoError(t, err).Required()
	gt.Value(t, got).NotNil()
	gt.Value(t, got.ID).Equal("recurring_deposit")
}

func TestNewFromFileMissing(t *testing.T) {
	_, err := knowledge.NewFromFile("/no/such/file.yaml")
	gt.Value(t, err).NotNil()
}

func TestRecordWithoutID(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	gt.NoError(t, os.WriteFile(path, []byte("- title: Nameless\n"), 0o600)).Required()

	_, err := knowledge.NewFromFile(path)
	gt.Value(t, err).NotNil()
}
