package predict

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nao1215/housepred/internal/model"
)

func TestParseBatch(t *testing.T) {
	t.Parallel()

	t.Run("reads rows with wire and flag names", func(t *testing.T) {
		t.Parallel()

		data := []byte(`
rows:
  - label: riverside
    features:
      CRIM: 0.00632
      rm: "6.575"
      ptratio: 15.3
  - features:
      LSTAT: abc
`)
		rows, err := ParseBatch(data)
		if err != nil {
			t.Fatalf("ParseBatch: %v", err)
		}
		if len(rows) != 2 {
			t.Fatalf("expected 2 rows, got %d", len(rows))
		}
		if rows[0].Label != "riverside" || rows[1].Label != "row 2" {
			t.Errorf("labels = %q, %q", rows[0].Label, rows[1].Label)
		}
		if rows[0].Fields[model.FeatureCRIM] != "0.00632" {
			t.Errorf("CRIM raw = %q", rows[0].Fields[model.FeatureCRIM])
		}
		if rows[0].Fields[model.FeatureRM] != "6.575" || rows[0].Fields[model.FeaturePTRATIO] != "15.3" {
			t.Errorf("unexpected fields %v", rows[0].Fields)
		}
		if v := ParseFeatures(rows[1].Fields); v.LSTAT != 0 {
			t.Errorf("invalid value should parse as 0, got %v", v.LSTAT)
		}
	})

	t.Run("unknown feature is an error", func(t *testing.T) {
		t.Parallel()

		_, err := ParseBatch([]byte("rows:\n  - features:\n      PRICE: 1\n"))
		if err == nil {
			t.Fatal("expected error")
		}
	})

	t.Run("same feature under two names is an error", func(t *testing.T) {
		t.Parallel()

		for _, doc := range []string{
			"rows:\n  - features:\n      RM: 6\n  - features:\n      CRIM: 1\n      crim: 2\n",
			"rows:\n  - features:\n      RM: 6\n  - features:\n      Age: 1\n      AGE: 1\n",
		} {
			_, err := ParseBatch([]byte(doc))
			if !errors.Is(err, ErrDuplicateFeature) {
				t.Fatalf("expected ErrDuplicateFeature, got %v", err)
			}
			if !strings.Contains(err.Error(), "row 2") {
				t.Errorf("error should name the row: %v", err)
			}
		}
	})

	t.Run("empty file", func(t *testing.T) {
		t.Parallel()

		_, err := ParseBatch([]byte("rows: []\n"))
		if !errors.Is(err, ErrEmptyBatch) {
			t.Errorf("expected ErrEmptyBatch, got %v", err)
		}
	})

	t.Run("invalid yaml", func(t *testing.T) {
		t.Parallel()

		if _, err := ParseBatch([]byte("rows: [\n")); err == nil {
			t.Error("expected error")
		}
	})
}

func TestLoadBatchFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "rows.yaml")
	if err := os.WriteFile(path, []byte("rows:\n  - features:\n      RM: 6\n"), 0600); err != nil {
		t.Fatal(err)
	}

	rows, err := LoadBatchFile(path)
	if err != nil {
		t.Fatalf("LoadBatchFile: %v", err)
	}
	if len(rows) != 1 || rows[0].Fields[model.FeatureRM] != "6" {
		t.Errorf("unexpected rows %+v", rows)
	}

	if _, err := LoadBatchFile(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
