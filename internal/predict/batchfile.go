package predict

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/nao1215/housepred/internal/model"
)

// Batch file errors.
var (
	ErrEmptyBatch       = errors.New("batch file contains no rows")
	ErrDuplicateFeature = errors.New("feature given more than once")
)

// batchFile is the YAML layout of a batch input file:
//
//	rows:
//	  - label: riverside
//	    features:
//	      CRIM: 0.00632
//	      RM: 6.575
type batchFile struct {
	Rows []batchFileRow `yaml:"rows"`
}

type batchFileRow struct {
	Label    string            `yaml:"label"`
	Features map[string]string `yaml:"features"`
}

// LoadBatchFile reads batch rows from a YAML file. Feature keys may be wire
// names ("PTRATIO") or flag names ("ptratio"); unknown keys and two keys
// naming the same feature are errors.
// Values are kept as raw text and parsed leniently at submission time.
func LoadBatchFile(path string) ([]BatchRow, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided input path is intentional
	if err != nil {
		return nil, fmt.Errorf("failed to read batch file: %w", err)
	}
	return ParseBatch(data)
}

// ParseBatch decodes batch rows from YAML data.
func ParseBatch(data []byte) ([]BatchRow, error) {
	var bf batchFile
	if err := yaml.Unmarshal(data, &bf); err != nil {
		return nil, fmt.Errorf("failed to parse batch file: %w", err)
	}
	if len(bf.Rows) == 0 {
		return nil, ErrEmptyBatch
	}

	rows := make([]BatchRow, 0, len(bf.Rows))
	for i, r := range bf.Rows {
		fields := make(model.RawFields, len(r.Features))
		for name, value := range r.Features {
			f, ok := model.ParseFeature(name)
			if !ok {
				return nil, fmt.Errorf("row %d: unknown feature %q", i+1, name)
			}
			if _, dup := fields[f]; dup {
				return nil, fmt.Errorf("row %d: %w: %s", i+1, ErrDuplicateFeature, f)
			}
			fields[f] = value
		}
		label := r.Label
		if label == "" {
			label = fmt.Sprintf("row %d", i+1)
		}
		rows = append(rows, BatchRow{Label: label, Fields: fields})
	}
	return rows, nil
}
