package balanceloader

import (
	"context"
	"fmt"
	"os"
	"strings"

	"balance_ranker/internal/app/port"
	"balance_ranker/internal/domain/entity"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

const fileSourceName = "file"

type fileRecord struct {
	Chain    string `yaml:"chain"`
	Currency string `yaml:"currency"`
	Amount   string `yaml:"amount"`
}

type fileDocument struct {
	Balances []fileRecord `yaml:"balances"`
}

// FileLoader implements port.BalanceSource by reading a YAML balance list.
// The file is re-read on every call so edits show up without a restart.
type FileLoader struct {
	filePath string
	logger   port.Logger
}

// NewFileLoader creates a FileLoader for filePath.
func NewFileLoader(filePath string, logger port.Logger) *FileLoader {
	return &FileLoader{filePath: filePath, logger: logger}
}

func (l *FileLoader) Name() string { return fileSourceName }

// Balances reads the file. Entries that cannot be parsed are skipped and reported.
func (l *FileLoader) Balances(_ context.Context) ([]entity.Balance, []entity.SourceError, error) {
	data, err := os.ReadFile(l.filePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read balance file %s: %w", l.filePath, err)
	}

	var doc fileDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, nil, fmt.Errorf("failed to unmarshal balance file %s: %w", l.filePath, err)
	}

	balances := make([]entity.Balance, 0, len(doc.Balances))
	var problems []entity.SourceError
	for i, rec := range doc.Balances {
		chain := strings.TrimSpace(rec.Chain)
		currency := strings.TrimSpace(rec.Currency)
		if chain == "" || currency == "" {
			problems = append(problems, l.problem(chain, fmt.Sprintf("entry %d: chain and currency are required", i)))
			continue
		}
		amount, err := decimal.NewFromString(strings.TrimSpace(rec.Amount))
		if err != nil {
			problems = append(problems, l.problem(chain, fmt.Sprintf("entry %d: invalid amount %q: %v", i, rec.Amount, err)))
			continue
		}
		balances = append(balances, entity.Balance{Chain: chain, Currency: currency, Amount: amount})
	}

	for _, p := range problems {
		l.logger.Warn("Skipping invalid balance entry", "file", l.filePath, "chain", p.Chain, "reason", p.Message)
	}
	l.logger.Info("Balances loaded from file", "count", len(balances), "path", l.filePath)
	return balances, problems, nil
}

func (l *FileLoader) problem(chain, msg string) entity.SourceError {
	return entity.SourceError{Source: fileSourceName, Chain: chain, Message: msg}
}
