// Package loader reads order datasets from CSV files. It owns all text
// parsing and malformed-row rejection so the engine only ever sees
// validated records, and it hands the engine an already-sorted sequence
// — the book does not sort on construction.
package loader

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strconv"

	"advisorbook/internal/domain"
)

// Load reads the dataset at path. Rows are
// timestamp,product,side,price,amount; malformed rows are logged at
// warn and skipped. Returns domain.ErrEmptyDataset when no valid rows
// survive.
func Load(path string, logger *slog.Logger) ([]domain.OrderRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	records, err := Parse(f, logger)
	if err != nil {
		return nil, fmt.Errorf("dataset %s: %w", path, err)
	}
	return records, nil
}

// Parse reads order records from CSV data, skipping malformed rows.
// The returned sequence is stably sorted by timestamp so the book's
// order invariant holds regardless of file order.
func Parse(r io.Reader, logger *slog.Logger) ([]domain.OrderRecord, error) {
	if logger == nil {
		logger = slog.Default()
	}

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // field count is validated per row

	var records []domain.OrderRecord
	line := 0
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			logger.Warn("skipping unreadable row",
				slog.Int("line", line),
				slog.String("error", err.Error()),
			)
			continue
		}

		rec, err := parseRow(row)
		if err != nil {
			logger.Warn("skipping bad row",
				slog.Int("line", line),
				slog.String("error", err.Error()),
			)
			continue
		}
		records = append(records, rec)
	}

	if len(records) == 0 {
		return nil, domain.ErrEmptyDataset
	}

	slices.SortStableFunc(records, domain.CompareByTimestamp)
	return records, nil
}

func parseRow(fields []string) (domain.OrderRecord, error) {
	if len(fields) != 5 {
		return domain.OrderRecord{}, fmt.Errorf("expected 5 fields, got %d", len(fields))
	}
	if fields[0] == "" || fields[1] == "" {
		return domain.OrderRecord{}, fmt.Errorf("empty timestamp or product")
	}

	side := domain.SideFromString(fields[2])
	if side == domain.SideUnknown {
		return domain.OrderRecord{}, fmt.Errorf("unknown side %q", fields[2])
	}

	price, err := strconv.ParseFloat(fields[3], 64)
	if err != nil {
		return domain.OrderRecord{}, fmt.Errorf("bad price %q", fields[3])
	}
	if price < 0 {
		return domain.OrderRecord{}, fmt.Errorf("negative price %q", fields[3])
	}

	amount, err := strconv.ParseFloat(fields[4], 64)
	if err != nil {
		return domain.OrderRecord{}, fmt.Errorf("bad amount %q", fields[4])
	}
	if amount < 0 {
		return domain.OrderRecord{}, fmt.Errorf("negative amount %q", fields[4])
	}

	// Dataset orders carry no origin tag; only simulated orders do.
	return domain.OrderRecord{
		Timestamp: fields[0],
		Product:   fields[1],
		Side:      side,
		Price:     price,
		Amount:    amount,
	}, nil
}
