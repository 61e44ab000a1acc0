package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"
)

// ReadCSV parses launch records from r. origin is used in error messages.
// Header names are matched case-insensitively after trimming; unmapped
// columns are ignored.
func ReadCSV(r io.Reader, cols Columns, origin string) ([]Record, error) {
	cols = cols.withDefaults()

	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	headers, err := reader.Read()
	if err == io.EOF {
		return nil, loadErr(origin, 1, fmt.Errorf("%w: no header row", ErrMalformed))
	}
	if err != nil {
		return nil, loadErr(origin, 1, fmt.Errorf("%w: %v", ErrMalformed, err))
	}

	idx, err := columnIndex(headers, cols)
	if err != nil {
		return nil, loadErr(origin, 1, err)
	}

	var records []Record
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			line := 0
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				line = perr.Line
			}
			return nil, loadErr(origin, line, fmt.Errorf("%w: %v", ErrMalformed, err))
		}
		line, _ := reader.FieldPos(0)

		rec, err := parseRow(row, idx, cols)
		if err != nil {
			return nil, loadErr(origin, line, err)
		}
		records = append(records, rec)
	}

	return records, nil
}

func readCSVFile(path string, cols Columns) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, loadErr(path, 0, ErrNotFound)
		}
		return nil, loadErr(path, 0, err)
	}
	defer func() { _ = f.Close() }()

	return ReadCSV(f, cols, path)
}

type fieldIndex struct {
	site, payload, outcome, booster int
}

func columnIndex(headers []string, cols Columns) (fieldIndex, error) {
	find := func(name string) int {
		for i, h := range headers {
			h = strings.TrimPrefix(h, "\ufeff")
			if strings.EqualFold(strings.TrimSpace(h), name) {
				return i
			}
		}
		return -1
	}

	idx := fieldIndex{
		site:    find(cols.Site),
		payload: find(cols.Payload),
		outcome: find(cols.Outcome),
		booster: find(cols.Booster),
	}

	var missing []string
	for _, c := range []struct {
		name string
		at   int
	}{
		{cols.Site, idx.site},
		{cols.Payload, idx.payload},
		{cols.Outcome, idx.outcome},
		{cols.Booster, idx.booster},
	} {
		if c.at < 0 {
			missing = append(missing, strconv.Quote(c.name))
		}
	}
	if len(missing) > 0 {
		return idx, fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(missing, ", "))
	}
	return idx, nil
}

func parseRow(row []string, idx fieldIndex, cols Columns) (Record, error) {
	field := func(i int) string {
		return strings.TrimSpace(row[i])
	}

	payload, err := strconv.ParseFloat(field(idx.payload), 64)
	if err != nil {
		return Record{}, fmt.Errorf("%w: %s %q is not a number", ErrMalformed, cols.Payload, field(idx.payload))
	}

	outcome, err := parseOutcome(field(idx.outcome))
	if err != nil {
		return Record{}, fmt.Errorf("%s: %w", cols.Outcome, err)
	}

	return Record{
		Site:           field(idx.site),
		PayloadMass:    payload,
		Outcome:        outcome,
		BoosterVersion: field(idx.booster),
	}, nil
}

// parseOutcome accepts "0", "1" and their float spellings ("1.0").
func parseOutcome(s string) (int, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidOutcome, s)
	}
	switch f {
	case 0:
		return OutcomeFailure, nil
	case 1:
		return OutcomeSuccess, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidOutcome, s)
	}
}
