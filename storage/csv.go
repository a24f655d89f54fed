package storage

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"strconv"
)

// ErrCannotLoad is the uniform failure condition of every loader in this
// package: missing file, unreadable content, or missing expected entries.
var ErrCannotLoad = errors.New("storage: cannot load")

// LoadTimeSeriesCSV reads one column of a comma-separated file as a float
// time series. With skipHeader the first row is dropped. An empty file or a
// column index outside the row width fails.
func LoadTimeSeriesCSV(path string, column int, skipHeader bool) ([]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: time series %s: %v", ErrCannotLoad, path, err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: time series %s: %v", ErrCannotLoad, path, err)
	}
	if skipHeader && len(records) > 0 {
		records = records[1:]
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: time series %s: file is empty", ErrCannotLoad, path)
	}

	signal := make([]float64, len(records))
	for i, row := range records {
		if column < 0 || column >= len(row) {
			return nil, fmt.Errorf("%w: time series %s: column %d out of range, row %d has %d columns",
				ErrCannotLoad, path, column, i, len(row))
		}
		v, err := strconv.ParseFloat(row[column], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: time series %s: row %d: %v", ErrCannotLoad, path, i, err)
		}
		signal[i] = v
	}
	return signal, nil
}
