package export

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/rotisserie/eris"

	"tourism-reviews/models"
)

var csvHeader = []string{
	"business", "address", "category", "place_id",
	"review_id", "author", "rating", "date", "likes", "text",
}

// CSVWriter writes one row per review, carrying its business columns.
// It is safe for concurrent use.
type CSVWriter struct {
	mu     sync.Mutex
	file   *os.File
	writer *csv.Writer
}

// NewCSVWriter creates (or truncates) the CSV file at the given path and
// writes the header row. Intermediate directories are created automatically.
func NewCSVWriter(path string) (*CSVWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, eris.Wrap(err, "csv: create output dir")
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, eris.Wrapf(err, "csv: create file %q", path)
	}

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		_ = f.Close()
		return nil, eris.Wrap(err, "csv: write header")
	}
	w.Flush()

	return &CSVWriter{file: f, writer: w}, nil
}

// WriteBusinesses appends the reviews of every business. Businesses without
// reviews produce no rows.
func (c *CSVWriter) WriteBusinesses(businesses []models.Business) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, b := range businesses {
		for _, r := range b.Reviews {
			row := []string{
				b.Name,
				b.Address,
				b.Category,
				b.PlaceID,
				r.ID,
				r.Author,
				strconv.FormatFloat(r.Rating, 'f', -1, 64),
				r.Date,
				strconv.Itoa(r.Likes),
				r.Text,
			}
			if err := c.writer.Write(row); err != nil {
				return eris.Wrap(err, "csv: write row")
			}
		}
	}

	c.writer.Flush()
	return c.writer.Error()
}

// Close flushes and closes the underlying file.
func (c *CSVWriter) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.writer.Flush()
	return c.file.Close()
}
