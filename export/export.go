// Package export hands finished reports to people and other tools: CSV rows,
// JSON documents, an HTML chart and a console summary.
package export

import (
	"tourism-reviews/models"
)

// ReviewWriter is the interface any review sink must satisfy.
type ReviewWriter interface {
	WriteBusinesses(businesses []models.Business) error
	Close() error
}

var _ ReviewWriter = (*CSVWriter)(nil)
