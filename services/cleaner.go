package services

import (
	"strings"

	"tourism-reviews/models"
	"tourism-reviews/utils"
)

// Cleaner tidies scraped records before analysis.
type Cleaner struct {
	logger *utils.Logger
}

// NewCleaner creates a Cleaner with the given logger.
func NewCleaner(logger *utils.Logger) *Cleaner {
	if logger == nil {
		logger = utils.NopLogger()
	}
	return &Cleaner{logger: logger}
}

// Dedupe drops unnamed and repeated search results and stamps every kept
// business with category. Places are keyed by PlaceID, falling back to
// name and address.
func (c *Cleaner) Dedupe(businesses []models.Business, category models.Category) []models.Business {
	seen := utils.NewKeySet()
	result := make([]models.Business, 0, len(businesses))

	for _, b := range businesses {
		b.Name = utils.CollapseSpace(b.Name)
		b.Address = utils.CollapseSpace(b.Address)
		if b.Name == "" {
			c.logger.Warn("[cleaner] Dropping result with empty name: %s", b.URL)
			continue
		}

		if !seen.Add(placeKey(b)) {
			c.logger.Debug("[cleaner] Duplicate place skipped: %s", b.Name)
			continue
		}

		b.Category = string(category)
		result = append(result, b.WithReviews(b.Reviews))
	}

	c.logger.Info("[cleaner] Cleaned %d → %d businesses (%d distinct places, dropped %d)",
		len(businesses), len(result), seen.Size(), len(businesses)-len(result))
	return result
}

// AttachReviews returns a copy of b holding tidied copies of reviews.
func (c *Cleaner) AttachReviews(b models.Business, reviews []models.Review) models.Business {
	tidy := make([]models.Review, len(reviews))
	for i, r := range reviews {
		r.Author = utils.CollapseSpace(r.Author)
		r.Text = utils.CollapseSpace(r.Text)
		r.Date = utils.CollapseSpace(r.Date)
		tidy[i] = r
	}
	return b.WithReviews(tidy)
}

func placeKey(b models.Business) string {
	if b.PlaceID != "" {
		return "id:" + b.PlaceID
	}
	return "na:" + strings.ToLower(b.Name) + "|" + strings.ToLower(b.Address)
}
