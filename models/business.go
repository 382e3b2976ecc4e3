package models

// Review is a single customer review extracted from a place page.
// BusinessName, BusinessAddress and Category are left empty by the scraper
// and filled in when the review set is attached to its Business.
type Review struct {
	ID              string  `json:"id"`
	Author          string  `json:"author"`
	Rating          float64 `json:"rating"`
	Text            string  `json:"text"`
	Date            string  `json:"date"`
	Likes           int     `json:"likes"`
	BusinessName    string  `json:"businessName"`
	BusinessAddress string  `json:"businessAddress"`
	Category        string  `json:"category"`
}

// Business is a listing found by search or by direct URL lookup.
// TotalReviews is the count reported by the source page and may differ
// from len(Reviews).
type Business struct {
	Name         string   `json:"name"`
	Address      string   `json:"address"`
	Category     string   `json:"category"`
	Rating       float64  `json:"rating"`
	TotalReviews int      `json:"totalReviews"`
	Reviews      []Review `json:"reviews"`
	URL          string   `json:"url,omitempty"`
	PlaceID      string   `json:"placeId,omitempty"`
}

// WithReviews returns a copy of b owning its own copy of reviews, with the
// back-references of every review pointing at b. The receiver is not modified.
func (b Business) WithReviews(reviews []Review) Business {
	owned := make([]Review, len(reviews))
	for i, r := range reviews {
		r.BusinessName = b.Name
		r.BusinessAddress = b.Address
		r.Category = b.Category
		owned[i] = r
	}
	b.Reviews = owned
	return b
}

// BusinessAnalysis is the heuristic summary of one Business.
type BusinessAnalysis struct {
	Strengths       []string `json:"strengths"`
	Weaknesses      []string `json:"weaknesses"`
	Recommendations []string `json:"recommendations"`
	Summary         string   `json:"summary"`
	OverallScore    float64  `json:"overallScore"`
}

// CategoryAnalysis summarises a set of businesses of one category.
// AverageRating is a mean of per-business means, so every business weighs
// the same regardless of how many reviews it has.
type CategoryAnalysis struct {
	AverageRating          float64  `json:"averageRating"`
	TotalReviews           int      `json:"totalReviews"`
	TopStrengths           []string `json:"topStrengths"`
	TopWeaknesses          []string `json:"topWeaknesses"`
	GeneralRecommendations []string `json:"generalRecommendations"`
	BusinessCount          int      `json:"businessCount"`
}
