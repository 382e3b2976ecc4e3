package services

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rotisserie/eris"
	"golang.org/x/text/unicode/norm"

	"tourism-reviews/config"
	"tourism-reviews/models"
	"tourism-reviews/utils"
)

var (
	// ErrNoReviews is returned when there is nothing to average.
	ErrNoReviews = eris.New("analyzer: no reviews to analyze")
	// ErrNoBusinesses is returned by AnalyzeCategory for an empty list.
	ErrNoBusinesses = eris.New("analyzer: no businesses to analyze")
)

const (
	maxThemes = 5

	strengthExcellent    = "Excelente calificación general"
	strengthGood         = "Buena calificación general"
	weaknessLowScore     = "Calificación general por debajo del promedio"
	recommendLowScore    = "Revisar y mejorar la experiencia del cliente"
	strengthPositive     = "Comentarios positivos predominantes"
	weaknessNegative     = "Comentarios negativos predominantes"
	recommendNegative    = "Analizar y abordar los problemas mencionados en los comentarios negativos"
	summaryFormat        = "Análisis basado en %d reseñas con una calificación promedio de %.1f"
	recommendWeakTheme   = "Enfocarse en mejorar los aspectos mencionados en %s"
	recommendStrongTheme = "Mantener y potenciar los aspectos positivos como %s"
)

// Analyzer derives heuristic summaries from review ratings and keyword
// polarity. It never mutates its inputs.
type Analyzer struct {
	positive []string
	negative []string
	logger   *utils.Logger
}

// NewAnalyzer builds an Analyzer over the given keyword lists.
func NewAnalyzer(kw config.Keywords, logger *utils.Logger) *Analyzer {
	if logger == nil {
		logger = utils.NopLogger()
	}
	return &Analyzer{
		positive: normaliseWords(kw.Positive),
		negative: normaliseWords(kw.Negative),
		logger:   logger,
	}
}

// AnalyzeBusiness scores one business from its attached reviews.
func (a *Analyzer) AnalyzeBusiness(b models.Business) (*models.BusinessAnalysis, error) {
	if len(b.Reviews) == 0 {
		return nil, ErrNoReviews
	}

	score := clampScore(meanRating(b.Reviews))
	analysis := &models.BusinessAnalysis{
		Strengths:       []string{},
		Weaknesses:      []string{},
		Recommendations: []string{},
		Summary:         fmt.Sprintf(summaryFormat, len(b.Reviews), score),
		OverallScore:    score,
	}

	switch {
	case score >= 4.5:
		analysis.Strengths = append(analysis.Strengths, strengthExcellent)
	case score >= 4.0:
		analysis.Strengths = append(analysis.Strengths, strengthGood)
	case score < 3.5:
		analysis.Weaknesses = append(analysis.Weaknesses, weaknessLowScore)
		analysis.Recommendations = append(analysis.Recommendations, recommendLowScore)
	}

	var positive, negative int
	for _, r := range b.Reviews {
		text := foldText(r.Text)
		if containsAny(text, a.positive) {
			positive++
		}
		if containsAny(text, a.negative) {
			negative++
		}
	}
	switch {
	case positive > negative:
		analysis.Strengths = append(analysis.Strengths, strengthPositive)
	case negative > positive:
		analysis.Weaknesses = append(analysis.Weaknesses, weaknessNegative)
		analysis.Recommendations = append(analysis.Recommendations, recommendNegative)
	}

	a.logger.Debug("[analyzer] %q: score %.2f, %d positive / %d negative reviews",
		b.Name, score, positive, negative)
	return analysis, nil
}

// AnalyzeCategory summarises a set of businesses. Businesses without reviews
// count towards BusinessCount but not towards AverageRating.
func (a *Analyzer) AnalyzeCategory(businesses []models.Business) (*models.CategoryAnalysis, error) {
	if len(businesses) == 0 {
		return nil, ErrNoBusinesses
	}

	var (
		sumOfMeans   float64
		rated        int
		totalReviews int
		texts        []string
	)
	for _, b := range businesses {
		totalReviews += len(b.Reviews)
		if len(b.Reviews) == 0 {
			continue
		}
		sumOfMeans += meanRating(b.Reviews)
		rated++
		for _, r := range b.Reviews {
			texts = append(texts, foldText(r.Text))
		}
	}
	if rated == 0 {
		return nil, ErrNoReviews
	}

	strengths := rankThemes(texts, a.positive)
	weaknesses := rankThemes(texts, a.negative)

	recommendations := []string{}
	if len(weaknesses) > 0 {
		recommendations = append(recommendations, fmt.Sprintf(recommendWeakTheme, weaknesses[0]))
	}
	if len(strengths) > 0 {
		recommendations = append(recommendations, fmt.Sprintf(recommendStrongTheme, strengths[0]))
	}

	return &models.CategoryAnalysis{
		AverageRating:          sumOfMeans / float64(rated),
		TotalReviews:           totalReviews,
		TopStrengths:           topN(strengths, maxThemes),
		TopWeaknesses:          topN(weaknesses, maxThemes),
		GeneralRecommendations: recommendations,
		BusinessCount:          len(businesses),
	}, nil
}

// rankThemes counts, per word, the texts containing it and orders the words
// with a non-zero count by descending count. Ties keep list order.
func rankThemes(texts []string, words []string) []string {
	counts := make([]int, len(words))
	for _, text := range texts {
		for i, w := range words {
			if strings.Contains(text, w) {
				counts[i]++
			}
		}
	}

	type theme struct {
		word  string
		count int
	}
	themes := make([]theme, 0, len(words))
	for i, w := range words {
		if counts[i] > 0 {
			themes = append(themes, theme{w, counts[i]})
		}
	}
	sort.SliceStable(themes, func(i, j int) bool {
		return themes[i].count > themes[j].count
	})

	ranked := make([]string, len(themes))
	for i, t := range themes {
		ranked[i] = t.word
	}
	return ranked
}

func meanRating(reviews []models.Review) float64 {
	var sum float64
	for _, r := range reviews {
		sum += r.Rating
	}
	return sum / float64(len(reviews))
}

func clampScore(s float64) float64 {
	switch {
	case s < 0:
		return 0
	case s > 5:
		return 5
	}
	return s
}

func containsAny(text string, words []string) bool {
	for _, w := range words {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}

// foldText lower-cases and NFC-normalises so composed and decomposed
// accents match the same keyword.
func foldText(s string) string {
	return norm.NFC.String(strings.ToLower(s))
}

func normaliseWords(words []string) []string {
	out := make([]string, 0, len(words))
	for _, w := range words {
		if w = foldText(strings.TrimSpace(w)); w != "" {
			out = append(out, w)
		}
	}
	return out
}

func topN(s []string, n int) []string {
	if len(s) > n {
		return s[:n]
	}
	return s
}
