package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tourism-reviews/models"
	"tourism-reviews/services"
)

func sampleReport() *services.CategoryReport {
	santaElena := models.Business{
		Name: "Viñedos Santa Elena", Address: "Calvillo", Category: "viñedos", PlaceID: "p1",
	}.WithReviews([]models.Review{
		{ID: "r1", Author: "Ana", Rating: 5, Text: "Excelente, \"muy\" bueno", Date: "ayer", Likes: 2},
		{ID: "r2", Author: "Luis", Rating: 4, Text: "bueno", Date: "hace 1 mes"},
	})
	rivier := models.Business{Name: "Vinícola Rivier", Category: "viñedos", PlaceID: "p2"}.
		WithReviews([]models.Review{{ID: "r3", Rating: 3, Text: "caro"}})

	return &services.CategoryReport{
		Category: models.Vineyards,
		Location: "Aguascalientes, México",
		Businesses: []services.BusinessReport{
			{Business: rivier, Analysis: &models.BusinessAnalysis{OverallScore: 3, Summary: "s"}},
			{Business: santaElena, Analysis: &models.BusinessAnalysis{
				OverallScore: 4.5,
				Strengths:    []string{"Excelente calificación general"},
				Summary:      "Análisis basado en 2 reseñas con una calificación promedio de 4.5",
			}},
			{Business: models.Business{Name: "Hacienda sin reseñas"}, Note: "reviews unavailable"},
		},
		Analysis: &models.CategoryAnalysis{
			AverageRating: 3.75, TotalReviews: 3, BusinessCount: 3,
			TopStrengths: []string{"bueno", "excelente"}, TopWeaknesses: []string{"caro"},
			GeneralRecommendations: []string{"Enfocarse en mejorar los aspectos mencionados en caro"},
		},
		Failures: map[string]string{"Hacienda sin reseñas": "timeout"},
	}
}

func TestCSVWriterWritesOneRowPerReview(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "reviews.csv")
	w, err := NewCSVWriter(path)
	require.NoError(t, err)

	report := sampleReport()
	var businesses []models.Business
	for _, br := range report.Businesses {
		businesses = append(businesses, br.Business)
	}
	require.NoError(t, w.WriteBusinesses(businesses))
	require.NoError(t, w.Close())

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)

	require.Len(t, rows, 4)
	assert.Equal(t, csvHeader, rows[0])
	assert.Equal(t, []string{"Vinícola Rivier", "", "viñedos", "p2", "r3", "", "3", "", "0", "caro"}, rows[1])
	assert.Equal(t, []string{
		"Viñedos Santa Elena", "Calvillo", "viñedos", "p1", "r1", "Ana", "5", "ayer", "2", "Excelente, \"muy\" bueno",
	}, rows[2])
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, sampleReport()))

	assert.Contains(t, buf.String(), "Viñedos Santa Elena", "accents kept literal")
	assert.Contains(t, buf.String(), "\n  \"category\": \"viñedos\"")

	var decoded services.CategoryReport
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Len(t, decoded.Businesses, 3)
	assert.Equal(t, 3.75, decoded.Analysis.AverageRating)
}

func TestRenderChart(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderChart(&buf, sampleReport()))

	html := buf.String()
	assert.Contains(t, html, "echarts")
	assert.Contains(t, html, "Santa Elena")
	assert.NotContains(t, html, "Hacienda sin reseñas", "businesses without analysis are not plotted")
}

func TestRenderChartFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "chart.html")
	require.NoError(t, RenderChartFile(path, sampleReport()))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestRenderChartNilReport(t *testing.T) {
	assert.Error(t, RenderChart(&bytes.Buffer{}, nil))
}

func TestPrintCategory(t *testing.T) {
	var buf bytes.Buffer
	PrintCategory(&buf, sampleReport())
	out := buf.String()

	assert.Contains(t, out, "VIÑEDOS EN AGUASCALIENTES, MÉXICO")
	assert.Contains(t, out, "3.75")
	assert.Contains(t, out, "bueno, excelente")
	assert.Contains(t, out, "Enfocarse en mejorar los aspectos mencionados en caro")
	assert.Less(t, strings.Index(out, "Viñedos Santa Elena"), strings.Index(out, "Vinícola Rivier"),
		"ranked by overall score")
	assert.Contains(t, out, "timeout")
}

func TestPrintCategoryWithoutAnalysis(t *testing.T) {
	var buf bytes.Buffer
	PrintCategory(&buf, &services.CategoryReport{Category: models.Parks, Location: "Calvillo", Note: "analyzer: no reviews to analyze"})
	assert.Contains(t, buf.String(), "Sin análisis: analyzer: no reviews to analyze")
	assert.Contains(t, buf.String(), "No hay negocios con reseñas")
}

func TestPrintBusiness(t *testing.T) {
	report := sampleReport().Businesses[1]
	var buf bytes.Buffer
	PrintBusiness(&buf, &report)

	out := buf.String()
	assert.Contains(t, out, "Viñedos Santa Elena")
	assert.Contains(t, out, "Análisis basado en 2 reseñas")
	assert.Contains(t, out, "Excelente calificación general")
	assert.NotContains(t, out, "Debilidades", "empty lists are skipped")
}

func TestPrintBusinessesAndReviews(t *testing.T) {
	report := sampleReport()
	var buf bytes.Buffer
	PrintBusinesses(&buf, []models.Business{report.Businesses[1].Business})
	PrintReviews(&buf, report.Businesses[1].Business)

	out := buf.String()
	assert.Contains(t, out, "1 resultados")
	assert.Contains(t, out, "Calvillo")
	assert.Contains(t, out, "Viñedos Santa Elena: 2 reseñas")
	assert.Contains(t, out, "hace 1 mes")
}

func TestTruncateKeepsRunes(t *testing.T) {
	assert.Equal(t, "Viñ...", truncate("Viñedos Santa Elena", 6))
	assert.Equal(t, "corto", truncate("corto", 10))
}
