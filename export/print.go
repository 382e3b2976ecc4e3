package export

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"tourism-reviews/models"
	"tourism-reviews/services"
)

const (
	ansiReset   = "\033[0m"
	ansiBold    = "\033[1m"
	ansiHeader  = "\033[1;35m"
	ansiSection = "\033[1;33m"
	ansiGood    = "\033[1;32m"
	ansiBad     = "\033[1;31m"
)

var (
	sep  = strings.Repeat("═", 54)
	thin = strings.Repeat("─", 54)
)

// PrintCategory writes a console summary of a category run.
func PrintCategory(w io.Writer, r *services.CategoryReport) {
	fmt.Fprintf(w, "\n%s%s%s\n", ansiHeader, sep, ansiReset)
	fmt.Fprintf(w, "%s  📊 %s EN %s%s\n", ansiHeader, strings.ToUpper(r.Category.Label()), strings.ToUpper(r.Location), ansiReset)
	fmt.Fprintf(w, "%s%s%s\n\n", ansiHeader, sep, ansiReset)

	section(w, "Resumen")
	if a := r.Analysis; a != nil {
		fmt.Fprintf(w, "  Negocios analizados : %s%d%s\n", ansiBold, a.BusinessCount, ansiReset)
		fmt.Fprintf(w, "  Reseñas recolectadas: %s%d%s\n", ansiBold, a.TotalReviews, ansiReset)
		fmt.Fprintf(w, "  Calificación media  : %s%.2f ★%s\n", ansiGood, a.AverageRating, ansiReset)
	} else {
		fmt.Fprintf(w, "  Sin análisis: %s\n", r.Note)
	}
	fmt.Fprintln(w)

	if a := r.Analysis; a != nil {
		section(w, "Temas")
		fmt.Fprintf(w, "  Fortalezas  : %s\n", joinOrDash(a.TopStrengths))
		fmt.Fprintf(w, "  Debilidades : %s\n", joinOrDash(a.TopWeaknesses))
		for _, rec := range a.GeneralRecommendations {
			fmt.Fprintf(w, "  → %s\n", rec)
		}
		fmt.Fprintln(w)
	}

	section(w, "Negocios por calificación")
	ranked := make([]services.BusinessReport, 0, len(r.Businesses))
	for _, br := range r.Businesses {
		if br.Analysis != nil {
			ranked = append(ranked, br)
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Analysis.OverallScore > ranked[j].Analysis.OverallScore
	})
	if len(ranked) == 0 {
		fmt.Fprintf(w, "  No hay negocios con reseñas\n")
	}
	for i, br := range ranked {
		fmt.Fprintf(w, "  %s%d.%s %-40s %s%.2f ★%s (%d)\n",
			ansiBold, i+1, ansiReset, truncate(br.Business.Name, 38),
			ansiGood, br.Analysis.OverallScore, ansiReset, len(br.Business.Reviews))
	}
	fmt.Fprintln(w)

	if len(r.Failures) > 0 {
		section(w, "Fallos")
		names := make([]string, 0, len(r.Failures))
		for name := range r.Failures {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(w, "  %s%s%s: %s\n", ansiBad, truncate(name, 38), ansiReset, r.Failures[name])
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "%s%s%s\n\n", ansiHeader, sep, ansiReset)
}

// PrintBusiness writes a console summary of one business.
func PrintBusiness(w io.Writer, r *services.BusinessReport) {
	b := r.Business
	fmt.Fprintf(w, "\n%s%s%s\n", ansiHeader, sep, ansiReset)
	fmt.Fprintf(w, "%s  🏷  %s%s\n", ansiHeader, b.Name, ansiReset)
	fmt.Fprintf(w, "%s%s%s\n\n", ansiHeader, sep, ansiReset)

	section(w, "Ficha")
	fmt.Fprintf(w, "  Dirección    : %s\n", b.Address)
	fmt.Fprintf(w, "  Calificación : %s%.1f ★%s (%d reseñas reportadas)\n", ansiGood, b.Rating, ansiReset, b.TotalReviews)
	fmt.Fprintf(w, "  Recolectadas : %d\n", len(b.Reviews))
	fmt.Fprintln(w)

	section(w, "Análisis")
	if a := r.Analysis; a != nil {
		fmt.Fprintf(w, "  %s\n", a.Summary)
		printList(w, "Fortalezas", a.Strengths, ansiGood)
		printList(w, "Debilidades", a.Weaknesses, ansiBad)
		printList(w, "Recomendaciones", a.Recommendations, ansiBold)
	} else {
		fmt.Fprintf(w, "  Sin análisis: %s\n", r.Note)
	}

	fmt.Fprintf(w, "\n%s%s%s\n\n", ansiHeader, sep, ansiReset)
}

// PrintBusinesses writes one line per business, as returned by a search.
func PrintBusinesses(w io.Writer, businesses []models.Business) {
	section(w, fmt.Sprintf("%d resultados", len(businesses)))
	for i, b := range businesses {
		fmt.Fprintf(w, "  %s%d.%s %-40s %.1f ★ (%d)\n", ansiBold, i+1, ansiReset,
			truncate(b.Name, 38), b.Rating, b.TotalReviews)
		if b.Address != "" {
			fmt.Fprintf(w, "     %s\n", b.Address)
		}
	}
	fmt.Fprintln(w)
}

// PrintReviews writes the reviews of one business.
func PrintReviews(w io.Writer, b models.Business) {
	section(w, fmt.Sprintf("%s: %d reseñas", b.Name, len(b.Reviews)))
	for _, r := range b.Reviews {
		fmt.Fprintf(w, "  %s%.0f ★%s %s%s%s · %s\n", ansiGood, r.Rating, ansiReset, ansiBold, r.Author, ansiReset, r.Date)
		if r.Text != "" {
			fmt.Fprintf(w, "    %s\n", r.Text)
		}
	}
	fmt.Fprintln(w)
}

func section(w io.Writer, title string) {
	fmt.Fprintf(w, "%s  %s%s\n", ansiSection, title, ansiReset)
	fmt.Fprintf(w, "  %s\n", thin)
}

func printList(w io.Writer, title string, items []string, color string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(w, "  %s:\n", title)
	for _, it := range items {
		fmt.Fprintf(w, "    %s•%s %s\n", color, ansiReset, it)
	}
}

func joinOrDash(items []string) string {
	if len(items) == 0 {
		return "-"
	}
	return strings.Join(items, ", ")
}

// truncate shortens s to max runes, keeping accented names intact.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
