package maps

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rotisserie/eris"

	"tourism-reviews/models"
	"tourism-reviews/utils"
)

var (
	// leadingNumberRegexp captures the numeric prefix of a token, like parseFloat.
	leadingNumberRegexp = regexp.MustCompile(`^[0-9]+(?:\.[0-9]+)?`)
	// parenRegexp captures a parenthesised count such as "(1.234)".
	parenRegexp   = regexp.MustCompile(`\(([^)]*)\)`)
	nonDigitRegex = regexp.MustCompile(`\D`)
	// placeIDRegexps recover the stable place id from the forms maps links take.
	placeIDRegexps = []*regexp.Regexp{
		regexp.MustCompile(`!19s([A-Za-z0-9_-]+)`),
		regexp.MustCompile(`place_id:([A-Za-z0-9_-]+)`),
		regexp.MustCompile(`[?&]query_place_id=([A-Za-z0-9_-]+)`),
	}
)

// parseBusinessPage reads one listing page. Absent nodes yield empty or zero
// fields; the record is never dropped.
func parseBusinessPage(html, pageURL string) (models.Business, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return models.Business{}, eris.Wrap(err, "maps: parse listing page")
	}

	stars := doc.Find(ratingSelector).First()
	return models.Business{
		Name:         textOf(doc.Find(listingTitleSelector).First()),
		Address:      textOf(doc.Find(addressSelector).First()),
		Rating:       ratingFromStars(stars),
		TotalReviews: reviewCountFromStars(stars),
		Reviews:      []models.Review{},
		URL:          pageURL,
		PlaceID:      placeIDFromURL(pageURL),
	}, nil
}

// parseSearchResults maps every result card to a Business. Relative links
// are resolved against baseURL.
func parseSearchResults(html, baseURL string) ([]models.Business, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, eris.Wrap(err, "maps: parse search results")
	}

	cards := doc.Find(resultCardSelector)
	businesses := make([]models.Business, 0, cards.Length())
	cards.Each(func(_ int, card *goquery.Selection) {
		name := textOf(card.Find(resultNameSelector).First())
		if name == "" {
			name = utils.CollapseSpace(card.AttrOr("aria-label", ""))
		}
		stars := card.Find(ratingSelector).First()
		link := resolveURL(baseURL, card.Find(resultLinkSelector).First().AttrOr("href", ""))

		businesses = append(businesses, models.Business{
			Name:         name,
			Address:      textOf(card.Find(resultAddressSelector).First()),
			Rating:       ratingFromStars(stars),
			TotalReviews: reviewCountFromStars(stars),
			Reviews:      []models.Review{},
			URL:          link,
			PlaceID:      placeIDFromURL(link),
		})
	})
	return businesses, nil
}

// parseReviews maps every review card to a Review with an id from newID.
// Nested cards are folded into their outermost card, and cards sharing a
// data-review-id are emitted once.
func parseReviews(html string, newID func() string) ([]models.Review, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, eris.Wrap(err, "maps: parse reviews")
	}

	cards := outermost(doc, reviewCardSelector)
	if cards.Length() == 0 {
		cards = outermost(doc, reviewFallbackCardSelector)
	}

	seen := utils.NewKeySet()
	reviews := make([]models.Review, 0, cards.Length())
	cards.Each(func(_ int, card *goquery.Selection) {
		if rid := card.AttrOr("data-review-id", ""); rid != "" && !seen.Add(rid) {
			return
		}

		reviews = append(reviews, models.Review{
			ID:     newID(),
			Author: textOf(card.Find(reviewAuthorSelector).First()),
			Rating: ratingFromStars(card.Find(ratingSelector).First()),
			Text:   textOf(card.Find(reviewTextSelector).First()),
			Date:   textOf(card.Find(reviewDateSelector).First()),
			Likes:  parseCount(textOf(card.Find(reviewLikesSelector).First())),
		})
	})
	return reviews, nil
}

func outermost(doc *goquery.Document, selector string) *goquery.Selection {
	return doc.Find(selector).FilterFunction(func(_ int, s *goquery.Selection) bool {
		return s.ParentsFiltered(selector).Length() == 0
	})
}

func ratingFromStars(stars *goquery.Selection) float64 {
	if stars.Length() == 0 {
		return 0
	}
	return parseRating(stars.AttrOr("aria-label", ""))
}

// reviewCountFromStars reads the count printed next to the star widget.
func reviewCountFromStars(stars *goquery.Selection) int {
	if stars.Length() == 0 {
		return 0
	}
	text := stars.Parent().Text()
	if own := stars.Text(); own != "" {
		text = strings.Replace(text, own, "", 1)
	}
	return parseCount(text)
}

// parseRating reads the leading token of an accessibility label such as
// "4,5 estrellas" or "4.5 stars". Malformed input yields 0.
func parseRating(label string) float64 {
	fields := strings.Fields(label)
	if len(fields) == 0 {
		return 0
	}
	token := strings.ReplaceAll(fields[0], ",", ".")
	match := leadingNumberRegexp.FindString(token)
	if match == "" {
		return 0
	}
	val, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0
	}
	return val
}

// parseCount keeps only the digits of raw, preferring a parenthesised group
// when one is present. Malformed input yields 0.
func parseCount(raw string) int {
	if m := parenRegexp.FindStringSubmatch(raw); len(m) == 2 {
		raw = m[1]
	}
	digits := nonDigitRegex.ReplaceAllString(raw, "")
	if digits == "" {
		return 0
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0
	}
	return n
}

func placeIDFromURL(raw string) string {
	if raw == "" {
		return ""
	}
	if unescaped, err := url.QueryUnescape(raw); err == nil {
		raw = unescaped
	}
	for _, re := range placeIDRegexps {
		if m := re.FindStringSubmatch(raw); len(m) == 2 {
			return m[1]
		}
	}
	return ""
}

func resolveURL(base, href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	b, err := url.Parse(base)
	if err != nil {
		return href
	}
	return b.ResolveReference(ref).String()
}

func textOf(s *goquery.Selection) string {
	if s.Length() == 0 {
		return ""
	}
	return utils.CollapseSpace(s.Text())
}
