package maps

// Every coupling to the maps UI's DOM lives here. Selector groups list the
// semantic/attribute form first and the current obfuscated class second.
const (
	// Listing (place) page
	listingTitleSelector = `h1[class*="header-title"], h1.DUwDvf`
	addressSelector      = `button[data-item-id*="address"]`

	// Star widget; its aria-label starts with the rating ("4,5 estrellas").
	ratingSelector = `span[role="img"]`

	// Search results
	resultCardSelector    = `div[role="article"]`
	resultNameSelector    = `div[role="heading"], .qBF1Pd`
	resultAddressSelector = `div[class*="fontBodyMedium"]`
	resultLinkSelector    = `a[href*="/maps/place/"], a.hfpxzc`

	// Panel shown instead of the feed when the query matches nothing.
	noResultsSelector  = `div[class*="no-results"]`
	searchWaitSelector = resultCardSelector + `, ` + noResultsSelector

	// Reviews
	reviewCardSelector         = `div[data-review-id]`
	reviewFallbackCardSelector = `div[class*="review"]`
	reviewWaitSelector         = reviewCardSelector + `, ` + reviewFallbackCardSelector
	reviewAuthorSelector       = `div[class*="author"], .d4r55`
	reviewTextSelector         = `div[class*="review-text"], span.wiI7pd`
	reviewDateSelector         = `span[class*="date"], span.rsqaWe`
	reviewLikesSelector        = `span[class*="likes"], span.pkWtMe`
)
