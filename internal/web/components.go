package web

import (
	"strconv"
	"strings"

	"github.com/a-h/templ"
)

//go:generate templ generate

// SiteName is appended to every page title.
const SiteName = "Tailspin Toys"

// PageTitle composes the document title for a page.
func PageTitle(page string) string {
	page = strings.TrimSpace(page)
	if page == "" || page == SiteName {
		return SiteName
	}
	return page + " - " + SiteName
}

func gameURL(id uint) templ.SafeURL {
	return templ.SafeURL("/game/" + strconv.FormatUint(uint64(id), 10))
}

func formatRating(r float64) string {
	return strconv.FormatFloat(r, 'f', 1, 64)
}
