// Package common holds names shared by the catalog transport and its tests.
package common

const (
	// CSRFCookieName is the cookie the catalog issues its CSRF token in.
	CSRFCookieName = "csrftoken"
	// CSRFHeaderName carries the token on state-changing requests.
	CSRFHeaderName = "X-CSRFToken"

	AddPublicationPath = "/addpublication/"
	AutocompletePath   = "/search/autocomplete/"
)
