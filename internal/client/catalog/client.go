package catalog

import (
	"context"
	"net/url"
)

// PublicationRequest is the add-citation sub-form plus the number the new
// citation will carry.
type PublicationRequest struct {
	Number  int
	DBName  string
	Authors string
	Title   string
	Journal string
	Volume  string
	Year    string
	Pages   string
	Link    string
}

// Publication is the catalog's rendering of a created citation.
type Publication struct {
	Cite string `json:"cite"`
	Link string `json:"link,omitempty"`
}

type Client interface {
	// Prime fetches the edit page so the catalog can issue its CSRF cookie.
	Prime(ctx context.Context, pagePath string) error
	// CSRFToken returns the current token, "" when none is known.
	CSRFToken() string
	// SaveDocument posts the save payload and returns the redirect location.
	SaveDocument(ctx context.Context, pagePath string, form url.Values) (string, error)
	AddPublication(ctx context.Context, req PublicationRequest) (Publication, error)
	// Autocomplete returns suggestions. Short queries return nil without a request.
	Autocomplete(ctx context.Context, query string) ([]string, error)
}
