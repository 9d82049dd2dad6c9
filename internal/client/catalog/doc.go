// Package catalog talks to the catalog site on behalf of an edit session.
//
// # Overview
//
//  1. A transport-agnostic contract (Client) covering the three endpoints an
//     edit page uses: the page's own save POST, the immediate add-publication
//     POST and the search autocomplete GET.
//  2. An HTTP implementation (HTTPClient) that keeps cookies in a jar, reads
//     the CSRF token from the "csrftoken" cookie and maps transport and status
//     failures to sentinel errors.
//
// # Error Handling
//
// Match with errors.Is: ErrUnavailable (transport failure or timeout),
// ErrForbidden (403, usually a missing CSRF token), ErrRejected (any other
// non-2xx) and ErrMalformedResponse (2xx with an unusable body).
//
// Nothing is retried. A failed request is terminal for that attempt.
package catalog
