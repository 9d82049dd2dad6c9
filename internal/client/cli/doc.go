// Package cli provides the interactive metadata editor for one catalog page.
//
// It wires configuration, the page snapshot, the catalog client and the edit
// service, then runs a REPL whose commands stand in for the page's click and
// keyboard handlers. Typical flow: open a field, type, accept, pick tags, add
// a citation, save.
//
// Network commands (cite, save) run in the background; the prompt stays
// usable while they are pending and their results are printed when they
// arrive. The REPL is started via App.Run(ctx), which blocks until the user
// exits or the page is saved.
package cli
