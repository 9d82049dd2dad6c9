// Package editsession holds the in-memory staged-edit model of one
// metadata-editing page view.
//
// A Session is built once from the page's initial content (see LoadSnapshot),
// mutated by user events (open/commit a field, toggle a yes/no flag,
// select/deselect tags, add/remove citations, stage a logo) and reconciled
// into a single flat Payload by BuildSavePayload.
//
// # Invariants
//
//   - At most one editor (field or tag set) is open at any time. Opening one
//     closes the other, committing a field as if the user had accepted it.
//   - A tag never sits in both the pending-add and pending-remove lists of a
//     tag set. Net-zero edits are never sent.
//   - A single-valued tag set holds at most one selected tag.
//   - Citation numbers are stable. Removing one never renumbers the rest and
//     the next number is derived from the highest number ever issued.
//   - Once any mutation happened the save control stays visible.
//
// Session is not safe for concurrent use; callers serialize access (see
// services.EditService).
package editsession
