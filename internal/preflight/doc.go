// Package preflight provides readiness checks for the filesystem paths and
// static tables collate depends on.
//
// These checks run in two contexts:
//   - The workflow runner calls RunAll before a batch starts. If any check
//     fails, the batch is refused instead of failing on every document.
//   - The CLI "collate preflight" command renders every Result as a table.
package preflight
