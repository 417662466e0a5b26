// Package core provides the business logic of the admin dashboard.
//
// It holds the People, Library and Assets collections in memory and
// exposes them to the web server and the CLI through one [Service]. Nothing
// here knows about HTTP or terminals.
//
// # Collections
//
// Each collection pairs a typed store with a [view.Schema] that tells the
// collection-view pipeline how to search, filter, sort and display items.
// The [Registry] hides the item type behind the [Collection] interface:
//
//	c, err := svc.Collection(core.PeopleKey)
//	ctl := c.NewController()
//	ctl.SetQuery("jane", 1)
//	page := c.Render(ctl)
//
// Stores are copy-on-write. A render works on an immutable snapshot, and
// every mutation bumps the collection version so cached search indexes are
// rebuilt on the next render.
//
// # Bulk Actions
//
// Every collection declares its bulk actions. Status changes run at once;
// deletes are destructive and wait for a confirmation token. Each executed
// action records an activity entry.
//
// # Imports
//
// [Service.ImportAssets] reads a CSV file, validates the header and every
// row against [AssetFieldSpecs], and appends the valid rows. Rejected rows
// come back in the [ImportResult] with their line number and reason.
// An [ImportLimiter] bounds how many imports run at once.
//
// # Error Handling
//
// Technical errors are mapped to user-facing messages using [MapError].
// Each error category has a code for support reference:
//
//   - SEL001-SEL004: selection and bulk action errors
//   - COL001-COL002: unknown collections and items
//   - VAL001-VAL006: validation errors (formats, missing columns)
//   - FILE001-FILE005: import file errors (size, encoding, format)
//   - EXP001, RATE001-RATE002, REQ001-REQ002: export, load and request errors
package core
