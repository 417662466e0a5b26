// Package view implements the collection-view pipeline shared by every
// list page: fuzzy search, field filters, stable sorting, clamped
// pagination, selection tracking and bulk action dispatch.
//
// The pipeline is a set of pure functions over plain-data state:
//
//	items -> Search -> Filter -> Sort -> Paginate -> Result
//
// Selection and bulk actions operate on the identifiers of the filtered,
// sorted collection before pagination. Controller is the event layer: it
// stores State, mutates it in response to user events, and records the
// pipeline's clamped output. It never renders.
//
// Item types are described by a Schema of Field accessors, so one
// pipeline serves people, library items and assets alike.
package view
