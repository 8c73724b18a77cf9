// Package academy wires the content store, the document store backends and
// the HTTP API of the academy site into one process.
//
// The process owns the in-memory content state for its whole lifetime. On
// start it hydrates that state from the configured document store, seeding
// the bundled content when the store is empty, and then serves the public
// site and the admin panel from memory while writing changes through.
//
// # Basic Usage
//
//	# Serve from SurrealDB (default)
//	academy run
//
//	# Serve from PostgreSQL or a local SQLite file
//	academy -backend postgres run
//	academy -backend sqlite run
//
//	# Seed the store explicitly, overwriting existing content
//	academy seed -force
//
//	# Write a snapshot of every collection
//	academy export -out academy_export.json
//
//	# Copy every collection to another backend
//	academy -backend surrealdb mirror -to sqlite
//
// See [Parse] for flags and environment variables and [App.Handler] for the
// HTTP endpoints.
package academy
