// Package content holds the site content for the lifetime of the server
// process and keeps it in step with the document store.
//
// A [Store] is the single application-state object. It is built once with
// [New], hydrated once with [Store.Hydrate], and handed explicitly to every
// component that reads or edits content.
//
// Mutations are optimistic. Each one is applied to the in-memory state under a
// lock and then written to the document store through a single ordered write
// queue, so remote writes land in the order the local edits happened. Whether
// the caller waits for the remote write and sees its error is decided per
// collection and operation by a [Policy]. A failed remote write never rolls
// back the local edit.
package content
