// Package docstore is the document store client used by the academy server.
//
// It has two layers. A [Backend] is a raw, error-returning document store:
// [Memory] in process, surrealstore on SurrealDB and sqlstore on a GORM
// database. A [Client] wraps a Backend with the error contract the content
// layer relies on:
//
//   - [Client.ListAll] and [Client.GetSingleton] never fail. A read error is
//     logged and reported as an empty collection or an absent singleton.
//   - [Client.Upsert], [Client.DeleteByID], [Client.ReplaceCollection] and
//     [Client.SetSingleton] return every error to the caller.
//
// Record identifiers are stored as the document key and never inside the
// document body; [Decode] rehydrates the "id" field on every read.
//
// [Client.ReplaceCollection] deletes every existing record and then writes the
// new ones. It is not atomic: a failure part way leaves the collection partially
// written and a concurrent reader may observe it empty.
package docstore
