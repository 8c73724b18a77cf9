// Package models defines the content entities of the academy site.
//
// Every entity is a plain record with an opaque string identifier. Records that
// carry variant-specific fields are modelled as tagged unions: a [Preview] holds
// exactly one [PreviewBody] ([QuizPreview], [VideoPreview] or [DocumentPreview])
// and a [Lead] holds exactly one [Submission] ([ContactSubmission] or
// [EnrollmentSubmission]). On the wire both unions are flat JSON objects
// discriminated by their "type" field, so documents written by older clients
// decode without conversion.
package models
