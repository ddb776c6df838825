// Package todo implements the in-memory task store and its identifier
// generator.
//
// A Store owns every Task for the lifetime of a process. Tasks are created,
// read, listed, updated, deleted, and toggled complete/incomplete exclusively
// through Store methods; snapshots cross the boundary by value, so callers
// can never mutate stored state directly. Nothing is persisted: when the
// process exits, the tasks are gone.
//
// # Identifiers
//
// Task ids are sequential: "T" followed by the counter value, zero-padded to
// three digits up to T999 and unpadded from T1000 on. Ids are assigned once,
// never reused (deleting T002 leaves a permanent gap), and compared
// case-insensitively on input ("t001" resolves to "T001"). Normalization
// does not re-pad, so "T1" and "T001" are distinct ids.
//
// # Validation
//
// Titles are trimmed and must be 1-200 characters; descriptions are 0-1000
// characters and kept verbatim. Lengths count characters (runes), not bytes.
// Validation always runs before any mutation, so a failed operation leaves
// the store exactly as it was.
//
// # Serialization
//
// Tasks marshal to JSON as:
//
//	{
//	  "id": "T001",
//	  "title": "Buy groceries",
//	  "description": "Milk, eggs, bread",
//	  "completed": false,
//	  "created_at": "2025-12-29T10:30:00"
//	}
//
// created_at uses ISO 8601 without a timezone offset. The bundled JSON
// Schema (see TaskSchemaJSON) describes this document shape.
package todo
