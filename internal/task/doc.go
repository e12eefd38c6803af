// Package task implements the task record lifecycle: id assignment, field
// validation, create/list/get/update/delete, and filtering.
//
// A task carries five fields:
//
//	{
//	  "id": 1,
//	  "title": "Buy milk",
//	  "description": "2%",
//	  "status": "To Do",
//	  "priority": "MEDIUM"
//	}
//
// # Persistence
//
// Every Service operation is a full round trip against a Store: the whole
// collection is loaded, the operation runs in memory, and mutating operations
// write the whole collection back before returning. Nothing is cached between
// calls. The store location is passed to each call.
//
// # Status Values
//
//   - "To Do": default for new tasks
//   - "In Progress"
//   - "Done"
//
// Status values are matched exactly (case-sensitive).
//
// # Priority Values
//
//   - "LOW"
//   - "MEDIUM": default for new tasks
//   - "HIGH"
//
// Priority input is upper-cased before it is matched.
//
// # Errors
//
// Failures are reported as *ValidationError, *NotFoundError, or
// *MalformedStoreError. Each matches its sentinel (ErrValidation, ErrNotFound,
// ErrMalformedStore) through errors.Is. Validation always happens before any
// write, so a failed operation leaves the store untouched.
package task
