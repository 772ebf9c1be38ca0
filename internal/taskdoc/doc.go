// Package taskdoc reads, classifies, and patches markdown task documents.
//
// A task document (feature-tasks.md) groups tasks into numbered phases and
// closes each phase with a checkpoint:
//
//	## Phase 3: Services
//
//	### Task 3.2: Add caching
//	`[COMPLETE]`
//
//	## CHECKPOINT: Phase 3 Complete
//	`[COMPLETE]`
//
//	Git Commits:
//	- `abc123` - add cache layer
//
//	Status: ✅ Verified
//	Notes: ...
//
// # Scanning
//
// Parse classifies every line into a typed Block. Locate walks the blocks and
// returns the checkpoint of the phase that holds the last task, in document
// order, carrying a completion marker.
//
// # Completion Markers
//
// A Matcher recognizes a check mark glyph followed by "complete" and the
// code-quoted form `[complete]`, case-insensitively. The default glyph set
// includes the mojibake spelling left behind when a UTF-8 file was decoded as
// Windows-1252 and saved again.
//
// # Patching
//
// AddCommit splices a commit bullet into the checkpoint's "Git Commits"
// sub-section, converting the single-line "Git Commit:" form to a list and
// creating the sub-section when it is missing. Patching is not idempotent.
package taskdoc
