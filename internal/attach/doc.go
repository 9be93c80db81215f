// Package attach links an optional uploaded file to a record mutation.
//
// Link runs the steps strictly in order, each one deciding whether the next
// runs at all:
//
//  1. no file: persist with the existing reference unchanged
//  2. validate the file (size and media type) before touching any store
//  3. best-effort removal of the object the record currently points at
//  4. upload under a fresh {namespace}/{millis}.{ext} path
//  5. resolve the public URL
//  6. persist; on failure the fresh upload is removed again
//  7. return the reference that was persisted
//
// What happens when step 4 fails is governed by Policy and is the same for
// every caller in a process.
package attach
