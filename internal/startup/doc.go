// Package startup manages the artifacts the host application consumes on
// its next start: the queue of deferred install scripts and the restore
// snapshot.
package startup
