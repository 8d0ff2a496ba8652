// Package datasource fetches registry documents for a channel location.
//
// Three modes are supported. Remote fetches over HTTP (or reads a local path
// when the location is not a URL) and refreshes the on-disk cache. Cache
// serves a cached copy younger than CacheMaxAge and otherwise behaves like
// remote. Local reads the copy shipped in the manager directory. Remote and
// cache failures fall back to the local copy.
package datasource
