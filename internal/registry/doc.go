// Package registry resolves a channel and fetch mode into the mapping of
// node identifiers to node metadata. It validates the requested channel and
// mode, fetches the registry document through a datasource, checks it
// against an embedded JSON schema, and scans each node's source locations to
// derive the identifiers it can be addressed by.
package registry
