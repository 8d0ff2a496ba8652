// Package batch applies one lifecycle operation to a set of node
// identifiers. Each node is processed independently: a failure for one node
// is recorded in the report and never stops the others.
package batch
