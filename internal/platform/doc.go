// Package platform provides filesystem operations whose behavior differs
// across operating systems. Node repositories contain read-only git objects,
// which Windows refuses to delete until they are made writable.
package platform
