// Package userdata resolves the on-disk layout the CLI works against: the
// host application root and its custom_nodes directory, and the manager
// directory holding channels.list, the document cache, and startup-scripts.
// It also creates that layout (init) and checks its health (doctor).
package userdata
