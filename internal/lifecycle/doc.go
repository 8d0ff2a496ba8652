// Package lifecycle holds the per-node state machine. The Inspector derives
// a node's state by probing its enabled and disabled paths, and the Operator
// applies transitions: install, uninstall, and update are delegated to a
// GitOperator while enable and disable are plain renames.
//
//	NotInstalled --install--> Enabled --uninstall--> NotInstalled
//	Enabled --disable--> Disabled --enable--> Enabled
//	Enabled --update--> Enabled
package lifecycle
