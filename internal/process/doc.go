// Package process runs external tools in their own process group so that a
// cancelled context stops the tool and everything it spawned.
package process
