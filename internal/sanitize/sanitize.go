// Package sanitize provides functions for sanitizing names for safe filesystem use.
package sanitize

import "strings"

var unsafe = strings.NewReplacer("/", "_", "\\", "_", ":", "_")

// Name converts an image repository (or any engine name) to a file-system
// safe name. Registry separators "/" and port or digest separators ":" become "_".
func Name(name string) string {
	return unsafe.Replace(name)
}
