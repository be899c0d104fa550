// Package monitoring holds the diagnostic logger shared by the droneshow packages.
package monitoring

import (
	"log"
	"os"
)

// Logf receives pipeline diagnostics such as palette and layer statistics.
// Commands route it to glog; tests mute it with SetLogger(nil).
var Logf = log.New(os.Stderr, "droneshow: ", log.LstdFlags).Printf

// SetLogger installs f as the diagnostic sink. A nil f discards diagnostics.
func SetLogger(f func(format string, v ...any)) {
	if f == nil {
		f = func(string, ...any) {}
	}
	Logf = f
}
