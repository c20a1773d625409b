// Package main provides the entry point for the Callboard service.
// Callboard is a scheduling and collaboration backend for performance
// groups: it tracks users, groups and their memberships, events, and
// availability polling, and exposes a JSON API built on the Fiber
// framework with gorm for persistence.
package main

import (
	"os"

	"github.com/callboard/callboard/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
