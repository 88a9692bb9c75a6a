//go:build tools

// Package tools pins build tool dependencies so `go mod tidy` keeps them.
package tools

import (
	_ "github.com/vektra/mockery/v2"
)
