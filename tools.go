//go:build tools

// Tool dependencies pinned in go.mod. mockgen generates internal/mocks.
package main

import (
	_ "go.uber.org/mock/mockgen"
)
