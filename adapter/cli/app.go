package cli

import (
	chronoapp "github.com/chronosuggest/engine/internal/app"
)

// container is the global CLI application instance.
var container *chronoapp.Container

// SetContainer sets the global CLI application instance.
func SetContainer(c *chronoapp.Container) {
	container = c
}

// GetContainer returns the global CLI application instance.
func GetContainer() *chronoapp.Container {
	return container
}
