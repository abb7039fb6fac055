// Package tui provides terminal user interface components for drivectl.
//
// This package uses the Bubble Tea framework to create interactive terminal
// interfaces, primarily the multi-step study configuration wizard behind
// `drivectl create --interactive`.
package tui
