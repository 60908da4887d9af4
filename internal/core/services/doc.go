// Package services implements the driving port interfaces.
// Services resolve formats and configured defaults, own file handles,
// and delegate parsing and serialisation to the format adapters.
package services
