// Package seedfinder computes explicit seed times from digi streams.
package seedfinder
