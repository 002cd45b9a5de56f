// Package registry provides a generic, type-safe registry system
// used to manage named components such as script context generators.
// It supports automatic registration through init() functions.
package registry
