// Package store defines persistence interfaces and shared store errors.
package store
