// Package service provides application-level services coordinating the
// domain logic, stores, and external collaborators: memory ingestion and
// extraction, daily gratitude surfacing, reflections, sender voices, and
// speech synthesis.
package service
