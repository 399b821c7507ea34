// Package domain defines the core business entities of the gratitude
// journal: uploaded memories, the gratitude entries extracted from them,
// daily surfaces, reflections, and sender voice mappings.
package domain
