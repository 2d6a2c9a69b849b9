// Package domain defines the core business entities of the quiz service:
// generated questions and the quiz sessions that consume them.
//
// Entities are constructed through New* functions that validate their
// invariants and return per-field sentinel errors. Once constructed, a
// Question is treated as immutable by every other package.
package domain
