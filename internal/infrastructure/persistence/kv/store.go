// Package kv defines the key-value storage contract every backend implements.
// The application stores each record collection as one JSON document under a
// fixed key; writes replace the whole document (last write wins). Backends
// differ only in where the bytes live: process memory, Redis, or Postgres.
package kv

import (
	"context"
	"errors"
)

// ══════════════════════════════════════════════════════════════════════════════
// ERRORS
// ══════════════════════════════════════════════════════════════════════════════

var (
	// ErrKeyNotFound is returned when the requested key has no value.
	ErrKeyNotFound = errors.New("kv: key not found")

	// ErrKeyEmpty is returned when an empty key is provided.
	ErrKeyEmpty = errors.New("kv: key cannot be empty")

	// ErrSerialization is returned when a value cannot be encoded or decoded.
	ErrSerialization = errors.New("kv: serialization failed")

	// ErrConnection is returned when the backend is unreachable.
	ErrConnection = errors.New("kv: connection failed")
)

// ══════════════════════════════════════════════════════════════════════════════
// KEYS
// ══════════════════════════════════════════════════════════════════════════════

// Collection keys. One document per collection, mirroring the single-user
// record model: a write always replaces the full collection.
const (
	KeySubjects   = "edutrack:subjects"
	KeyTimetable  = "edutrack:timetable"
	KeyAttendance = "edutrack:attendance"
	KeyTasks      = "edutrack:tasks"
	KeyTopics     = "edutrack:topics"
	KeyFocusLogs  = "edutrack:focus-logs"
	KeyProfile    = "edutrack:profile"
	KeyPlans      = "edutrack:weekly-plans"
)

// ══════════════════════════════════════════════════════════════════════════════
// CONTRACT
// ══════════════════════════════════════════════════════════════════════════════

// Store is the backend-agnostic key-value contract.
//
// Values are JSON documents. Set replaces unconditionally; there is no
// compare-and-swap, by the single-writer model of the application.
type Store interface {
	// Get decodes the value stored under key into dest.
	// Returns ErrKeyNotFound when the key has no value.
	Get(ctx context.Context, key string, dest interface{}) error

	// Set encodes value as JSON and stores it under key, replacing any
	// previous value.
	Set(ctx context.Context, key string, value interface{}) error

	// Delete removes a key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Ping checks that the backend is reachable.
	Ping(ctx context.Context) error

	// Close releases backend resources.
	Close() error
}
