// Package store holds client-side state: [SecretStore], the in-memory set of
// secret collections rebuilt by every walk, and [SessionRepository], the
// endpoint and token remembered in a local SQLite file between runs.
package store
