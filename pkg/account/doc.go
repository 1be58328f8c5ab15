// Package account defines the account resolution contract consumed by the
// booking and notification subsystems.
//
// Account ownership (registration, authentication, profiles) lives outside
// this module; bookings and notifications only need to verify that a party
// exists, learn its role, and fetch a display name for message rendering.
// The Resolver interface captures exactly that, with a memory implementation
// for development and tests and a PostgreSQL implementation for production.
//
// Roles matter beyond validation: receiver ids are not globally unique
// across account kinds, so every notification address is keyed on the
// (role, id) pair rather than the id alone.
package account
