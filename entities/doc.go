// Package entities holds the reference schemas: postal codes, contact
// numbers, users and derived sub-users.
package entities
