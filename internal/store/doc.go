// Package store defines the persistence contract for tasks. The interfaces
// here keep the service layer independent of the SQL dialect and driver in
// use; implementations live under internal/platform.
package store
