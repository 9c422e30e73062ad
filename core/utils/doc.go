// Package utils provides common utility functions for the enum-sync application.
// It includes the scan-value normalization helpers used when reading rows and
// column metadata through database/sql, where the concrete Go type depends on
// the driver in use.
package utils
