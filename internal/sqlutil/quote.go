// Package sqlutil provides SQL utility functions.
package sqlutil

import "fmt"

// Qualify joins a table and column into a qualified column reference.
func Qualify(table, column string) string {
	return table + "." + column
}

// PointWKT formats a longitude/latitude pair as a WKT POINT literal for use
// with ST_GeomFromText. WKT order is longitude first.
func PointWKT(longitude, latitude float64) string {
	return fmt.Sprintf("POINT(%g %g)", longitude, latitude)
}
