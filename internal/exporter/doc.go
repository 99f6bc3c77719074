// Package exporter re-serializes filtered views back into the upload's
// CSV dialect and provides the pt-BR display formatting helpers used by
// the dashboard's presentation layer.
package exporter
