// Package internaldefs holds the metric name, help text, and bucket
// boundary definitions shared by every exporter implementation.
//
// Both the Prometheus and OTel exporters read these tables so that metric
// names and histogram boundaries stay identical across backends; a change
// here changes all exporters at once.
//
// # What this package must NOT do
//
//   - Import any exporter package.
//   - Perform I/O.
package internaldefs
