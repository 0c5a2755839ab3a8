// Package infra contains technical adapters such as the geocoding
// client, metrics exporters and run-log stores. These packages should
// depend only on the interfaces defined in the core packages.
package infra
