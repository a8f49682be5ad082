package config

// Version is the current apisearch engine version.
// Set at build time via -ldflags, or left at its development default.
var Version = "0.1.0"

// CatalogFileExt is the canonical extension for on-disk YAML catalogs.
const CatalogFileExt = ".apisearch.yaml"

// IsTestMode is a flag for marking a process that runs under `go test`.
// No package in this module reads or sets it.
var IsTestMode = false

// Default option values (§6 Options surface). Negative depths are clamped
// to 0 by Options.Clamp at construction, never rejected (§7).
const (
	DefaultSwapOrderDepth  = 2
	DefaultComplementDepth = 2
)
