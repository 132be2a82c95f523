// Package config loads, normalizes, and validates captionbox configuration.
//
// It supplies defaults for the render surface, the parser and logging, reads
// TOML files from the usual locations and rejects values the layout engine or
// the decoder cannot work with. Commands obtain their settings here so flags
// only need to override what the user asked for.
package config
