// Package mmfile provides platform-specific helpers for mapping blob files.
package mmfile
