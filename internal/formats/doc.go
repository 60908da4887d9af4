// Package formats pairs spectrum readers with their writers.
//
// Each supported file format registers one Format: a name, the file
// extensions it claims, and builders for its reader and writer. Hosts
// look formats up by name or path and use the registry to find the
// counterpart of a reader or writer they already hold.
package formats
