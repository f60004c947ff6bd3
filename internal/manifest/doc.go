// Package manifest reads the optional starter.yaml a starter may ship at its
// root. The file is validated against an embedded JSON Schema before it is
// decoded.
package manifest
