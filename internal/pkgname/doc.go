// Package pkgname checks proposed project names against npm package-naming
// rules. Each rule is a JSON Schema fragment declared in the embedded
// rules.yaml; a name is usable for a new project only when it trips neither
// an error rule nor a warning rule.
package pkgname
