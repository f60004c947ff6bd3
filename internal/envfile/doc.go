// Package envfile writes the .env file of a freshly scaffolded project.
// Values already shipped by the starter (.env.example, .env) are kept; the
// remaining keys are filled from the invoking process environment.
package envfile
