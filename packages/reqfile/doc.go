// Package reqfile parses YAML files that describe requests for the CLI and
// builds configured request.Request values from them.
package reqfile
