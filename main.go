// Package main serves as the entry point for the connstring application.
// It resolves user-supplied database connection strings into well-formed
// http/https endpoints, filling missing components from configurable
// defaults.
package main

import "connstring/cmd"

func main() {
	cmd.Execute()
}
