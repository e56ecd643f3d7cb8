// Package file provides file-based implementations of driven port interfaces.
//
// Adapters:
//   - RuleStore: TOML rule configuration, validated with go-playground/validator
package file
