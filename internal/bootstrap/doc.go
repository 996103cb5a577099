// Package bootstrap loads configuration and wires the registry runtime.
package bootstrap
