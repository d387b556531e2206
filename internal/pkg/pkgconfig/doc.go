// Package pkgconfig provides a small abstraction for reading configuration values.
//
// Values come from a YAML file read by Viper and can be overridden by
// environment variables, where dots in a key become underscores
// (server.address.http -> SERVER_ADDRESS_HTTP). Business code depends on the
// Config interface so it stays easy to test.
package pkgconfig
