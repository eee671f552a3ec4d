// Package version holds the release version of the library and CLI.
package version

// Version is the version reported in the user agent and by "pypln version".
var Version = "0.2.0"
