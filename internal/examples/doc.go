// Package examples downloads a library's source archive and extracts its
// example scripts into a local directory.
package examples
