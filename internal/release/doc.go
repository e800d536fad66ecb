// Package release checks the viewer's latest published release on GitHub
// against the configured viewer version, caching the answer for a day.
package release
