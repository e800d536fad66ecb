// Package platform isolates the operating-system differences the installer
// cares about: how a command is run with a variable removed from its
// environment, and file permission handling that Windows does not support.
package platform
