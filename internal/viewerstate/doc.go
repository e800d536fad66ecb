// Package viewerstate reads and updates the file in which running viewers
// register the port they listen on. The file is shared with the viewer
// itself, so every access holds a lock on a sibling ".lock" file.
package viewerstate
