// Package platform wraps the filesystem calls used to record a reference to
// a source file: symbolic links, hard links, and plain-text pointer files
// for filesystems that support neither. It also classifies why a link call
// failed, using the platform's errno values, so fallbacks can be reported.
package platform
