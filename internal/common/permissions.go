package common

// File permission constants for files written by the tool
const (
	// FilePermissionSecure is used for the config file
	FilePermissionSecure = 0600

	// DirPermissionSecure is used for the config directory
	DirPermissionSecure = 0700
)
