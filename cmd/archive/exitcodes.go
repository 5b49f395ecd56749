package main

// Exit codes shared by all commands
const (
	ExitSuccess     = 0 // Success
	ExitError       = 1 // General error (invalid arguments, runtime failure, record not found)
	ExitConfigError = 2 // Configuration error (unreadable config, invalid paths)
	ExitDataError   = 3 // Data error (malformed archive file, invalid record)
)
