package main

// Exit statuses follow sysexits, matching the other olad tools: a usage
// problem, a missing input file, and a corrupt show file are all
// distinguishable to callers.
const (
	ExitOK      = 0
	ExitUsage   = 64
	ExitDataErr = 65
	ExitNoInput = 66
)
