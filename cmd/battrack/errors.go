package main

import "errors"

// errStorage marks storage failures so main can map them to a distinct
// exit code.
var errStorage = errors.New("storage failure")
