package server

import "time"

// Every payload on this API is a small JSON body, so reads get a tight
// limit while idle keep-alive connections from a clubhouse tablet can
// linger.
const (
	readTimeout  = 5 * time.Second
	writeTimeout = 10 * time.Second
	idleTimeout  = 120 * time.Second
)

// shutdownTimeout is a var so shutdown tests can shrink it.
var shutdownTimeout = 10 * time.Second
