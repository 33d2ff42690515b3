// Package clientip extracts the real client IP address from HTTP requests,
// walking proxy headers before trusting the connection address. The result
// feeds log correlation; it is never used for trust decisions.
package clientip
