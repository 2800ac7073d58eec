package watch

import "fmt"

// AccessError reports that a single file could not be fingerprinted. The
// engine skips the file for the cycle it occurred in; it is not fatal.
type AccessError struct {
	Name string
	Err  error
}

func (e *AccessError) Error() string {
	return fmt.Sprintf("access %s: %v", e.Name, e.Err)
}

func (e *AccessError) Unwrap() error { return e.Err }

// DirAccessError reports that the watched directory itself could not be
// listed. The poller treats it as fatal: watching cannot continue without a
// directory listing.
type DirAccessError struct {
	Dir string
	Err error
}

func (e *DirAccessError) Error() string {
	return fmt.Sprintf("list directory %s: %v", e.Dir, e.Err)
}

func (e *DirAccessError) Unwrap() error { return e.Err }
