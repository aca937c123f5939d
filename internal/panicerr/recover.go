// Package panicerr recovers goroutine panics and abnormal exits as
// ordinary error returns.
package panicerr

// Recover runs f in a new goroutine wrapped in defer logic that turns
// any panic or runtime.Goexit into a non-nil error return.
func Recover(name string, f func() error) error {
	errch := make(chan error, 1)
	go func() {
		defer close(errch)
		defer recoverExitError(name, errch)
		defer recoverPanicError(name, errch)
		errch <- f()
	}()
	return <-errch
}
