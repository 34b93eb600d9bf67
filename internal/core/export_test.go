package core

// SetLockWait overrides the reservation lock wait and returns a function
// that restores the previous value. Tests use it to avoid multi-second
// waits on contended rows.
func SetLockWait(wait string) func() {
	prev := lockWait
	lockWait = wait
	return func() { lockWait = prev }
}
