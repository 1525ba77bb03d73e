package main

import "golang.org/x/sys/unix"

// waitReadable blocks until fd has data available or the deadline
// (milliseconds, -1 for none) elapses. The waylink package only ever
// performs non-blocking socket calls; a host driving a Connection on real
// traffic is expected to gate each Drive call on readiness like this.
func waitReadable(fd int, timeoutMs int) error {
	fds := []unix.PollFd{{Fd: int32(fd), Events: unix.POLLIN}}
	for {
		n, err := unix.Poll(fds, timeoutMs)
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return err
		}
		if n == 0 {
			return unix.ETIMEDOUT
		}
		return nil
	}
}
