package wlclient

import (
	"golang.org/x/sys/unix"
)

// recvBufSize is the scratch buffer size for one recv call; 4 KiB
// comfortably holds the messages this protocol subset ever produces.
const recvBufSize = 4096

// dial opens a blocking AF_UNIX/SOCK_STREAM connection to path, returning
// the raw file descriptor. golang.org/x/sys/unix is used end to end for
// the transport (instead of net.Conn) so SCM_RIGHTS ancillary data can be
// attached to sends and extracted from receives without detouring through
// syscall.UnixConn internals.
func dial(path string) (int, error) {
	fd, err := unix.Socket(unix.AF_UNIX, unix.SOCK_STREAM, 0)
	if err != nil {
		return -1, err
	}
	addr := &unix.SockaddrUnix{Name: path}
	if err := unix.Connect(fd, addr); err != nil {
		unix.Close(fd)
		return -1, err
	}
	return fd, nil
}

func closeFD(fd int) error {
	return unix.Close(fd)
}

// pollReadable reports whether fd currently has data ready to read, without
// blocking. DispatchAll uses this to stop once the socket has nothing more
// buffered instead of blocking inside recvFrame for the next message.
func pollReadable(fd int) bool {
	fds := []unix.PollFd{{Fd: int32(fd), Events: unix.POLLIN}}
	n, err := unix.Poll(fds, 0)
	return err == nil && n > 0 && fds[0].Revents&unix.POLLIN != 0
}

// sendFrame writes data to fd. When auxFD >= 0 it rides along as a single
// SCM_RIGHTS control message; otherwise this is a plain write.
func sendFrame(fd int, data []byte, auxFD int) error {
	var oob []byte
	if auxFD >= 0 {
		oob = unix.UnixRights(auxFD)
	}
	return unix.Sendmsg(fd, data, oob, nil, 0)
}

// recvFrame reads one chunk into buf, always via recvmsg with a control
// buffer sized for one fd. Returns the bytes read and the ancillary fd (or
// -1 if none arrived). n == 0 means the peer closed the connection.
func recvFrame(fd int, buf []byte) (n int, auxFD int, err error) {
	oob := make([]byte, unix.CmsgSpace(4))
	n, oobn, _, _, err := unix.Recvmsg(fd, buf, oob, 0)
	if err != nil {
		return 0, -1, err
	}
	auxFD = -1
	if oobn > 0 {
		cmsgs, perr := unix.ParseSocketControlMessage(oob[:oobn])
		if perr == nil && len(cmsgs) > 0 {
			if fds, rerr := unix.ParseUnixRights(&cmsgs[0]); rerr == nil && len(fds) > 0 {
				auxFD = fds[0]
			}
		}
	}
	return n, auxFD, nil
}
