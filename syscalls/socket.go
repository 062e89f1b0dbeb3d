package syscalls

import (
	"fmt"
	"net"
	"os"
	"syscall"
	"time"
)

// socketChannel adapts a connected net.Conn (from CONNECT or ACCEPT) to
// the Channel interface; Close closes the connection.
type socketChannel struct {
	conn net.Conn
}

func (s *socketChannel) Read(p []byte) (int, error)  { return s.conn.Read(p) }
func (s *socketChannel) Write(p []byte) (int, error) { return s.conn.Write(p) }
func (s *socketChannel) Close() error                { return s.conn.Close() }

// RawFD extracts the kernel fd backing conn, so socket fds can be
// registered with the epoll registry the same way file/pipe fds are.
func (s *socketChannel) RawFD() int {
	sc, ok := s.conn.(syscall.Conn)
	if !ok {
		return -1
	}
	raw, err := sc.SyscallConn()
	if err != nil {
		return -1
	}
	fd := -1
	raw.Control(func(descriptor uintptr) { fd = int(descriptor) })
	return fd
}

// listenerChannel is registered against the fd returned by LISTEN; its
// Read/Write are unused (ACCEPT operates on the listener directly), but it
// must still satisfy Channel to live in the shared FD table.
type listenerChannel struct {
	ln net.Listener
}

func (l *listenerChannel) Read([]byte) (int, error)  { return 0, fmt.Errorf("fd is a listener") }
func (l *listenerChannel) Write([]byte) (int, error) { return 0, fmt.Errorf("fd is a listener") }
func (l *listenerChannel) Close() error               { return l.ln.Close() }

// RawFD lets a listener be registered with epoll so EPOLLIN signals an
// incoming connection ready for ACCEPT, same mechanism as socketChannel.
func (l *listenerChannel) RawFD() int {
	sc, ok := l.ln.(syscall.Conn)
	if !ok {
		return -1
	}
	raw, err := sc.SyscallConn()
	if err != nil {
		return -1
	}
	fd := -1
	raw.Control(func(descriptor uintptr) { fd = int(descriptor) })
	return fd
}

// pendingChannel backs a fd returned by SOCKET before CONNECT or LISTEN
// gives it a real network identity, per §4.5's "socket() returns a bare
// descriptor" sequencing.
type pendingChannel struct {
	network string
}

func (pendingChannel) Read([]byte) (int, error)  { return 0, fmt.Errorf("socket not connected") }
func (pendingChannel) Write([]byte) (int, error) { return 0, fmt.Errorf("socket not connected") }
func (pendingChannel) Close() error               { return nil }

// SockOps resolves the sockets family against the shared *FDTable,
// grounded on the grounding repo's device-bus convention of returning a
// handle first and binding behavior to it in later calls.
type SockOps struct {
	fds *FDTable
}

func NewSockOps(fds *FDTable) *SockOps {
	return &SockOps{fds: fds}
}

// domainNetwork maps the socket type the bytecode passes onto Go's network
// names: SOCK_DGRAM (2) becomes "udp", anything else "tcp". The domain is
// not consulted.
func domainNetwork(socketType int) string {
	if socketType == 2 { // SOCK_DGRAM
		return "udp"
	}
	return "tcp"
}

func (s *SockOps) Socket(domain, socketType int) int {
	return s.fds.Register(pendingChannel{network: domainNetwork(socketType)})
}

func (s *SockOps) Bind(fd int, addr string) error {
	// Bind is folded into Listen for stream sockets and is a no-op marker
	// for datagram sockets, which bind implicitly on first use in Go's
	// net package; the address is stashed via Listen/Connect instead.
	_, ok := s.fds.Get(fd)
	if !ok {
		return os.ErrClosed
	}
	return nil
}

func (s *SockOps) Listen(fd int, addr string) error {
	ch, ok := s.fds.Get(fd)
	if !ok {
		return os.ErrClosed
	}
	pc, ok := ch.(pendingChannel)
	if !ok {
		return fmt.Errorf("fd already bound")
	}
	ln, err := net.Listen(pc.network, addr)
	if err != nil {
		return err
	}
	s.fds.Replace(fd, &listenerChannel{ln: ln})
	return nil
}

func (s *SockOps) Accept(fd int) (int, string, error) {
	ch, ok := s.fds.Get(fd)
	if !ok {
		return 0, "", os.ErrClosed
	}
	lc, ok := ch.(*listenerChannel)
	if !ok {
		return 0, "", fmt.Errorf("fd is not a listener")
	}
	conn, err := lc.ln.Accept()
	if err != nil {
		return 0, "", err
	}
	newFd := s.fds.Register(&socketChannel{conn: conn})
	return newFd, conn.RemoteAddr().String(), nil
}

func (s *SockOps) Connect(fd int, addr string) error {
	ch, ok := s.fds.Get(fd)
	if !ok {
		return os.ErrClosed
	}
	pc, ok := ch.(pendingChannel)
	if !ok {
		return fmt.Errorf("fd already bound")
	}
	conn, err := net.DialTimeout(pc.network, addr, 10*time.Second)
	if err != nil {
		return err
	}
	s.fds.Replace(fd, &socketChannel{conn: conn})
	return nil
}

func (s *SockOps) Send(fd int, data []byte) (int, error) {
	ch, ok := s.fds.Get(fd)
	if !ok {
		return 0, os.ErrClosed
	}
	return ch.Write(data)
}

func (s *SockOps) Recv(fd int, n int) ([]byte, error) {
	ch, ok := s.fds.Get(fd)
	if !ok {
		return nil, os.ErrClosed
	}
	buf := make([]byte, n)
	read, err := ch.Read(buf)
	if err != nil && read == 0 {
		return nil, err
	}
	return buf[:read], nil
}

// SendTo writes a single UDP datagram to addr, creating the underlying
// net.PacketConn on first use for a still-pending (unconnected) socket.
func (s *SockOps) SendTo(fd int, data []byte, addr string) (int, error) {
	ch, ok := s.fds.Get(fd)
	if !ok {
		return 0, os.ErrClosed
	}
	if pc, ok := ch.(pendingChannel); ok {
		conn, err := net.ListenPacket(pc.network, ":0")
		if err != nil {
			return 0, err
		}
		raddr, err := net.ResolveUDPAddr(pc.network, addr)
		if err != nil {
			conn.Close()
			return 0, err
		}
		n, err := conn.WriteTo(data, raddr)
		s.fds.Replace(fd, &packetChannel{conn: conn, peer: raddr})
		return n, err
	}
	if sc, ok := ch.(*socketChannel); ok {
		return sc.conn.Write(data)
	}
	return 0, fmt.Errorf("fd is not a socket")
}

func (s *SockOps) RecvFrom(fd int, n int) ([]byte, string, error) {
	ch, ok := s.fds.Get(fd)
	if !ok {
		return nil, "", os.ErrClosed
	}
	pc, ok := ch.(*packetChannel)
	if !ok {
		return nil, "", fmt.Errorf("fd is not a datagram socket")
	}
	buf := make([]byte, n)
	read, addr, err := pc.conn.ReadFrom(buf)
	if err != nil {
		return nil, "", err
	}
	return buf[:read], addr.String(), nil
}

func (s *SockOps) Shutdown(fd int) error {
	return s.fds.Close(fd)
}

// SetSockOpt/GetSockOpt only check that fd is open: SetSockOpt applies no
// option, and GetSockOpt always reports 0.
func (s *SockOps) SetSockOpt(fd int, _ int, _ int) error {
	if _, ok := s.fds.Get(fd); !ok {
		return os.ErrClosed
	}
	return nil
}

func (s *SockOps) GetSockOpt(fd int, _ int) (int, error) {
	if _, ok := s.fds.Get(fd); !ok {
		return 0, os.ErrClosed
	}
	return 0, nil
}

func (s *SockOps) GetPeerName(fd int) (string, error) {
	ch, ok := s.fds.Get(fd)
	if !ok {
		return "", os.ErrClosed
	}
	if sc, ok := ch.(*socketChannel); ok {
		return sc.conn.RemoteAddr().String(), nil
	}
	if pc, ok := ch.(*packetChannel); ok && pc.peer != nil {
		return pc.peer.String(), nil
	}
	return "", fmt.Errorf("fd has no peer")
}

func (s *SockOps) GetSockName(fd int) (string, error) {
	ch, ok := s.fds.Get(fd)
	if !ok {
		return "", os.ErrClosed
	}
	switch c := ch.(type) {
	case *socketChannel:
		return c.conn.LocalAddr().String(), nil
	case *listenerChannel:
		return c.ln.Addr().String(), nil
	case *packetChannel:
		return c.conn.LocalAddr().String(), nil
	default:
		return "", fmt.Errorf("fd has no local address")
	}
}

func (s *SockOps) GetAddrInfo(host string) ([]string, error) {
	addrs, err := net.LookupHost(host)
	if err != nil {
		return nil, err
	}
	return addrs, nil
}

// packetChannel backs a UDP fd once SENDTO has sent its first datagram on
// it; RECVFROM works only on an fd already in this state.
type packetChannel struct {
	conn net.PacketConn
	peer net.Addr
}

func (p *packetChannel) Read(buf []byte) (int, error) {
	n, _, err := p.conn.ReadFrom(buf)
	return n, err
}

func (p *packetChannel) Write(buf []byte) (int, error) {
	if p.peer == nil {
		return 0, fmt.Errorf("datagram socket has no peer, use SENDTO")
	}
	return p.conn.WriteTo(buf, p.peer)
}

func (p *packetChannel) Close() error { return p.conn.Close() }
