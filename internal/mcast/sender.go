package mcast

import (
	"net"
	"strconv"
)

// Sender delivers a plain-text message to a chat group. Delivery is
// fire-and-forget; callers log errors and move on.
type Sender interface {
	Send(addr string, port int, text string) error
}

// UDPSender sends each message as a single datagram to the group address.
type UDPSender struct{}

// Send posts text to the multicast group.
func (UDPSender) Send(addr string, port int, text string) error {
	conn, err := net.Dial("udp", net.JoinHostPort(addr, strconv.Itoa(port)))
	if err != nil {
		return err
	}
	defer func() { _ = conn.Close() }()
	_, err = conn.Write([]byte(text))
	return err
}
