// Package ipc exposes the assistant's unix control socket. aura-ctl uses
// it to request a clean shutdown or force an immediate listen.
package ipc

import (
	"encoding/json"
	"fmt"
	"net"
	"os"
)

const SocketPath = "/tmp/aura.sock"

// Control commands understood by the daemon.
const (
	CmdStop    = "stop"
	CmdTrigger = "trigger"
)

type ControlMessage struct {
	Cmd string `json:"cmd"`
}

// StartServer listens on the control socket and invokes handler for each
// decoded message. Handlers run on their own goroutine; the daemon's turn
// loop is never blocked by a slow client.
func StartServer(handler func(ControlMessage)) error {
	os.Remove(SocketPath)

	ln, err := net.Listen("unix", SocketPath)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}

	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				continue
			}
			go handleConn(conn, handler)
		}
	}()

	return nil
}

func handleConn(conn net.Conn, handler func(ControlMessage)) {
	defer conn.Close()

	var msg ControlMessage
	if err := json.NewDecoder(conn).Decode(&msg); err != nil {
		return
	}
	handler(msg)
}

// SendCommand connects to a running daemon and delivers one command.
func SendCommand(cmd string) error {
	conn, err := net.Dial("unix", SocketPath)
	if err != nil {
		return err
	}
	defer conn.Close()

	return json.NewEncoder(conn).Encode(ControlMessage{Cmd: cmd})
}
