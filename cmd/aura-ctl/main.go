package main

import (
	"fmt"
	"os"

	"aura/internal/ipc"
)

func main() {
	cmd := ipc.CmdTrigger
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}
	if cmd != ipc.CmdTrigger && cmd != ipc.CmdStop {
		fmt.Println("usage: aura-ctl [trigger|stop]")
		os.Exit(2)
	}

	if err := ipc.SendCommand(cmd); err != nil {
		fmt.Println("aura daemon not running:", err)
		os.Exit(1)
	}
}
