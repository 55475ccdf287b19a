// Command dxlctl is a minimal example client: it opens a real serial port
// and either pings one servo or runs a full baud-rate discovery sweep.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"dynamixel/protocol2"
	"dynamixel/servo"
	"dynamixel/transport"
	"dynamixel/transport/serialport"
)

func main() {
	port := flag.String("port", "/dev/ttyUSB0", "serial device path")
	baud := flag.Uint("baud", 1000000, "baud rate to open the port at and to ping at (when -discover is not set)")
	id := flag.Uint("id", 1, "servo id to ping (Protocol 2)")
	discover := flag.Bool("discover", false, "sweep every standard baud rate and list responding servos")
	flag.Parse()

	bus, err := serialport.Open(*port, transport.BaudRate(*baud), 0)
	if err != nil {
		log.Fatalf("dxlctl: open %s: %v", *port, err)
	}
	defer bus.Close()

	if *discover {
		logger := log.New(os.Stderr, "dxlctl: ", log.LstdFlags)
		found := servo.Discover(bus, servo.ProtocolTwo, logger)
		for _, info := range found {
			fmt.Printf("id=%d model=%#04x firmware=%#02x\n", info.ID, info.ModelNumber, info.FirmwareVersion)
		}
		return
	}

	servoID, err := protocol2.NewServoID(uint8(*id))
	if err != nil {
		log.Fatalf("dxlctl: %v", err)
	}

	s := servo.NewV2(servoID, transport.BaudRate(*baud))
	info, err := s.Ping(bus)
	if err != nil {
		log.Fatalf("dxlctl: ping: %v", err)
	}
	fmt.Printf("id=%d model=%#04x firmware=%#02x\n", info.ID, info.ModelNumber, info.FirmwareVersion)
}
