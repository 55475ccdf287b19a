package servo

import (
	"errors"
	"io"
	"log"

	"dynamixel/protocol1"
	"dynamixel/protocol2"
	"dynamixel/transport"
)

// Discover sweeps transport.StandardBaudRates, broadcasting a Ping at each
// rate and collecting every Pong that arrives before the bus goes quiet.
// Per-baud failures (an unsupported rate, a malformed reply from a noisy
// line) are logged and skipped rather than aborting the whole sweep.
func Discover(bus transport.ByteInterface, proto Protocol, logger *log.Logger) []ServoInfo {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	var found []ServoInfo
	for _, rate := range transport.StandardBaudRates {
		if err := bus.SetBaudRate(rate); err != nil {
			logger.Printf("dynamixel: discover: baud %d unsupported: %v", rate, err)
			continue
		}
		if err := bus.Flush(); err != nil {
			logger.Printf("dynamixel: discover: baud %d: flush failed: %v", rate, err)
			continue
		}
		if err := broadcastPing(bus, proto); err != nil {
			logger.Printf("dynamixel: discover: baud %d: ping write failed: %v", rate, err)
			continue
		}

		for {
			info, err := readPong(bus, proto)
			if err != nil {
				if isTimeout(err) {
					break
				}
				logger.Printf("dynamixel: discover: baud %d: malformed response: %v", rate, err)
				continue
			}
			found = append(found, info)
		}
	}
	return found
}

func broadcastPing(bus transport.ByteInterface, proto Protocol) error {
	if proto == ProtocolOne {
		return bus.Write(protocol1.Serialize(protocol1.Broadcast(), protocol1.Ping{}))
	}
	return bus.Write(protocol2.Serialize(protocol2.Broadcast(), protocol2.Ping{}))
}

func readPong(bus transport.ByteInterface, proto Protocol) (ServoInfo, error) {
	if proto == ProtocolOne {
		d := protocol1.NewDeserializer()
		if err := readFrame(bus, d); err != nil {
			return ServoInfo{}, err
		}
		if pe := d.ProcessingError(); pe != nil {
			return ServoInfo{}, pe
		}
		params, err := d.Build()
		if err != nil {
			return ServoInfo{}, err
		}
		return infoFromProtocol1(d.ID(), params), nil
	}

	d := protocol2.NewDeserializer()
	if err := readFrame(bus, d); err != nil {
		return ServoInfo{}, err
	}
	if pe := d.ProcessingError(); pe != nil {
		return ServoInfo{}, pe
	}
	params, err := d.Build()
	if err != nil {
		return ServoInfo{}, err
	}
	return infoFromProtocol2(d.ID(), params), nil
}

func isTimeout(err error) bool {
	var ce transport.CommunicationError
	if errors.As(err, &ce) {
		return ce.Kind == transport.TimedOut
	}
	return false
}
