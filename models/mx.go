// Package models exposes ready-made register.Register definitions for two
// representative Dynamixel control tables: the Protocol 1 MX series and the
// Protocol 2 Pro series. Callers targeting other models build their own
// Register values with the register package directly; these exist so the
// common case needs no boilerplate.
package models

import "dynamixel/register"

// MX is the Protocol 1 MX-series control table's model number.
const MX uint16 = 0x001D

// MX-series control table registers (EEPROM/RAM addresses per the original
// control table layout).
var (
	MXTorqueEnable    = register.Bool(24, true, true)
	MXLed             = register.Bool(25, true, true)
	MXGoalPosition    = register.U16(30, true, true)
	MXPresentPosition = register.U16(36, true, false)
)
