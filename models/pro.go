package models

import "dynamixel/register"

// Pro is the Protocol 2 Pro-series control table's model number.
const Pro uint16 = 0xA918

// Pro-series control table registers. GoalPosition and PresentPosition are
// built with the unsigned U32 constructor rather than I32: the control
// table documents them as signed multi-turn positions, but this driver
// treats them as raw 32-bit wire values and leaves turning that into a
// signed angle to the caller, since the sign convention varies by gear
// ratio and mounting and isn't something the wire codec can assume.
var (
	ProOperatingMode    = register.U8(11, true, true)
	ProTorqueEnable     = register.Bool(562, true, true)
	ProLEDRed           = register.U8(563, true, true)
	ProLEDGreen         = register.U8(564, true, true)
	ProLEDBlue          = register.U8(565, true, true)
	ProGoalPosition     = register.U32(596, true, true)
	ProGoalTorque       = register.I16(604, true, true)
	ProPresentPosition  = register.U32(611, true, false)
	ProPresentVelocity  = register.I32(615, true, false)
	ProPresentCurrent   = register.I16(621, true, false)
)
