package object

// PowerupKind is a timed modifier granted by catching a power-up orb.
type PowerupKind int

const (
	PowerupShield   PowerupKind = iota // Negates the mismatched-color penalty
	PowerupSlowTime                    // Slows non-power-up orbs and spawning
	PowerupMagnet                      // Pulls matching orbs toward the paddle
)

// PowerupKinds lists every kind in a fixed order.
var PowerupKinds = [...]PowerupKind{PowerupShield, PowerupSlowTime, PowerupMagnet}

func (k PowerupKind) String() string {
	switch k {
	case PowerupShield:
		return "shield"
	case PowerupSlowTime:
		return "clock"
	case PowerupMagnet:
		return "magnet"
	default:
		return "unknown"
	}
}

// Fill returns the display color for the power-up orb.
func (k PowerupKind) Fill() string {
	switch k {
	case PowerupShield:
		return FillShield
	case PowerupSlowTime:
		return FillClock
	default:
		return FillMagnet
	}
}
