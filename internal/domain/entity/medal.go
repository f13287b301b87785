package entity

// Medal is awarded for a finished walk based on its distance.
type Medal string

const (
	MedalNone   Medal = "NONE"
	MedalBronze Medal = "BRONZE"
	MedalSilver Medal = "SILVER"
	MedalGold   Medal = "GOLD"
)

// Medal thresholds in meters.
const (
	BronzeDistanceMeters = 1_000
	SilverDistanceMeters = 3_000
	GoldDistanceMeters   = 5_000
)

// MedalFor returns the medal earned by a walk of the given length.
func MedalFor(distanceMeters float64) Medal {
	switch {
	case distanceMeters >= GoldDistanceMeters:
		return MedalGold
	case distanceMeters >= SilverDistanceMeters:
		return MedalSilver
	case distanceMeters >= BronzeDistanceMeters:
		return MedalBronze
	default:
		return MedalNone
	}
}

// ParseMedal converts a stored value, falling back to MedalNone.
func ParseMedal(value string) Medal {
	switch Medal(value) {
	case MedalBronze, MedalSilver, MedalGold:
		return Medal(value)
	default:
		return MedalNone
	}
}
