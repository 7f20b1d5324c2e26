package units

import "math"

// DbToLinear converts a power ratio in dB to linear.
func DbToLinear(db float64) float64 {
	return math.Pow(10, db/10.0)
}

// LinearToDb converts a linear power ratio to dB. ratio must be > 0.
func LinearToDb(ratio float64) float64 {
	return 10.0 * math.Log10(ratio)
}

func WattsToDbm(watts float64) float64 {
	return 10.0 * (math.Log10(watts) + 3.0)
}

func DbmToWatts(dbm float64) float64 {
	return math.Pow(10, (dbm-30.0)/10.0)
}

func DbwToDbm(dbw float64) float64 {
	return dbw + 30.0
}

func DbmToDbw(dbm float64) float64 {
	return dbm - 30.0
}
