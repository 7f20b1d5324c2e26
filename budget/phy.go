package budget

import (
	"fmt"
	"math"

	"github.com/jrwynneiii/linkbudget/units"
)

// PHYRate is the Shannon capacity of a channel. SNR is linear.
type PHYRate struct {
	BandwidthHz float64
	SNR         float64
}

func (p PHYRate) Bps() float64 {
	return p.BandwidthHz * math.Log2(1.0+p.SNR)
}

func (p PHYRate) Mbps() float64 {
	return p.Bps() / 1e6
}

func (p PHYRate) Gbps() float64 {
	return p.Bps() / 1e9
}

func (p PHYRate) String() string {
	return fmt.Sprintf("Bandwidth %v Hz, SNR %v (linear), PHY rate %v Mbps", p.BandwidthHz, p.SNR, p.Mbps())
}

// PFDDBWPerM2 is the power flux density at distanceM from a transmitter
// radiating eirpDBW.
func PFDDBWPerM2(eirpDBW, distanceM float64) float64 {
	return eirpDBW - 10.0*math.Log10(4.0*math.Pi*distanceM*distanceM)
}

// PFDPerMHz spreads the flux density over bandwidthMHz, in dBW/m^2/MHz.
func PFDPerMHz(eirpDBW, distanceM, bandwidthMHz float64) float64 {
	return PFDDBWPerM2(eirpDBW, distanceM) - 10.0*math.Log10(bandwidthMHz)
}

// PFDDBWPerM2 is the flux density the budget's transmitter puts at the receiver.
func (lb LinkBudget) PFDDBWPerM2() float64 {
	return PFDDBWPerM2(units.DbmToDbw(lb.Transmitter.EIRPDBm()), lb.PathLoss.DistanceM)
}
