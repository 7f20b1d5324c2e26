package evm

// QuantizationSNRDB is the ideal SNR of an ADC with the given resolution,
// 6.02*bits + 1.76 dB for a full-scale sine.
func QuantizationSNRDB(bits float64) float64 {
	return 6.02*bits + 1.76
}

// ENOB is the effective number of bits implied by a measured SNR.
func ENOB(snrDB float64) float64 {
	return (snrDB - 1.76) / 6.02
}
