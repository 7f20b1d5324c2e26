package coding

import "github.com/jrwynneiii/linkbudget/modulation"

// DVB-S2 ModCods. APSK constellations are modeled with the QAM curve of the
// same order.

func DVBS2QPSK12() CodedModulation {
	return New(modulation.QPSK(), LDPC(0.5))
}

func DVBS2QPSK34() CodedModulation {
	return New(modulation.QPSK(), LDPC(0.75))
}

func DVBS28PSK23() CodedModulation {
	return New(modulation.MPSK(8), LDPC(2.0/3.0))
}

func DVBS216APSK34() CodedModulation {
	return New(modulation.MQAM(16), LDPC(0.75))
}

func DVBS232APSK56() CodedModulation {
	return New(modulation.MQAM(32), LDPC(5.0/6.0))
}

// Preset pairs a ModCod with the name it is listed under.
type Preset struct {
	Name   string
	ModCod CodedModulation
}

// DVBS2Presets lists the ModCods above in order of spectral efficiency.
func DVBS2Presets() []Preset {
	return []Preset{
		{"QPSK 1/2", DVBS2QPSK12()},
		{"QPSK 3/4", DVBS2QPSK34()},
		{"8PSK 2/3", DVBS28PSK23()},
		{"16APSK 3/4", DVBS216APSK34()},
		{"32APSK 5/6", DVBS232APSK56()},
	}
}

// LookupPreset finds a preset by its listed name.
func LookupPreset(name string) (CodedModulation, bool) {
	for _, p := range DVBS2Presets() {
		if p.Name == name {
			return p.ModCod, true
		}
	}
	return CodedModulation{}, false
}
