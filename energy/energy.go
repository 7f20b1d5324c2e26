// Package energy converts between the energy ratios a link budget is quoted
// in: SNR in a noise bandwidth, C/No, Es/No, Ec/No and Eb/No. All values are
// in dB (C/No in dB-Hz) and every conversion is a plain algebraic identity
// with an exact inverse.
//
// Bandwidths, rates, bits per symbol and code rates must be positive; the
// functions do not check this.
package energy

import (
	"math"

	"github.com/jrwynneiii/linkbudget/modulation"
)

func db(x float64) float64 {
	return 10.0 * math.Log10(x)
}

// SNRToCOverNo returns C/No for an SNR measured in noiseBandwidthHz.
func SNRToCOverNo(snrDB, noiseBandwidthHz float64) float64 {
	return snrDB + db(noiseBandwidthHz)
}

func COverNoToSNR(cnoDBHz, noiseBandwidthHz float64) float64 {
	return cnoDBHz - db(noiseBandwidthHz)
}

func COverNoToEsOverNo(cnoDBHz, symbolRate float64) float64 {
	return cnoDBHz - db(symbolRate)
}

func EsOverNoToCOverNo(esnoDB, symbolRate float64) float64 {
	return esnoDB + db(symbolRate)
}

// EsOverNoToEbOverNo spreads a symbol's energy over the k*R information
// bits it carries.
func EsOverNoToEbOverNo(esnoDB float64, mod modulation.Modulation, codeRate float64) float64 {
	return esnoDB - db(mod.BitsPerSymbol()) - db(codeRate)
}

func EbOverNoToEsOverNo(ebnoDB float64, mod modulation.Modulation, codeRate float64) float64 {
	return ebnoDB + db(mod.BitsPerSymbol()) + db(codeRate)
}

// EsOverNoToEcOverNo is the energy per coded bit.
func EsOverNoToEcOverNo(esnoDB float64, mod modulation.Modulation) float64 {
	return esnoDB - db(mod.BitsPerSymbol())
}

func EcOverNoToEsOverNo(ecnoDB float64, mod modulation.Modulation) float64 {
	return ecnoDB + db(mod.BitsPerSymbol())
}

func EcOverNoToEbOverNo(ecnoDB, codeRate float64) float64 {
	return ecnoDB - db(codeRate)
}

func EbOverNoToEcOverNo(ebnoDB, codeRate float64) float64 {
	return ebnoDB + db(codeRate)
}

// COverNoToEbOverNo goes straight from C/No to Eb/No using the information
// bit rate.
func COverNoToEbOverNo(cnoDBHz, infoBitRateBps float64) float64 {
	return cnoDBHz - db(infoBitRateBps)
}

func EbOverNoToCOverNo(ebnoDB, infoBitRateBps float64) float64 {
	return ebnoDB + db(infoBitRateBps)
}

// SNRToEbOverNo chains SNR -> C/No -> Es/No -> Eb/No.
func SNRToEbOverNo(snrDB, noiseBandwidthHz float64, mod modulation.Modulation, symbolRate, codeRate float64) float64 {
	cno := SNRToCOverNo(snrDB, noiseBandwidthHz)
	esno := COverNoToEsOverNo(cno, symbolRate)
	return EsOverNoToEbOverNo(esno, mod, codeRate)
}

// EbOverNoToSNR reverses SNRToEbOverNo.
func EbOverNoToSNR(ebnoDB, noiseBandwidthHz float64, mod modulation.Modulation, symbolRate, codeRate float64) float64 {
	esno := EbOverNoToEsOverNo(ebnoDB, mod, codeRate)
	cno := EsOverNoToCOverNo(esno, symbolRate)
	return COverNoToSNR(cno, noiseBandwidthHz)
}
