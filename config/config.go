package config

type LinkConf struct {
	Name         string   `koanf:"name"`
	BandwidthHz  float64  `koanf:"bandwidth_hz"`
	FadeMarginDB *float64 `koanf:"fade_margin_db"`
}

type TransmitterConf struct {
	OutputPowerDBm float64 `koanf:"output_power_dbm"`
	GainDB         float64 `koanf:"gain_db"`
	BandwidthHz    float64 `koanf:"bandwidth_hz"`
}

type ReceiverConf struct {
	GainDB        float64 `koanf:"gain_db"`
	TemperatureK  float64 `koanf:"temperature_k"`
	NoiseFigureDB float64 `koanf:"noise_figure_db"`
	BandwidthHz   float64 `koanf:"bandwidth_hz"`
}

// PathConf describes where the distance comes from. The first of these that
// is set wins: distance_m, the TLE pair, then altitude_m with elevation_deg.
type PathConf struct {
	FrequencyHz   float64 `koanf:"frequency_hz"`
	DistanceM     float64 `koanf:"distance_m"`
	ElevationDeg  float64 `koanf:"elevation_deg"`
	AltitudeM     float64 `koanf:"altitude_m"`
	TLELine1      string  `koanf:"tle_line1"`
	TLELine2      string  `koanf:"tle_line2"`
	StationLatDeg float64 `koanf:"station_lat_deg"`
	StationLonDeg float64 `koanf:"station_lon_deg"`
	StationAltM   float64 `koanf:"station_alt_m"`
	Epoch         string  `koanf:"epoch"` // RFC3339, defaults to now
}

// ModCodConf selects either a named DVB-S2 preset or a modulation/FEC pair.
type ModCodConf struct {
	Preset       string  `koanf:"preset"`
	Modulation   string  `koanf:"modulation"`
	Order        int     `koanf:"order"`
	FEC          string  `koanf:"fec"`
	CodeRate     float64 `koanf:"code_rate"`
	CodingGainDB float64 `koanf:"coding_gain_db"`
}

// AnalysisConf and TuiConf use pointers where zero is a meaningful setting,
// so only a missing key picks up the default.
type AnalysisConf struct {
	TargetBER            *float64 `koanf:"target_ber"`
	InfoBitRateBps       float64  `koanf:"info_bit_rate_bps"`
	ImplementationLossDB float64  `koanf:"implementation_loss_db"`
	Rolloff              *float64 `koanf:"rolloff"`
	RequiredEVMPct       float64  `koanf:"required_evm_pct"`
	MeasuredEVMPct       float64  `koanf:"measured_evm_pct"`
}

type TuiConf struct {
	RefreshMs    int      `koanf:"refresh_ms"`
	MarginWarnDB *float64 `koanf:"margin_warn_db"`
	MarginCritDB *float64 `koanf:"margin_crit_db"`
}

type Scenario struct {
	Link        LinkConf        `koanf:"link"`
	Transmitter TransmitterConf `koanf:"transmitter"`
	Receiver    ReceiverConf    `koanf:"receiver"`
	Path        PathConf        `koanf:"path"`
	ModCod      ModCodConf      `koanf:"modcod"`
	Analysis    AnalysisConf    `koanf:"analysis"`
	Tui         TuiConf         `koanf:"tui"`
}
