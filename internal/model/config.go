package model

// ColumnDetectionMode selects how the Column Boundary Detector locates
// gutters.
type ColumnDetectionMode string

const (
	ColumnDetectionAnchor ColumnDetectionMode = "anchor"
	ColumnDetectionFixed  ColumnDetectionMode = "fixed"
	ColumnDetectionAuto   ColumnDetectionMode = "auto"
)

// Config carries every tunable the pipeline recognizes. Zero-value Config
// is invalid; always obtain one from DefaultConfig() and override fields.
// engine.NewConfig checks a Config against its validate tags.
type Config struct {
	StrictValidation        bool `validate:"-"`
	AutoStitchMultiLine     bool `validate:"-"`
	DetectMergedPDFs        bool `validate:"-"`
	LocaleDetection         string              `validate:"required"`
	ColumnDetection         ColumnDetectionMode `validate:"required,oneof=anchor fixed auto"`
	AutoReverseChronological bool `validate:"-"`
	ValidateDateSequence    bool `validate:"-"`
	EnableCategorization    bool `validate:"-"`
	EnableCurrencyDetection bool `validate:"-"`
	LocalCurrency           string  `validate:"required,len=3"`
	ColumnOverlapThreshold  float64 `validate:"gte=0,lte=1"`
	RowGapThreshold         float64 `validate:"gte=0"`
	ConfidenceThreshold     float64 `validate:"gte=0,lte=1"`

	// ExchangeRates overrides the built-in USD-pivoted static table when
	// non-nil. Keys are ISO-4217 codes, values are "units of code per USD".
	ExchangeRates map[string]float64 `validate:"-"`
}

// DefaultConfig returns the documented defaults from the external
// interfaces (auto locale, auto columns, strict validation on, etc.).
func DefaultConfig() Config {
	return Config{
		StrictValidation:         true,
		AutoStitchMultiLine:      true,
		DetectMergedPDFs:         true,
		LocaleDetection:          "auto",
		ColumnDetection:          ColumnDetectionAuto,
		AutoReverseChronological: true,
		ValidateDateSequence:     true,
		EnableCategorization:     true,
		EnableCurrencyDetection:  true,
		LocalCurrency:            "USD",
		ColumnOverlapThreshold:   0.3,
		RowGapThreshold:          20,
		ConfidenceThreshold:      0.7,
	}
}
