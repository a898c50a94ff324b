package engine

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/ledgerscan/statement-engine/internal/model"
)

var validate = validator.New()

// NewConfig validates a Config against its struct tags and returns a
// shape error (never a panic) when a field is out of range. Callers that
// already trust their Config (e.g. model.DefaultConfig() untouched) may
// skip this and pass the Config straight to ProcessDocument, which calls
// it internally regardless.
func NewConfig(cfg model.Config) (model.Config, error) {
	if err := validate.Struct(cfg); err != nil {
		return cfg, fmt.Errorf("engine: invalid config: %w", err)
	}
	return cfg, nil
}
