package data

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"homescout/client-app/pkg/model"
)

//go:embed bundled_properties.json
var bundledPropertiesJSON []byte

// loadBundledProperties decodes the statically bundled listings shipped with
// the client. These are available before any network call completes and stay
// immutable for the session.
func loadBundledProperties() ([]model.Property, error) {
	var properties []model.Property
	if err := json.Unmarshal(bundledPropertiesJSON, &properties); err != nil {
		return nil, fmt.Errorf("failed to parse bundled properties: %w", err)
	}
	return properties, nil
}
