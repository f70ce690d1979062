package config

import (
	"encoding/json"
	"fmt"
	"time"
)

// Duration is a time.Duration which is written as a Go duration string ("5s",
// "2h") in settings files and environment variables
type Duration struct {
	time.Duration
}

// Decode implements envconfig.Decoder
func (d *Duration) Decode(value string) error {
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("failed to parse \"%s\" as a duration: %s", value, err.Error())
	}

	d.Duration = parsed

	return nil
}

// UnmarshalJSON accepts a duration string or a number of seconds
func (d *Duration) UnmarshalJSON(b []byte) error {
	var value interface{}
	if err := json.Unmarshal(b, &value); err != nil {
		return err
	}

	switch v := value.(type) {
	case string:
		return d.Decode(v)
	case float64:
		d.Duration = time.Duration(v * float64(time.Second))
		return nil
	default:
		return fmt.Errorf("invalid duration: %s", string(b))
	}
}

// MarshalJSON implements json.Marshaler
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}
