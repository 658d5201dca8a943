package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Coordinate is a longitude or latitude kept as its decimal text.
type Coordinate string

// UnmarshalJSON accepts either a JSON string or a bare JSON number and keeps
// the literal digits, so no float rounding happens on the way in.
func (c *Coordinate) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("decoding coordinate: %w", err)
		}
		*c = Coordinate(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("decoding coordinate %s: %w", data, err)
	}
	*c = Coordinate(n.String())
	return nil
}

func (c Coordinate) String() string {
	return string(c)
}

type Location struct {
	Lng Coordinate `json:"lng"`
	Lat Coordinate `json:"lat"`
}

type Place struct {
	Name     string   `json:"name"`
	Location Location `json:"location"`
	Address  string   `json:"formatted_address"`
}

// PlaceResponse is the payload of the place search endpoint.
type PlaceResponse struct {
	Status string  `json:"status"`
	Query  string  `json:"query,omitempty"`
	Places []Place `json:"places"`
}
