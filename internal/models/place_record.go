package models

import (
	"fmt"
)

// PlaceRecord is the stored form of the saved place: one opaque JSON blob
// under a fixed record name.
type PlaceRecord struct {
	RecordName  string `dynamodbav:"recordName"`
	Payload     string `dynamodbav:"payload"`
	LastUpdated int64  `dynamodbav:"lastUpdated"`
}

// Validate checks if a PlaceRecord's fields are valid
func (r *PlaceRecord) Validate() error {
	if r.RecordName == "" {
		return fmt.Errorf("record name is required")
	}

	if r.Payload == "" {
		return fmt.Errorf("payload is required")
	}

	return nil
}
