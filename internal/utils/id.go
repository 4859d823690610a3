package utils

import "github.com/oklog/ulid/v2"

// GenerateID returns a time-ordered random identifier for locally created
// records.
func GenerateID() string {
	return ulid.Make().String()
}
