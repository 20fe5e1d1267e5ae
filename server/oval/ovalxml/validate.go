package ovalxml

import (
	"fmt"
	"io"

	rtvalidator "github.com/mattermost/xml-roundtrip-validator"
)

// Validate checks that the XML read from r survives an encoding/xml round
// trip unchanged. Documents that don't are rejected before parsing, as they
// can be interpreted differently by other XML consumers.
func Validate(r io.Reader) error {
	if err := rtvalidator.Validate(r); err != nil {
		return fmt.Errorf("xml failed round-trip validation: %w", err)
	}
	return nil
}
