package document

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// ErrTrailingData is returned by Decode when more than one JSON value is present.
var ErrTrailingData = errors.New("unexpected data after JSON object")

// Decode reads exactly one JSON value from r into a Document. Numbers are
// kept as json.Number so integers beyond float64 precision survive.
func Decode(r io.Reader) (Document, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var d Document
	if err := dec.Decode(&d); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrTrailingData, err)
		}
		return nil, ErrTrailingData
	}
	return d, nil
}
