package handler

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// flexFloat accepts a JSON number or a numeric string.
// Anything unparseable decodes to 0, which the domain treats as absent.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = 0
		return nil
	}

	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*f = flexFloat(n)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if v, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			*f = flexFloat(v)
			return nil
		}
	}

	*f = 0
	return nil
}

// flexString accepts a JSON string or number. Pincodes arrive both ways.
type flexString string

func (s *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)

	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		*s = flexString(str)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*s = flexString(n.String())
		return nil
	}

	*s = ""
	return nil
}
