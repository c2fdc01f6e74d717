package core

import (
	"bytes"
	"encoding/json"
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// StatsSnapshot holds the aggregate counters shown on the stats card.
// JSON field names match the stats endpoint verbatim.
type StatsSnapshot struct {
	FeedCountTotal  Count `json:"feedCountTotal"`
	FeedCount3Days  Count `json:"feedCount3days"`
	FeedCount10Days Count `json:"feedCount10days"`
	FeedCount30Days Count `json:"feedCount30days"`
	FeedCount60Days Count `json:"feedCount60days"`
	FeedCount90Days Count `json:"feedCount90days"`
}

// Count is a display-formatted counter such as "4,000,000".
//
// The stats endpoint normally sends preformatted strings; a bare JSON
// number is accepted as well and formatted with English digit grouping.
type Count string

var countPrinter = message.NewPrinter(language.English)

// FormatCount formats n with English digit grouping.
func FormatCount(n int64) Count {
	return Count(countPrinter.Sprintf("%d", n))
}

// String implements fmt.Stringer.
func (c Count) String() string {
	return string(c)
}

// UnmarshalJSON accepts a JSON string or a JSON integer.
func (c *Count) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*c = ""
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*c = Count(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("count must be a string or number: %w", err)
	}
	i, err := n.Int64()
	if err != nil {
		return fmt.Errorf("count %q is not an integer: %w", n, err)
	}
	*c = FormatCount(i)
	return nil
}
