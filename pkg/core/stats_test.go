package core

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCount_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Count
		wantErr bool
	}{
		{name: "preformatted string", input: `"4,000,000"`, want: "4,000,000"},
		{name: "placeholder string", input: `"-,---,---"`, want: "-,---,---"},
		{name: "number", input: `4000000`, want: "4,000,000"},
		{name: "small number", input: `12`, want: "12"},
		{name: "null", input: `null`, want: ""},
		{name: "float", input: `1.5`, wantErr: true},
		{name: "object", input: `{}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c Count
			err := json.Unmarshal([]byte(tt.input), &c)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, c)
		})
	}
}

func TestStatsSnapshot_DecodesServerFieldNames(t *testing.T) {
	body := `{
		"feedCountTotal": "4,000,000",
		"feedCount3days": "1,200",
		"feedCount10days": 3000,
		"feedCount30days": "9,000",
		"feedCount60days": "15,000",
		"feedCount90days": 20000
	}`

	var s StatsSnapshot
	require.NoError(t, json.Unmarshal([]byte(body), &s))

	assert.Equal(t, StatsSnapshot{
		FeedCountTotal:  "4,000,000",
		FeedCount3Days:  "1,200",
		FeedCount10Days: "3,000",
		FeedCount30Days: "9,000",
		FeedCount60Days: "15,000",
		FeedCount90Days: "20,000",
	}, s)
}

func TestFormatCount(t *testing.T) {
	assert.Equal(t, Count("0"), FormatCount(0))
	assert.Equal(t, Count("999"), FormatCount(999))
	assert.Equal(t, Count("1,000"), FormatCount(1000))
	assert.Equal(t, Count("4,123,456"), FormatCount(4123456))
}

func TestEpisodeSummary_Helpers(t *testing.T) {
	e := EpisodeSummary{FeedImage: "feed.png"}
	assert.Equal(t, "feed.png", e.Artwork())
	assert.True(t, e.PublishedAt().IsZero())

	e.Image = "ep.png"
	e.DatePublished = 1700000000
	assert.Equal(t, "ep.png", e.Artwork())
	assert.Equal(t, int64(1700000000), e.PublishedAt().Unix())
}
