package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripFences(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", `{"a":1}`, `{"a":1}`},
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"bare fence", "```\n[1,2]\n```", `[1,2]`},
		{"whitespace", "  \n[1]\n ", `[1]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripFences(tt.in))
		})
	}
}

func TestDecodeArray(t *testing.T) {
	var got []map[string]string
	err := DecodeArray("Here are the flags:\n[{\"severity\":\"info\"}]\nDone.", &got)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "info", got[0]["severity"])

	err = DecodeArray("nothing to see", &got)
	assert.ErrorIs(t, err, ErrNoJSON)
}

func TestDecodeObject(t *testing.T) {
	var got struct {
		Title string `json:"title"`
	}
	require.NoError(t, DecodeObject("```json\n{\"title\":\"Plans A\"}\n```", &got))
	assert.Equal(t, "Plans A", got.Title)
}
