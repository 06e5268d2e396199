package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"audiodrop/internal/model"
)

func TestEncodeDecode_RoundTrip(t *testing.T) {
	at := model.Timestamp(time.Date(2024, 3, 1, 10, 30, 0, 123456789, time.UTC))
	tests := []struct {
		name    string
		records []model.AudioRecord
	}{
		{"empty", []model.AudioRecord{}},
		{"single", []model.AudioRecord{{ID: "a1", Name: "a.mp3", URL: "data:audio/mpeg;base64,AAAA", UploadedAt: at, Size: 3}}},
		{"ordered", []model.AudioRecord{
			{ID: "z", Name: "z.mp3", URL: "data:audio/mpeg;base64,", UploadedAt: at, Size: 0},
			{ID: "a", Name: "a.mp3", URL: "data:audio/mpeg;base64,AQID", UploadedAt: at.Add(time.Second), Size: 1048576},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := Encode(tt.records)
			require.NoError(t, err)

			got, err := Decode(b)
			require.NoError(t, err)
			assert.Equal(t, tt.records, got)
		})
	}
}

func TestEncode_NilIsEmptyArray(t *testing.T) {
	b, err := Encode(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(b))
}

func TestEncode_FieldNames(t *testing.T) {
	b, err := Encode([]model.AudioRecord{{ID: "x", Name: "n", URL: "u", UploadedAt: time.Date(2024, 1, 2, 3, 4, 5, 6000000, time.UTC), Size: 9}})
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"x","name":"n","url":"u","uploadedAt":"2024-01-02T03:04:05.006Z","size":9}]`, string(b))
}

func TestDecode_Corrupt(t *testing.T) {
	got, err := Decode([]byte(`{not json`))
	assert.ErrorIs(t, err, ErrCorrupt)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestDecode_EmptyAndNull(t *testing.T) {
	got, err := Decode(nil)
	assert.NoError(t, err)
	assert.Empty(t, got)

	got, err = Decode([]byte("null"))
	assert.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
