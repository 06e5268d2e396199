// Package metadata reads embedded tags (ID3 and friends) from stored records.
package metadata

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/dhowden/tag"
	"github.com/vincent-petithory/dataurl"
)

// ErrNoTags is returned when the audio carries no readable tag block.
var ErrNoTags = errors.New("no tags found")

// Tags is the subset of tag fields the page shows.
type Tags struct {
	Format string `json:"format"`
	Title  string `json:"title,omitempty"`
	Artist string `json:"artist,omitempty"`
	Album  string `json:"album,omitempty"`
	Genre  string `json:"genre,omitempty"`
	Year   int    `json:"year,omitempty"`
	Track  int    `json:"track,omitempty"`
}

// Decode returns the media type and raw bytes of a data URL.
func Decode(url string) (string, []byte, error) {
	du, err := dataurl.DecodeString(url)
	if err != nil {
		return "", nil, fmt.Errorf("decode data url: %w", err)
	}
	return du.ContentType(), du.Data, nil
}

// FromBytes reads tags from raw audio bytes.
func FromBytes(b []byte) (*Tags, error) {
	m, err := tag.ReadFrom(bytes.NewReader(b))
	if err != nil {
		if errors.Is(err, tag.ErrNoTagsFound) {
			return nil, ErrNoTags
		}
		return nil, fmt.Errorf("read tags: %w", err)
	}
	track, _ := m.Track()
	return &Tags{
		Format: string(m.Format()),
		Title:  m.Title(),
		Artist: m.Artist(),
		Album:  m.Album(),
		Genre:  m.Genre(),
		Year:   m.Year(),
		Track:  track,
	}, nil
}

// FromDataURL reads tags from a record's data URL.
func FromDataURL(url string) (*Tags, error) {
	_, b, err := Decode(url)
	if err != nil {
		return nil, err
	}
	return FromBytes(b)
}
