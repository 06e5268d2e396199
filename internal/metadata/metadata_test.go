package metadata

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vincent-petithory/dataurl"
)

// id3v23 builds a minimal ID3v2.3 tag with ISO-8859-1 text frames.
func id3v23(frames map[string]string, order ...string) []byte {
	var body bytes.Buffer
	for _, id := range order {
		text := frames[id]
		body.WriteString(id)
		_ = binary.Write(&body, binary.BigEndian, uint32(len(text)+1))
		body.Write([]byte{0, 0}) // flags
		body.WriteByte(0)        // encoding
		body.WriteString(text)
	}
	n := body.Len()
	var out bytes.Buffer
	out.WriteString("ID3")
	out.Write([]byte{3, 0, 0})
	out.Write([]byte{byte(n>>21&0x7f), byte(n>>14&0x7f), byte(n>>7&0x7f), byte(n&0x7f)})
	out.Write(body.Bytes())
	out.Write(make([]byte, 64)) // audio payload stand-in
	return out.Bytes()
}

func TestFromBytes(t *testing.T) {
	b := id3v23(map[string]string{"TIT2": "Hello", "TPE1": "Band", "TALB": "First"}, "TIT2", "TPE1", "TALB")

	tags, err := FromBytes(b)

	require.NoError(t, err)
	assert.Equal(t, "Hello", tags.Title)
	assert.Equal(t, "Band", tags.Artist)
	assert.Equal(t, "First", tags.Album)
	assert.Equal(t, "ID3v2.3", tags.Format)
}

func TestFromBytes_NoTags(t *testing.T) {
	_, err := FromBytes(make([]byte, 256))
	assert.ErrorIs(t, err, ErrNoTags)
}

func TestFromDataURL(t *testing.T) {
	b := id3v23(map[string]string{"TIT2": "Song"}, "TIT2")
	url := dataurl.New(b, "audio/mpeg").String()

	tags, err := FromDataURL(url)
	require.NoError(t, err)
	assert.Equal(t, "Song", tags.Title)
}

func TestDecode(t *testing.T) {
	url := dataurl.New([]byte("abc"), "audio/mpeg").String()

	ct, b, err := Decode(url)
	require.NoError(t, err)
	assert.Equal(t, "audio/mpeg", ct)
	assert.Equal(t, []byte("abc"), b)

	_, _, err = Decode("not a data url")
	assert.Error(t, err)
	_, err = FromDataURL("")
	assert.Error(t, err)
}
