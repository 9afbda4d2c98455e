package websocket

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"encoding/json"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestReadWriter(input []byte) (*bufio.ReadWriter, *bytes.Buffer) {
	out := &bytes.Buffer{}
	bufrw := bufio.NewReadWriter(bufio.NewReader(bytes.NewReader(input)), bufio.NewWriter(out))
	return bufrw, out
}

// maskedFrame builds a client text frame the way a browser would send it.
func maskedFrame(payload []byte, mask [4]byte) []byte {
	buf := []byte{0x80 | opCodeText, 0x80 | byte(len(payload))}
	buf = append(buf, mask[:]...)
	for i, b := range payload {
		buf = append(buf, b^mask[i%4])
	}
	return buf
}

func TestWriteFrame(t *testing.T) {
	t.Run("short payload", func(t *testing.T) {
		// Given: a small text frame
		payload := []byte(`{"action":"connect"}`)
		bufrw, out := newTestReadWriter(nil)

		// When: writing it
		err := writeFrame(bufrw, frame{isFin: true, opCode: opCodeText, length: uint64(len(payload)), payload: payload})
		require.NoError(t, err)

		// Then: the header carries fin, opcode and the 7-bit length
		raw := out.Bytes()
		require.GreaterOrEqual(t, len(raw), 2)
		assert.Equal(t, byte(0x80|opCodeText), raw[0])
		assert.Equal(t, byte(len(payload)), raw[1])
		assert.Equal(t, payload, raw[2:])
	})

	t.Run("extended 16-bit length", func(t *testing.T) {
		// Given: a payload longer than 125 bytes
		payload := []byte(strings.Repeat("x", 300))
		bufrw, out := newTestReadWriter(nil)

		// When: writing it
		err := writeFrame(bufrw, frame{isFin: true, opCode: opCodeText, length: uint64(len(payload)), payload: payload})
		require.NoError(t, err)

		// Then: the length moves into the 2-byte extension
		raw := out.Bytes()
		require.GreaterOrEqual(t, len(raw), 4)
		assert.Equal(t, byte(126), raw[1])
		assert.Equal(t, uint16(300), binary.BigEndian.Uint16(raw[2:4]))
		assert.Equal(t, payload, raw[4:])
	})
}

func TestServer_ReadRequest(t *testing.T) {
	server := &Server{}

	t.Run("unmasks a client frame", func(t *testing.T) {
		// Given: a masked text frame from a client
		want := []byte(`{"action":"game:turn"}`)
		bufrw, _ := newTestReadWriter(maskedFrame(want, [4]byte{0x12, 0x34, 0x56, 0x78}))

		// When: reading the request
		got, err := server.readRequest(bufrw)

		// Then: the payload comes back unmasked
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("close frame ends the connection", func(t *testing.T) {
		// Given: a close frame
		bufrw, _ := newTestReadWriter([]byte{0x80 | opCodeClose, 0x00})

		// When: reading the request
		_, err := server.readRequest(bufrw)

		// Then: the reader reports end of stream
		assert.ErrorIs(t, err, io.EOF)
	})

	t.Run("server frame round-trips through sendMessage", func(t *testing.T) {
		// Given: a message written by the server codec
		bufrw, out := newTestReadWriter(nil)
		require.NoError(t, server.sendMessage(bufrw, "game:new", Payload{Error: "Player is required"}))

		// When: reading the produced frame back
		readSide, _ := newTestReadWriter(out.Bytes())
		raw, err := server.readRequest(readSide)
		require.NoError(t, err)

		// Then: the original message is recovered
		var msg Message
		require.NoError(t, json.Unmarshal(raw, &msg))
		assert.Equal(t, "game:new", msg.Action)

		var payload Payload
		require.NoError(t, json.Unmarshal(msg.Payload, &payload))
		assert.Equal(t, "Player is required", payload.Error)
	})
}
