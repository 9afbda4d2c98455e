package pkg

import (
	"crypto/rand"
	"crypto/sha1" //nolint: gosec // required by the WebSocket handshake (RFC 6455)
	"encoding/base64"
	"encoding/hex"
	"math/big"
)

// websocketAcceptGUID is the fixed GUID from RFC 6455 section 1.3.
const websocketAcceptGUID = "258EAFA5-E914-47DA-95CA-C5AB0DC85B11"

const gameIDLength = 6

var gameIDAlphabet = []rune("ABCDEFGHJKLMNPQRSTUVWXYZ23456789")

// GenerateNewSessionID - returns a random 128-bit hex session identifier.
func GenerateNewSessionID() string {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		panic(err)
	}

	return hex.EncodeToString(buf)
}

// GenerateGameID - returns a short, human-friendly game code.
func GenerateGameID() string {
	id := make([]rune, gameIDLength)
	for i := range id {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(gameIDAlphabet))))
		if err != nil {
			panic(err)
		}
		id[i] = gameIDAlphabet[n.Int64()]
	}

	return string(id)
}

// GenerateAcceptKey - computes the Sec-WebSocket-Accept value for a
// handshake key.
func GenerateAcceptKey(key string) string {
	sum := sha1.Sum([]byte(key + websocketAcceptGUID)) //nolint: gosec // see import note
	return base64.StdEncoding.EncodeToString(sum[:])
}
