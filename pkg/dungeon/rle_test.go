package dungeon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeRLE_FlushesFinalRun(t *testing.T) {
	// Scenario from spec §8 #6: a 10x10 grid of all zeros (100 bytes).
	// The documented bug omits the terminal flush and writes 0 pairs;
	// the fixed implementation writes exactly one (100, 0) pair.
	stream := make([]byte, 100)

	pairs := EncodeRLE(stream)

	require.Len(t, pairs, 1)
	assert.Equal(t, uint8(100), pairs[0].RunLength)
	assert.Equal(t, byte(0), pairs[0].Value)
}

func TestEncodeRLE_SplitsOn255Overflow(t *testing.T) {
	stream := make([]byte, 300)

	pairs := EncodeRLE(stream)

	require.Len(t, pairs, 2)
	assert.Equal(t, uint8(255), pairs[0].RunLength)
	assert.Equal(t, uint8(45), pairs[1].RunLength)
}

func TestRLE_RoundTrip(t *testing.T) {
	stream := []byte{1, 1, 1, 2, 2, 3, 4, 4, 4, 4}

	decoded := DecodeRLE(EncodeRLE(stream))

	assert.Equal(t, stream, decoded)
}

func TestRLE_DecodeIsIdempotentUnderReEncode(t *testing.T) {
	stream := []byte{9, 9, 9, 9, 9, 9}

	once := DecodeRLE(EncodeRLE(stream))
	twice := DecodeRLE(EncodeRLE(once))

	assert.Equal(t, once, twice)
}

func TestEncodeRLE_EmptyStream(t *testing.T) {
	assert.Nil(t, EncodeRLE(nil))
}
