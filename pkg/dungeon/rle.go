package dungeon

// This file implements spec §6's persisted-state layout: a row-major
// run-length encoding of a byte stream, with the terminal flush the spec
// explicitly calls out as a known historical defect in naive
// implementations (spec §9, §8 scenario 6). New code: the algorithm is
// fully described by the spec itself rather than grounded on a specific
// teacher file, since the teacher has no analogous wire-format codec;
// the run/value pair shape mirrors the MarshalJSON custom-encoding
// pattern in pkg/game/map.go (a small, explicit byte-oriented encoder
// rather than reflection-based serialization).

// RunPair is one (run_length, value) pair in an encoded stream.
type RunPair struct {
	RunLength uint8
	Value     byte
}

// EncodeRLE walks stream and emits (run_length, value) pairs whenever the
// value changes or the run would overflow the 8-bit counter. It flushes
// the final pending run at the end of the scan — the fix for the
// documented missing-terminal-flush bug.
func EncodeRLE(stream []byte) []RunPair {
	if len(stream) == 0 {
		return nil
	}

	var out []RunPair
	current := stream[0]
	run := uint8(1)

	for i := 1; i < len(stream); i++ {
		if stream[i] == current && run < 255 {
			run++
			continue
		}
		out = append(out, RunPair{RunLength: run, Value: current})
		current = stream[i]
		run = 1
	}

	// Terminal flush: without this, the final run is silently dropped.
	out = append(out, RunPair{RunLength: run, Value: current})

	return out
}

// DecodeRLE expands a stream of RunPairs back into the original byte
// stream. Idempotent: decoding twice (after re-encoding) yields the same
// bytes, satisfying spec §8's "RLE round-trip" property.
func DecodeRLE(pairs []RunPair) []byte {
	var out []byte
	for _, p := range pairs {
		for i := uint8(0); i < p.RunLength; i++ {
			out = append(out, p.Value)
		}
	}
	return out
}
