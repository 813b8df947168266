package gamemap

import "golang.org/x/crypto/blake2b"

// Digest fingerprints the terrain layout and exploration state so an
// archived run can be matched against a replay.
func (m *Map) Digest() [32]byte {
	buf := make([]byte, 0, 8+2*len(m.tiles))
	buf = append(buf,
		byte(m.Width>>24), byte(m.Width>>16), byte(m.Width>>8), byte(m.Width),
		byte(m.Height>>24), byte(m.Height>>16), byte(m.Height>>8), byte(m.Height),
	)
	for i, t := range m.tiles {
		var r byte
		if m.revealed[i] {
			r = 1
		}
		buf = append(buf, byte(t.Type), r)
	}
	return blake2b.Sum256(buf)
}
