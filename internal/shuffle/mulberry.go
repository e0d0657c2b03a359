package shuffle

const (
	mulberryIncrement = 0x6D2B79F5
	twoPow32          = 4294967296.0
)

// Mulberry32 is a small 32-bit seeded generator. Two generators built from the
// same seed produce the same stream on every platform.
type Mulberry32 struct {
	state uint32
}

func NewMulberry32(seed uint32) *Mulberry32 {
	return &Mulberry32{state: seed}
}

// Next advances the generator and returns the next 32-bit output.
// Go's uint32 multiply keeps only the low 32 bits, which is exactly the
// truncating multiply the mixing steps rely on.
func (m *Mulberry32) Next() uint32 {
	m.state += mulberryIncrement
	t := m.state
	t = (t ^ (t >> 15)) * (t | 1)
	t ^= t + (t^(t>>7))*(t|61)
	return t ^ (t >> 14)
}

// Float64 returns the next output scaled into [0, 1).
func (m *Mulberry32) Float64() float64 {
	return float64(m.Next()) / twoPow32
}

// IntN returns floor(Float64() * n). n must be positive.
func (m *Mulberry32) IntN(n int) int {
	return int(m.Float64() * float64(n))
}
