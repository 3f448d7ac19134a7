package domain

// Skin is a character skin identity, persisted as its integer value.
type Skin int

const (
	Skin0 Skin = iota + 1
	Skin1
	Skin2
	Skin3
	Skin4
	Skin5
	Skin6
	Skin7
	Skin8
	Skin9
)

// DefaultSkin is the skin every profile starts with.
const DefaultSkin = Skin0
