package sim

import "github.com/pitchside-data/tracklab/internal/pitch"

// Role pairs a player's role code with the home position the
// simulator pulls them back towards.
type Role struct {
	Code string
	Home pitch.Point
}

// DefaultSquad returns an eleven-player 4-4-2: keeper deep, two banks
// of four, two forwards. Home positions all sit inside the default
// pitch bounds.
func DefaultSquad() []Role {
	return []Role{
		{Code: "GK", Home: pitch.Point{X: 0, Y: -45}},
		{Code: "LB", Home: pitch.Point{X: -20, Y: -30}},
		{Code: "LCB", Home: pitch.Point{X: -7, Y: -35}},
		{Code: "RCB", Home: pitch.Point{X: 7, Y: -35}},
		{Code: "RB", Home: pitch.Point{X: 20, Y: -30}},
		{Code: "LM", Home: pitch.Point{X: -20, Y: 0}},
		{Code: "LCM", Home: pitch.Point{X: -7, Y: -5}},
		{Code: "RCM", Home: pitch.Point{X: 7, Y: -5}},
		{Code: "RM", Home: pitch.Point{X: 20, Y: 0}},
		{Code: "LS", Home: pitch.Point{X: -8, Y: 25}},
		{Code: "RS", Home: pitch.Point{X: 8, Y: 25}},
	}
}

// PlayerInfo is the static per-player metadata record, joined to
// trajectories by PlayerID.
type PlayerInfo struct {
	PlayerID    string
	ShirtNumber int
	Age         int
	HeightCM    int
	WeightKG    int
}

// GeneratePlayerInfo produces one metadata record per role. Shirt
// numbers are a random permutation of 1..99 taken without
// replacement, so any squad of up to 99 players gets distinct
// numbers. Panics if the squad is larger than 99.
func GeneratePlayerInfo(squad []Role, rng Source) []PlayerInfo {
	if len(squad) > 99 {
		panic("sim: squad larger than available shirt numbers")
	}
	shirts := rng.Perm(99)

	infos := make([]PlayerInfo, len(squad))
	for i, role := range squad {
		infos[i] = PlayerInfo{
			PlayerID:    role.Code,
			ShirtNumber: shirts[i] + 1, // Perm yields 0..98
			Age:         18 + rng.Intn(18),
			HeightCM:    165 + rng.Intn(31),
			WeightKG:    60 + rng.Intn(36),
		}
	}
	return infos
}
