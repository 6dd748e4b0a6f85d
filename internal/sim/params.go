package sim

// Params carries every tunable constant of the play and drive model.
// The defaults encode the intended game balance; several of the breakpoints
// are empirically tuned, so change them deliberately.
type Params struct {
	// Possessions per team in regulation. The second half begins after
	// each team has had half of them (rounded up), with the ball spotted
	// at the kickoff position.
	RegulationPossessions int

	// Field positions handed to a fresh offense.
	KickoffFieldPos  int // after scores and to open halves
	OvertimeFieldPos int // overtime possessions start at midfield

	PassRate float64 // run/pass call split on normal downs

	// Pass play model.
	SackRate            float64
	SackYardsMean       float64
	SackYardsStd        float64
	SackYardsCap        int // largest loss a sack can produce
	CompletionRate      float64
	InterceptionRate    float64 // drawn only when the completion check fails
	PassYardsMean       float64
	PassYardsStd        float64
	PassAdvantageFactor float64 // rating-gap shift on completed yardage mean
	PassAmplifyK        float64 // big-play tail: y + k*y^pow on positive draws
	PassAmplifyPow      float64

	// Run play model.
	FumbleRate         float64
	RunYardsMean       float64
	RunYardsStd        float64
	RunAdvantageFactor float64
	RunAmplifyK        float64
	RunAmplifyPow      float64

	PuntNetYards int // net punting distance from the kick point

	// Home-field advantage as a flat rating bonus; 0 disables. Never
	// applied on neutral-site games.
	HomeFieldBonus int
}

// DefaultParams returns the tuned defaults.
func DefaultParams() *Params {
	return &Params{
		RegulationPossessions: 11,
		KickoffFieldPos:       20,
		OvertimeFieldPos:      50,

		PassRate: 0.50,

		SackRate:            0.06,
		SackYardsMean:       5.5,
		SackYardsStd:        1.5,
		SackYardsCap:        12,
		CompletionRate:      0.62,
		InterceptionRate:    0.075,
		PassYardsMean:       6.2,
		PassYardsStd:        7.0,
		PassAdvantageFactor: 0.35,
		PassAmplifyK:        0.011,
		PassAmplifyPow:      1.9,

		FumbleRate:         0.015,
		RunYardsMean:       4.1,
		RunYardsStd:        5.2,
		RunAdvantageFactor: 0.28,
		RunAmplifyK:        0.008,
		RunAmplifyPow:      2.0,

		PuntNetYards: 40,

		HomeFieldBonus: 0,
	}
}
