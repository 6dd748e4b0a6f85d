package sim

import (
	"math"

	"github.com/google/uuid"

	"github.com/gridironlabs/gridiron/internal/league"
)

// Call is a 4th-down decision.
type Call int

const (
	CallGo Call = iota
	CallPunt
	CallFieldGoal
)

func (c Call) String() string {
	switch c {
	case CallGo:
		return "go"
	case CallPunt:
		return "punt"
	case CallFieldGoal:
		return "field_goal"
	}
	return "unknown"
}

// FourthDownCall decides between going for it, punting, and kicking, from
// field position fp, yards to go ytg, and the pointsNeeded bias pn. The
// bands are tuned values; they are not symmetric and that is intentional.
func FourthDownCall(fp, ytg, pn int) Call {
	switch {
	case fp < 40:
		if pn >= 6 && ytg <= 2 {
			return CallGo
		}
		return CallPunt
	case fp < 60:
		if ytg <= 3 {
			return CallGo
		}
		if pn >= 3 && ytg <= 5 {
			return CallGo
		}
		return CallPunt
	case fp < 70:
		if ytg <= 3 {
			return CallGo
		}
		if pn >= 6 && ytg <= 5 {
			return CallGo
		}
		return CallFieldGoal
	default:
		if ytg <= 3 || pn >= 6 {
			return CallGo
		}
		return CallFieldGoal
	}
}

// FieldGoalProb returns the make probability for an attempt of the given
// distance in yards (line of scrimmage to goal line plus 17 for the snap
// and hold). Non-increasing in distance, floored at a nonzero chance.
func FieldGoalProb(distance int) float64 {
	d := float64(distance)
	switch {
	case distance < 37:
		return 0.99
	case distance < 47:
		return 0.99 - 0.025*(d-37)
	case distance < 57:
		return 0.74 - 0.045*(d-47)
	default:
		return math.Max(0.05, 0.29-0.06*(d-57))
	}
}

// firstDownDistance is 10, or goal-to-go inside the 10.
func firstDownDistance(fp int) int {
	if fp > 90 {
		return 100 - fp
	}
	return 10
}

// simulateDrive runs one possession for off starting at startFP and returns
// the finished drive plus the starting field position handed to the next
// offense. Plays and box-score attribution are appended to the game state.
func (s *Simulator) simulateDrive(st *gameState, off, def *side, startFP, num, pointsNeeded int) (*league.Drive, int) {
	d := &league.Drive{
		ID:      uuid.New(),
		GameID:  st.g.ID,
		Num:     num,
		Offense: off.team,
		Defense: def.team,
		StartFP: startFP,
	}

	fp := startFP
	down := 1
	dist := firstDownDistance(fp)
	adv := st.advantage(off, def)
	nextFP := s.p.KickoffFieldPos

	for d.Result == league.DriveNone {
		if down == 4 {
			switch FourthDownCall(fp, dist, pointsNeeded) {
			case CallPunt:
				s.puntPlay(st, off, def, d, down, dist, fp)
				d.Result = league.DrivePunt
				if fp+s.p.PuntNetYards >= 100 {
					nextFP = s.p.KickoffFieldPos // touchback
				} else {
					nextFP = 100 - (fp + s.p.PuntNetYards)
				}
				continue
			case CallFieldGoal:
				made := s.fieldGoalPlay(st, off, def, d, down, dist, fp)
				if made {
					d.Result = league.DriveFieldGoal
					d.Points = 3
					off.score += 3
					nextFP = s.p.KickoffFieldPos
				} else {
					d.Result = league.DriveMissedFieldGoal
					nextFP = 100 - fp
				}
				continue
			}
			// CallGo: run a normal snap on 4th down.
		}

		play := &league.Play{
			ID:            uuid.New(),
			GameID:        st.g.ID,
			DriveID:       d.ID,
			Down:          down,
			Distance:      dist,
			FieldPosition: fp,
		}

		if s.rng.Float64() < s.p.PassRate {
			s.passPlay(st, off, def, play, adv)
		} else {
			s.runPlay(st, off, play, adv)
		}

		switch play.Outcome {
		case league.OutInterception:
			d.Result = league.DriveInterception
			nextFP = 100 - fp
		case league.OutFumble:
			d.Result = league.DriveFumble
			nextFP = 100 - fp
		default:
			reached := fp + play.Yards
			switch {
			case reached >= 100:
				play.Yards = 100 - fp
				play.Outcome = league.OutTouchdown
				s.creditTouchdown(st, off, play)
				d.Result = league.DriveTouchdown
				d.Points = 7
				off.score += 7
			case reached < 1:
				// Carried into their own end zone: safety, two points to
				// the defense, other team takes over at the kickoff spot.
				play.Yards = -fp
				play.Outcome = league.OutSafety
				d.Result = league.DriveSafety
				def.score += 2
			default:
				fp = reached
				if play.Yards >= dist {
					down = 1
					dist = firstDownDistance(fp)
				} else {
					down++
					dist -= play.Yards
					if down > 4 {
						d.Result = league.DriveDowns
						nextFP = 100 - fp
					}
				}
			}
		}

		st.creditYards(off, play)
		play.ScoreOff = off.score
		play.ScoreDef = def.score
		st.batch.Plays = append(st.batch.Plays, play)
	}

	d.ScoreOff = off.score
	d.ScoreDef = def.score
	st.batch.Drives = append(st.batch.Drives, d)
	return d, nextFP
}

// passPlay resolves a dropback: sack, completion, interception, or
// incompletion, in that order of independent draws.
func (s *Simulator) passPlay(st *gameState, off, def *side, play *league.Play, adv float64) {
	play.Type = league.PlayPass
	qb := off.roster[league.QB][0]
	play.Passer = qb

	if s.rng.Float64() < s.p.SackRate {
		loss := int(math.Round(math.Abs(s.normal(s.p.SackYardsMean, s.p.SackYardsStd))))
		if loss < 1 {
			loss = 1
		}
		if loss > s.p.SackYardsCap {
			loss = s.p.SackYardsCap
		}
		play.Outcome = league.OutSack
		play.Yards = -loss
		return
	}

	log := st.log(off.team, qb)
	log.PassAttempts++

	if s.rng.Float64() < s.p.CompletionRate {
		raw := s.normal(s.p.PassYardsMean+adv*s.p.PassAdvantageFactor, s.p.PassYardsStd)
		play.Outcome = league.OutComplete
		play.Yards = amplify(raw, s.p.PassAmplifyK, s.p.PassAmplifyPow)

		target := s.pickReceiver(off.roster)
		play.Receiver = target
		log.PassCompletions++
		st.log(off.team, target).Receptions++
		return
	}

	if s.rng.Float64() < s.p.InterceptionRate {
		play.Outcome = league.OutInterception
		log.Interceptions++
		return
	}

	play.Outcome = league.OutIncomplete
}

// runPlay resolves a carry: fumble check, then shifted/amplified yardage.
func (s *Simulator) runPlay(st *gameState, off *side, play *league.Play, adv float64) {
	play.Type = league.PlayRun
	backs := off.roster[league.RB]
	back := backs[s.rng.IntN(len(backs))]
	play.Rusher = back

	if s.rng.Float64() < s.p.FumbleRate {
		play.Outcome = league.OutFumble
		return
	}

	raw := s.normal(s.p.RunYardsMean+adv*s.p.RunAdvantageFactor, s.p.RunYardsStd)
	play.Outcome = league.OutRush
	play.Yards = amplify(raw, s.p.RunAmplifyK, s.p.RunAmplifyPow)

	st.log(off.team, back).RushAttempts++
}

func (s *Simulator) fieldGoalPlay(st *gameState, off, def *side, d *league.Drive, down, dist, fp int) bool {
	kicker := off.roster[league.K][0]
	attempt := (100 - fp) + 17
	made := s.rng.Float64() < FieldGoalProb(attempt)

	play := &league.Play{
		ID:            uuid.New(),
		GameID:        st.g.ID,
		DriveID:       d.ID,
		Down:          down,
		Distance:      dist,
		FieldPosition: fp,
		Type:          league.PlayFieldGoal,
		Kicker:        kicker,
	}
	log := st.log(off.team, kicker)
	log.FGAttempts++
	if made {
		play.Outcome = league.OutFieldGoalMade
		log.FGMade++
		play.ScoreOff = off.score + 3
	} else {
		play.Outcome = league.OutFieldGoalMissed
		play.ScoreOff = off.score
	}
	play.ScoreDef = def.score
	st.batch.Plays = append(st.batch.Plays, play)
	return made
}

func (s *Simulator) puntPlay(st *gameState, off, def *side, d *league.Drive, down, dist, fp int) {
	punter := off.roster[league.P][0]
	play := &league.Play{
		ID:            uuid.New(),
		GameID:        st.g.ID,
		DriveID:       d.ID,
		Down:          down,
		Distance:      dist,
		FieldPosition: fp,
		Type:          league.PlayPunt,
		Outcome:       league.OutPunt,
		Punter:        punter,
		ScoreOff:      off.score,
		ScoreDef:      def.score,
	}
	log := st.log(off.team, punter)
	log.Punts++
	net := s.p.PuntNetYards
	if fp+net > 100 {
		net = 100 - fp
	}
	log.PuntYards += net
	st.batch.Plays = append(st.batch.Plays, play)
}

// creditYards books yardage only once the play's final yardage is known;
// touchdown and safety reclassification clamp Yards after the draw, so
// booking at draw time would desync the logs from the play records.
func (st *gameState) creditYards(off *side, play *league.Play) {
	switch play.Type {
	case league.PlayPass:
		if play.Receiver == nil {
			return // sacks and incompletions carry no passing yardage
		}
		st.log(off.team, play.Passer).PassYards += play.Yards
		st.log(off.team, play.Receiver).RecYards += play.Yards
	case league.PlayRun:
		if play.Outcome == league.OutFumble {
			return
		}
		st.log(off.team, play.Rusher).RushYards += play.Yards
	}
}

func (s *Simulator) creditTouchdown(st *gameState, off *side, play *league.Play) {
	switch play.Type {
	case league.PlayPass:
		st.log(off.team, play.Passer).PassTDs++
		if play.Receiver != nil {
			st.log(off.team, play.Receiver).RecTDs++
		}
	case league.PlayRun:
		if play.Rusher != nil {
			st.log(off.team, play.Rusher).RushTDs++
		}
	}
}

func (s *Simulator) pickReceiver(r league.Roster) *league.Player {
	pool := make([]*league.Player, 0, len(r[league.WR])+len(r[league.TE]))
	pool = append(pool, r[league.WR]...)
	pool = append(pool, r[league.TE]...)
	return pool[s.rng.IntN(len(pool))]
}

// amplify applies the convex big-play tail to a positive raw draw and caps
// the result at 99.
func amplify(raw, k, pow float64) int {
	y := raw
	if y > 0 {
		y += k * math.Pow(y, pow)
	}
	yards := int(math.Round(y))
	if yards > 99 {
		yards = 99
	}
	return yards
}
