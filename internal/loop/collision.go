package loop

import (
	"github.com/tomz197/coloroid/internal/loop/config"
	"github.com/tomz197/coloroid/internal/object"
	"github.com/tomz197/coloroid/internal/physics"
)

// Outcome is how a caught orb was resolved.
type Outcome int

const (
	OutcomeGolden   Outcome = iota // Bonus score and mana
	OutcomeHeart                   // One life back
	OutcomePowerup                 // Timer activated
	OutcomeMatch                   // Target color caught
	OutcomeMismatch                // Wrong color, life lost
	OutcomeShielded                // Wrong color absorbed by the shield
)

func (o Outcome) String() string {
	switch o {
	case OutcomeGolden:
		return "golden"
	case OutcomeHeart:
		return "heart"
	case OutcomePowerup:
		return "powerup"
	case OutcomeMatch:
		return "match"
	case OutcomeMismatch:
		return "mismatch"
	case OutcomeShielded:
		return "shielded"
	default:
		return "unknown"
	}
}

// touchesPaddle reports whether the orb overlaps the paddle rectangle.
func touchesPaddle(o *object.Orb, p *object.Paddle) bool {
	left, top, right, bottom := p.Bounds()
	return physics.CircleIntersectsRect(o.X, o.Y, o.Radius, left, top, right, bottom)
}

// resolveCollisions removes every orb touching the paddle and applies its
// outcome, then clamps the player state and checks for game over.
func (s *Session) resolveCollisions() {
	orbs := s.registry.orbs
	kept := orbs[:0]
	for _, o := range orbs {
		if !touchesPaddle(o, &s.paddle) {
			kept = append(kept, o)
			continue
		}
		s.resolveCatch(o)
	}
	clear(orbs[len(kept):])
	s.registry.orbs = kept

	s.clampPlayer()
	if s.lives <= 0 && !s.gameOver && s.transition(StateGameOver) {
		s.gameOver = true
		s.emit(Event{Type: EventGameOver, Score: s.score})
	}
}

// resolveCatch applies exactly one outcome for a caught orb.
func (s *Session) resolveCatch(o *object.Orb) Outcome {
	var (
		outcome Outcome
		gained  int
	)
	switch v := o.Variant.(type) {
	case object.GoldenStar:
		outcome = OutcomeGolden
		gained = config.ScoreGolden
		s.score += gained
		s.resources.Gain(float64(gained))
	case object.Heart:
		outcome = OutcomeHeart
		s.lives++
	case object.PowerUp:
		outcome = OutcomePowerup
		s.powerups.Activate(v.Power, s.tuning.PowerupLength)
		s.planner.ClearPending()
	case object.NormalShape:
		if v.Color.Name == s.palette.Current().Name {
			outcome = OutcomeMatch
			gained = v.Shape.Points
			s.score += gained
			s.resources.Gain(float64(gained))
			s.feedback.PaddleBounce = config.PaddleBounceDuration
			o.StartBounce()
		} else if s.powerups.Active(object.PowerupShield) {
			outcome = OutcomeShielded
		} else {
			outcome = OutcomeMismatch
			s.lives--
			s.feedback.Flash = config.FlashDuration
		}
	default:
		panic("loop: orb without a variant")
	}

	if gained > 0 {
		s.popups = append(s.popups, object.NewScorePopup(o.X, o.Y, gained, o.Fill()))
	}

	e := Event{Type: EventCaught, Outcome: outcome, Score: gained}
	switch v := o.Variant.(type) {
	case object.NormalShape:
		e.Color = v.Color
	case object.PowerUp:
		e.Power = v.Power
	}
	s.emit(e)
	if outcome == OutcomeMismatch {
		s.emit(Event{Type: EventLifeLost})
	}
	return outcome
}

// clampPlayer keeps score, lives and mana within their bounds.
func (s *Session) clampPlayer() {
	if s.score < 0 {
		s.score = 0
	}
	if s.lives < 0 {
		s.lives = 0
	}
	if s.lives > s.tuning.MaxLives {
		s.lives = s.tuning.MaxLives
	}
	s.resources.clamp()
}
