// Package engagement decides when to interrupt browsing with a sponsor image
// or a promotional video.
//
// Tap is a pure reducer over State; the Store in this package only keeps one
// State per client session.
package engagement

import "github.com/tagumdiocese/directory/internal/models"

const (
	// VideoEvery is the tap interval that shows a video.
	VideoEvery = 15
	// MinGap and MaxGap bound the distance to the next sponsor threshold.
	MinGap = 5
	MaxGap = 10
)

// Rand is the randomness the reducer needs. *rand.Rand from math/rand/v2
// satisfies it.
type Rand interface {
	IntN(n int) int
}

// Media is what the trigger can show.
type Media struct {
	Sponsors []models.Sponsor `json:"sponsors"`
	Videos   []models.Video   `json:"videos"`
}

// State is one session's trigger state. Index fields are -1 until something
// has been shown.
type State struct {
	TapCount       int  `json:"tapCount"`
	NextThreshold  int  `json:"nextThreshold"`
	SponsorVisible bool `json:"sponsorVisible"`
	VideoVisible   bool `json:"videoVisible"`
	SponsorIndex   int  `json:"sponsorIndex"`
	VideoIndex     int  `json:"videoIndex"`
}

// Trigger reports what a single tap raised.
type Trigger int

const (
	TriggerNone Trigger = iota
	TriggerSponsor
	TriggerVideo
)

func (t Trigger) String() string {
	switch t {
	case TriggerSponsor:
		return "sponsor"
	case TriggerVideo:
		return "video"
	default:
		return "none"
	}
}

// NewState returns a fresh counter with its first threshold drawn.
func NewState(rng Rand) State {
	return State{
		NextThreshold: drawThreshold(0, rng),
		SponsorIndex:  -1,
		VideoIndex:    -1,
	}
}

// Tap counts one tap and evaluates the video rule before the sponsor rule.
// A tap that shows a video leaves the sponsor threshold where it was.
func Tap(s State, m Media, rng Rand) (State, Trigger) {
	s.TapCount++

	if s.TapCount%VideoEvery == 0 && len(m.Videos) > 0 {
		s.VideoIndex = pick(len(m.Videos), s.VideoIndex, rng)
		s.VideoVisible = true
		return s, TriggerVideo
	}

	if s.TapCount >= s.NextThreshold && s.TapCount%VideoEvery != 0 && len(m.Sponsors) > 0 {
		s.SponsorIndex = pick(len(m.Sponsors), s.SponsorIndex, rng)
		s.SponsorVisible = true
		s.NextThreshold = drawThreshold(s.TapCount, rng)
		return s, TriggerSponsor
	}

	return s, TriggerNone
}

// DismissSponsor hides the sponsor image. The counter keeps running.
func DismissSponsor(s State) State {
	s.SponsorVisible = false
	return s
}

// DismissVideo hides the video.
func DismissVideo(s State) State {
	s.VideoVisible = false
	return s
}

// drawThreshold is uniform over [count+MinGap, count+MaxGap].
func drawThreshold(count int, rng Rand) int {
	return count + MinGap + rng.IntN(MaxGap-MinGap+1)
}

// pick draws an index in [0, n) that differs from last when n > 1.
func pick(n, last int, rng Rand) int {
	if n <= 1 {
		return 0
	}
	if last < 0 || last >= n {
		return rng.IntN(n)
	}
	i := rng.IntN(n - 1)
	if i >= last {
		i++
	}
	return i
}
