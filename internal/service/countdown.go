package service

import (
	"context"
	"time"

	"github.com/studyhub/progress/internal/domain"
)

// StatusTick is one countdown reading for a contest
type StatusTick struct {
	Status    domain.ContestStatus `json:"status"`
	Remaining time.Duration        `json:"-"`
	Seconds   int                  `json:"remaining_seconds"`
	At        time.Time            `json:"at"`
}

func tickAt(contest domain.Contest, now time.Time) StatusTick {
	remaining := contest.TimeRemaining(now)
	return StatusTick{
		Status:    contest.StatusAt(now),
		Remaining: remaining,
		Seconds:   int(remaining.Seconds()),
		At:        now,
	}
}

// Countdown emits the contest status immediately and then every interval
// until ctx is cancelled, at which point the timer stops and the channel is
// closed. Ticks are only reads; nothing is mutated. A slow reader misses
// ticks rather than blocking the timer.
func Countdown(ctx context.Context, contest domain.Contest, clock domain.Clock, interval time.Duration) <-chan StatusTick {
	ticks := make(chan StatusTick, 1)

	go func() {
		defer close(ticks)

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		send := func() {
			select {
			case ticks <- tickAt(contest, domain.NowFrom(clock)):
			default:
			}
		}

		send()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				send()
			}
		}
	}()

	return ticks
}
