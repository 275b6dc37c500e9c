package schedule

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrInvalidSchedule flags configuration bugs (non-positive slot duration,
// malformed clock or date strings). Callers should not retry.
var ErrInvalidSchedule = errors.New("invalid schedule configuration")

// Decision is the outcome of CheckAvailability. Rejection is an expected
// result, not an error: Reason carries the user-facing message (pt-BR).
type Decision struct {
	Available bool   `json:"available"`
	Reason    string `json:"reason,omitempty"`
}

// GenerateSlots computes the bookable start times for one professional on
// one date. It walks every open interval of the date's weekday in steps of
// slotMinutes and drops candidates that overlap a covering block or an
// active booking. Partial remainders at the end of an interval are never
// emitted. Output order follows interval order, which the schedule stores
// chronologically.
//
// A nil schedule means the professional has never configured hours; the
// generator treats that as fully closed.
//
// excludeID, when not uuid.Nil, removes one booking from the conflict set
// so a booking being rescheduled can reclaim its own time.
func GenerateSlots(date string, ws *WeeklySchedule, blocks []Block, booked []Booking, slotMinutes int, excludeID uuid.UUID) ([]string, error) {
	if ws == nil {
		return []string{}, nil
	}
	if slotMinutes <= 0 {
		return nil, fmt.Errorf("%w: slot duration %d", ErrInvalidSchedule, slotMinutes)
	}

	weekday, err := Weekday(date)
	if err != nil {
		return nil, err
	}
	intervals := ws.Week[weekday]
	if len(intervals) == 0 {
		return []string{}, nil
	}

	dayBlocks, err := timedBlocks(date, blocks)
	if err != nil {
		return nil, err
	}
	busy, err := activeBookings(date, booked, excludeID)
	if err != nil {
		return nil, err
	}

	slots := []string{}
	for _, iv := range intervals {
		start, err := ParseClock(iv.Start)
		if err != nil {
			return nil, err
		}
		end, err := ParseClock(iv.End)
		if err != nil {
			return nil, err
		}

		for cur := start; cur+slotMinutes <= end; cur += slotMinutes {
			if blocked(dayBlocks, cur, cur+slotMinutes) {
				continue
			}
			if overlapsAny(busy, cur, cur+slotMinutes) {
				continue
			}
			slots = append(slots, FormatClock(cur))
		}
	}
	return slots, nil
}

// CheckAvailability validates one proposed booking window. Checks run in
// order and the first failure wins: blocks, then booking conflicts, then
// weekly-schedule membership. The schedule check only runs when ws is
// non-nil: a professional with nothing configured at all is accepted,
// unlike the generator's closed default. That asymmetry is deliberate.
func CheckAvailability(date, start, end string, ws *WeeklySchedule, blocks []Block, booked []Booking, excludeID uuid.UUID) (Decision, error) {
	candStart, err := ParseClock(start)
	if err != nil {
		return Decision{}, err
	}
	candEnd, err := ParseClock(end)
	if err != nil {
		return Decision{}, err
	}

	for _, b := range blocks {
		if !b.covers(date) {
			continue
		}
		hit := b.AllDay
		if !hit {
			bs, err := ParseClock(b.StartTime)
			if err != nil {
				return Decision{}, err
			}
			be, err := ParseClock(b.EndTime)
			if err != nil {
				return Decision{}, err
			}
			// Wider than the generator's half-open test: start inside,
			// end inside, or candidate swallowing the whole window all
			// count, so bookings straddling a boundary never slip past.
			hit = (candStart >= bs && candStart < be) ||
				(candEnd > bs && candEnd <= be) ||
				(candStart <= bs && candEnd >= be)
		}
		if hit {
			reason := b.Reason
			if reason == "" {
				reason = "Horário bloqueado"
			}
			return Decision{Available: false, Reason: reason}, nil
		}
	}

	for _, bk := range booked {
		if bk.Date != date || !bk.occupies() {
			continue
		}
		if excludeID != uuid.Nil && bk.ID == excludeID {
			continue
		}
		bkStart, err := ParseClock(bk.StartTime)
		if err != nil {
			return Decision{}, err
		}
		bkEnd := bkStart
		if bk.EndTime != "" {
			bkEnd, err = ParseClock(bk.EndTime)
			if err != nil {
				return Decision{}, err
			}
		}
		if candStart < bkEnd && bkStart < candEnd {
			return Decision{
				Available: false,
				Reason:    fmt.Sprintf("Conflito com agendamento de %s às %s", bk.PatientName, bk.StartTime),
			}, nil
		}
	}

	if ws != nil {
		weekday, err := Weekday(date)
		if err != nil {
			return Decision{}, err
		}
		intervals := ws.Week[weekday]
		if len(intervals) == 0 {
			return Decision{Available: false, Reason: "O profissional não atende neste dia da semana"}, nil
		}
		inHours := false
		for _, iv := range intervals {
			ivStart, err := ParseClock(iv.Start)
			if err != nil {
				return Decision{}, err
			}
			ivEnd, err := ParseClock(iv.End)
			if err != nil {
				return Decision{}, err
			}
			// Only the start is held to the window; a booking that
			// begins in-hours may run past closing.
			if candStart >= ivStart && candStart < ivEnd {
				inHours = true
				break
			}
		}
		if !inHours {
			return Decision{Available: false, Reason: "Horário fora do expediente do profissional"}, nil
		}
	}

	return Decision{Available: true}, nil
}

// timedBlock is a block covering the target date with its window already
// parsed to minutes. allDay blocks use the full-day window.
type timedBlock struct {
	start, end int
}

func timedBlocks(date string, blocks []Block) ([]timedBlock, error) {
	var out []timedBlock
	for _, b := range blocks {
		if !b.covers(date) {
			continue
		}
		if b.AllDay {
			out = append(out, timedBlock{start: 0, end: 24 * 60})
			continue
		}
		bs, err := ParseClock(b.StartTime)
		if err != nil {
			return nil, err
		}
		be, err := ParseClock(b.EndTime)
		if err != nil {
			return nil, err
		}
		out = append(out, timedBlock{start: bs, end: be})
	}
	return out, nil
}

type busyWindow struct {
	start, end int
}

func activeBookings(date string, booked []Booking, excludeID uuid.UUID) ([]busyWindow, error) {
	var out []busyWindow
	for _, bk := range booked {
		if bk.Date != date || !bk.occupies() {
			continue
		}
		if excludeID != uuid.Nil && bk.ID == excludeID {
			continue
		}
		start, err := ParseClock(bk.StartTime)
		if err != nil {
			return nil, err
		}
		end := start
		if bk.EndTime != "" {
			end, err = ParseClock(bk.EndTime)
			if err != nil {
				return nil, err
			}
		}
		out = append(out, busyWindow{start: start, end: end})
	}
	return out, nil
}

// Half-open overlap: [a,b) and [c,d) intersect iff a < d && c < b.
func blocked(blocks []timedBlock, start, end int) bool {
	for _, b := range blocks {
		if start < b.end && b.start < end {
			return true
		}
	}
	return false
}

func overlapsAny(busy []busyWindow, start, end int) bool {
	for _, w := range busy {
		if start < w.end && w.start < end {
			return true
		}
	}
	return false
}
