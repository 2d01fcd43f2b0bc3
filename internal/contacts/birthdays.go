package contacts

import (
	"cmp"
	"slices"
	"time"

	"github.com/username/assistant-bot/pkg/dateutil"
	"go.uber.org/zap"
)

// DefaultWindowDays is how far ahead UpcomingBirthdays looks
const DefaultWindowDays = 7

// Upcoming is a contact whose birthday falls inside the look-ahead window
type Upcoming struct {
	Name string
	// Birthday is the next occurrence of the birthday
	Birthday time.Time
	// CongratulationDate is Birthday moved off the weekend
	CongratulationDate time.Time
}

// UpcomingBirthdays returns contacts whose next birthday is 0..7 days after today
func (ab *AddressBook) UpcomingBirthdays(today time.Time) []Upcoming {
	return ab.UpcomingWithin(today, DefaultWindowDays)
}

// UpcomingWithin returns contacts whose next birthday is 0..days days after
// today. Birthdays already passed this year are looked up in the next year.
// Results are ordered by congratulation date, then by name.
func (ab *AddressBook) UpcomingWithin(today time.Time, days int) []Upcoming {
	today = dateutil.StartOfDay(today)
	upcoming := []Upcoming{}

	for record := range ab.All() {
		birthday, ok := record.Birthday()
		if !ok {
			continue
		}

		next := dateutil.AnniversaryIn(birthday.Date(), today.Year(), today.Location())
		if next.Before(today) {
			next = dateutil.AnniversaryIn(birthday.Date(), today.Year()+1, today.Location())
		}

		daysUntil := dateutil.DaysBetween(today, next)
		if daysUntil < 0 || daysUntil > days {
			continue
		}

		upcoming = append(upcoming, Upcoming{
			Name:               record.Name(),
			Birthday:           next,
			CongratulationDate: dateutil.NextWorkday(next),
		})
	}

	slices.SortStableFunc(upcoming, func(a, b Upcoming) int {
		if c := a.CongratulationDate.Compare(b.CongratulationDate); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})

	ab.logger.Debug("Upcoming birthdays computed",
		zap.Time("today", today),
		zap.Int("window_days", days),
		zap.Int("count", len(upcoming)))

	return upcoming
}
