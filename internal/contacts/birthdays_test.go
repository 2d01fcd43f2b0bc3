package contacts

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bookWithBirthdays(t *testing.T, birthdays map[string]string) *AddressBook {
	t.Helper()
	book := NewAddressBook(nil)
	for name, date := range birthdays {
		r := newTestRecord(t, name)
		if date != "" {
			require.NoError(t, r.SetBirthday(date))
		}
		require.NoError(t, book.Add(r))
	}
	return book
}

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func TestUpcomingBirthdays(t *testing.T) {
	monday := day(2024, 6, 10)

	tests := []struct {
		name     string
		birthday string
		today    time.Time
		want     []time.Time // congratulation dates, empty when excluded
	}{
		{"midweek birthday", "12.06.1990", monday, []time.Time{day(2024, 6, 12)}},
		{"saturday moves to monday", "15.06.1990", monday, []time.Time{day(2024, 6, 17)}},
		{"sunday moves to monday", "16.06.1990", monday, []time.Time{day(2024, 6, 17)}},
		{"today is included", "10.06.1990", monday, []time.Time{day(2024, 6, 10)}},
		{"exactly seven days out", "17.06.1990", monday, []time.Time{day(2024, 6, 17)}},
		{"eight days out", "18.06.1990", monday, nil},
		{"yesterday wraps to next year", "09.06.1990", monday, nil},
		{"new year after wrap is too far", "01.01.1990", monday, nil},
		{"wrap into january", "02.01.1990", day(2024, 12, 28), []time.Time{day(2025, 1, 2)}},
		{"leap day observed on feb 28", "29.02.2000", day(2025, 2, 24), []time.Time{day(2025, 2, 28)}},
		{"leap day in leap year", "29.02.2000", day(2024, 2, 26), []time.Time{day(2024, 2, 29)}},
		{"leap day seven days out in common year", "29.02.2000", day(2027, 2, 21), []time.Time{day(2027, 3, 1)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			book := bookWithBirthdays(t, map[string]string{"John": tt.birthday})

			got := book.UpcomingBirthdays(tt.today)

			require.Len(t, got, len(tt.want))
			for i, want := range tt.want {
				assert.Equal(t, "John", got[i].Name)
				assert.True(t, want.Equal(got[i].CongratulationDate),
					"congratulation date = %s, want %s",
					got[i].CongratulationDate.Format("2006-01-02 Mon"), want.Format("2006-01-02 Mon"))
			}
		})
	}
}

func TestUpcomingBirthdays_SkipsRecordsWithoutBirthday(t *testing.T) {
	book := bookWithBirthdays(t, map[string]string{
		"John": "12.06.1990",
		"Jane": "",
	})

	got := book.UpcomingBirthdays(day(2024, 6, 10))
	require.Len(t, got, 1)
	assert.Equal(t, "John", got[0].Name)
}

func TestUpcomingBirthdays_Ordering(t *testing.T) {
	book := bookWithBirthdays(t, map[string]string{
		"Zed":   "11.06.1985",
		"Amy":   "16.06.1992", // Sunday -> Monday 17th
		"Bob":   "17.06.1970",
		"Carol": "15.06.2001", // Saturday -> Monday 17th
	})

	got := book.UpcomingBirthdays(day(2024, 6, 10))

	var names []string
	for _, u := range got {
		names = append(names, u.Name)
	}
	assert.Equal(t, []string{"Zed", "Amy", "Bob", "Carol"}, names)
	assert.True(t, day(2024, 6, 15).Equal(got[3].Birthday), "Birthday keeps the real date")
}

func TestUpcomingWithin(t *testing.T) {
	book := bookWithBirthdays(t, map[string]string{"John": "20.06.1990"})
	today := day(2024, 6, 10)

	assert.Empty(t, book.UpcomingWithin(today, 7))
	assert.Len(t, book.UpcomingWithin(today, 10), 1)
	assert.Empty(t, book.UpcomingWithin(today, 0))
}

func TestUpcomingBirthdays_IgnoresTimeOfDay(t *testing.T) {
	book := bookWithBirthdays(t, map[string]string{"John": "10.06.1990"})

	got := book.UpcomingBirthdays(time.Date(2024, 6, 10, 23, 30, 0, 0, time.UTC))
	require.Len(t, got, 1)
	assert.True(t, day(2024, 6, 10).Equal(got[0].CongratulationDate))
}
