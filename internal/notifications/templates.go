package notifications

import (
	"fmt"
	"time"

	"github.com/mondihair/MH-BookingService/internal/domain"
)

// The business communicates with customers in Greek; all message
// templates are Greek, matching the salon's established wording.

var greekWeekdays = [...]string{
	time.Sunday:    "Κυριακή",
	time.Monday:    "Δευτέρα",
	time.Tuesday:   "Τρίτη",
	time.Wednesday: "Τετάρτη",
	time.Thursday:  "Πέμπτη",
	time.Friday:    "Παρασκευή",
	time.Saturday:  "Σάββατο",
}

var greekMonths = [...]string{
	time.January:   "Ιανουαρίου",
	time.February:  "Φεβρουαρίου",
	time.March:     "Μαρτίου",
	time.April:     "Απριλίου",
	time.May:       "Μαΐου",
	time.June:      "Ιουνίου",
	time.July:      "Ιουλίου",
	time.August:    "Αυγούστου",
	time.September: "Σεπτεμβρίου",
	time.October:   "Οκτωβρίου",
	time.November:  "Νοεμβρίου",
	time.December:  "Δεκεμβρίου",
}

// greekDate renders a date as "Δευτέρα 2 Ιουνίου 2025".
func greekDate(t time.Time) string {
	return fmt.Sprintf("%s %d %s %d", greekWeekdays[t.Weekday()], t.Day(), greekMonths[t.Month()], t.Year())
}

func confirmationMessage(b *domain.Booking, staffName, businessPhone string) string {
	return fmt.Sprintf(`MONDI HAIRSTYLE
Επιβεβαίωση Ραντεβού

Αγαπητέ/ή %s,

Το ραντεβού σας έχει επιβεβαιωθεί:

Ημερομηνία: %s
Ώρα: %s
Κομμωτής: %s
Υπηρεσία: %s

Για αλλαγή ή ακύρωση, καλέστε μας:
%s

Σας ευχαριστούμε που μας επιλέξατε!`,
		b.CustomerName,
		greekDate(b.BookingDate),
		b.TimeSlot.String(),
		staffName,
		b.ServiceName,
		businessPhone,
	)
}

func reminderMessage(b *domain.Booking, staffName, businessPhone string) string {
	return fmt.Sprintf(`MONDI HAIRSTYLE
Υπενθύμιση Ραντεβού

Αγαπητέ/ή %s,

Σας υπενθυμίζουμε ότι έχετε ραντεβού σε 2 ώρες:

Ώρα: %s
Κομμωτής: %s
Υπηρεσία: %s

Παρακαλούμε να έρθετε 5 λεπτά νωρίτερα.

Για αλλαγή ή ακύρωση:
%s

Σας περιμένουμε!`,
		b.CustomerName,
		b.TimeSlot.String(),
		staffName,
		b.ServiceName,
		businessPhone,
	)
}

func cancellationMessage(b *domain.Booking, businessPhone string) string {
	return fmt.Sprintf(`MONDI HAIRSTYLE
Ακύρωση Ραντεβού

Αγαπητέ/ή %s,

Το ραντεβού σας για %s στις %s ακυρώθηκε.

Για νέο ραντεβού, καλέστε μας:
%s`,
		b.CustomerName,
		greekDate(b.BookingDate),
		b.TimeSlot.String(),
		businessPhone,
	)
}
