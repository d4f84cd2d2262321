package astrology

import "time"

var fortunes = []string{
	"Today you'll procrastinate efficiently.",
	"You will debug reality itself.",
	"The universe approves of your coffee consumption.",
	"Your code will compile on the first try (probably not).",
	"Today is a good day to question everything.",
	"The bugs fear you today.",
	"Your productivity will reach quantum levels.",
	"Reality is just a state of mind (and bugs).",
	"Today you'll achieve the impossible (or at least try).",
	"The cosmic forces align with your debugging skills.",
	"Your quantum entanglement with productivity is strong today.",
	"The multiverse has chosen you for greatness.",
	"Your procrastination will be perfectly balanced.",
	"The cosmic rays will enhance your coding abilities.",
	"Today is a superposition of success and coffee.",
}

// fortuneDateLayout renders dates like "Thu Oct 15 2026".
const fortuneDateLayout = "Mon Jan 02 2006"

// DailyFortune picks the fortune for now's calendar day: the byte values of
// the formatted date are summed and taken modulo the fortune count.
func DailyFortune(now time.Time) string {
	return fortunes[FortuneIndex(now.Format(fortuneDateLayout))]
}

func FortuneIndex(date string) int {
	sum := 0
	for i := 0; i < len(date); i++ {
		sum += int(date[i])
	}
	return sum % len(fortunes)
}
