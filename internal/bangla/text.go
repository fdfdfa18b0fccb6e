package bangla

import (
	"strconv"
	"strings"
)

// Placeholder is rendered for any lookup outside its table.
const Placeholder = "?"

const (
	yearSuffix   = "বঙ্গাব্দ"
	seasonSuffix = "কাল"
	subtitleSep  = " • "
)

var digits = [10]rune{'০', '১', '২', '৩', '৪', '৫', '৬', '৭', '৮', '৯'}

// ordinals is indexed by day; index 0 is unused.
var ordinals = [32]string{
	"",
	"১লা",  // 1
	"২রা",  // 2
	"৩রা",  // 3
	"৪ঠা",  // 4
	"৫ই",   // 5
	"৬ই",   // 6
	"৭ই",   // 7
	"৮ই",   // 8
	"৯ই",   // 9
	"১০ই",  // 10
	"১১ই",  // 11
	"১২ই",  // 12
	"১৩ই",  // 13
	"১৪ই",  // 14
	"১৫ই",  // 15
	"১৬ই",  // 16
	"১৭ই",  // 17
	"১৮ই",  // 18
	"১৯শে", // 19
	"২০শে", // 20
	"২১শে", // 21
	"২২শে", // 22
	"২৩শে", // 23
	"২৪শে", // 24
	"২৫শে", // 25
	"২৬শে", // 26
	"২৭শে", // 27
	"২৮শে", // 28
	"২৯শে", // 29
	"৩০শে", // 30
	"৩১শে", // 31
}

var monthNames = [12]string{
	"বৈশাখ",     // Boishakh
	"জ্যৈষ্ঠ",   // Jyoishtho
	"আষাঢ়",     // Asharh
	"শ্রাবণ",    // Shrabon
	"ভাদ্র",     // Bhadro
	"আশ্বিন",    // Ashwin
	"কার্তিক",   // Kartik
	"অগ্রহায়ণ", // Ogrohayon
	"পৌষ",       // Poush
	"মাঘ",       // Magh
	"ফাল্গুন",   // Falgun
	"চৈত্র",     // Choitro
}

// seasonNames pairs consecutive months into the six ritu.
var seasonNames = [12]string{
	"গ্রীষ্ম", // Grishmo
	"গ্রীষ্ম", // Grishmo
	"বর্ষা",   // Borsha
	"বর্ষা",   // Borsha
	"শরৎ",     // Shorot
	"শরৎ",     // Shorot
	"হেমন্ত",  // Hemonto
	"হেমন্ত",  // Hemonto
	"শীত",     // Sheet
	"শীত",     // Sheet
	"বসন্ত",   // Boshonto
	"বসন্ত",   // Boshonto
}

var weekdayNames = [7]string{
	"রবিবার",      // Sunday
	"সোমবার",      // Monday
	"মঙ্গলবার",    // Tuesday
	"বুধবার",      // Wednesday
	"বৃহস্পতিবার", // Thursday
	"শুক্রবার",    // Friday
	"শনিবার",      // Saturday
}

var weekdayShortNames = [7]string{"রবি", "সোম", "মঙ্গল", "বুধ", "বৃহঃ", "শুক্র", "শনি"}

// Numeral renders n in decimal with every ASCII digit replaced by its Bangla
// glyph. The sign passes through unchanged.
func Numeral(n int) string {
	var b strings.Builder
	for _, r := range strconv.Itoa(n) {
		if r >= '0' && r <= '9' {
			b.WriteRune(digits[r-'0'])
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Ordinal returns the day with its Bangla ordinal suffix (১লা, ২রা, ১৯শে...).
func Ordinal(day int) string {
	if day < 1 || day > 31 {
		return Placeholder
	}
	return ordinals[day]
}

// MonthName returns the name of the zero-based Bangla month.
func MonthName(month int) string {
	if month < 0 || month >= len(monthNames) {
		return Placeholder
	}
	return monthNames[month]
}

// SeasonName returns the ritu the zero-based Bangla month belongs to.
func SeasonName(month int) string {
	if month < 0 || month >= len(seasonNames) {
		return Placeholder
	}
	return seasonNames[month]
}

// WeekdayName returns the full weekday name, 0 being Sunday.
func WeekdayName(weekday int) string {
	if weekday < 0 || weekday >= len(weekdayNames) {
		return Placeholder
	}
	return weekdayNames[weekday]
}

// WeekdayShortName returns the abbreviated weekday used in grid headers.
func WeekdayShortName(weekday int) string {
	if weekday < 0 || weekday >= len(weekdayShortNames) {
		return Placeholder
	}
	return weekdayShortNames[weekday]
}

// YearLabel renders "১৪৩২ বঙ্গাব্দ".
func YearLabel(year int) string {
	return Numeral(year) + " " + yearSuffix
}

// SeasonLabel renders "হেমন্তকাল".
func SeasonLabel(month int) string {
	return SeasonName(month) + seasonSuffix
}

// Line1 renders the ordinal day and month: "৬ই পৌষ,".
func (d Date) Line1() string {
	return Ordinal(d.Day) + " " + MonthName(d.Month) + ","
}

// Line2 renders the year: "১৪৩২ বঙ্গাব্দ".
func (d Date) Line2() string {
	return YearLabel(d.Year)
}

// Line3 renders the weekday and season: "রবিবার, শীতকাল".
func (d Date) Line3() string {
	return WeekdayName(d.Weekday) + ", " + SeasonLabel(d.Month)
}

// Lines returns the three widget lines in display order.
func (d Date) Lines() [3]string {
	return [3]string{d.Line1(), d.Line2(), d.Line3()}
}

// String joins the three lines on one row, for logs and terminals.
func (d Date) String() string {
	return d.Line1() + " " + d.Line2() + ", " + d.Line3()
}
