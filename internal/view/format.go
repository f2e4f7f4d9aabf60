package view

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jsamuelsen/associate-quotes/internal/domain"
)

// Placeholder is shown for values that are absent or cannot be displayed.
const Placeholder = "-"

const (
	rupeeSymbol = "₹"
	dateLayout  = "02/01/2006"
)

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
	time.DateOnly,
}

// netDate matches serialized dates such as /Date(1709596800000)/ or /Date(1709596800000+0530)/.
var netDate = regexp.MustCompile(`^/Date\((-?\d+)([+-]\d{4})?\)/$`)

// FormatDate renders an upstream date as DD/MM/YYYY.
// Zoned timestamps keep their own calendar day. Unparseable input yields Placeholder.
func FormatDate(raw string) string {
	t, ok := parseDate(strings.TrimSpace(raw))
	if !ok {
		return Placeholder
	}

	return t.Format(dateLayout)
}

func parseDate(raw string) (time.Time, bool) {
	if raw == "" {
		return time.Time{}, false
	}

	if m := netDate.FindStringSubmatch(raw); m != nil {
		ms, err := strconv.ParseInt(m[1], 10, 64)
		if err != nil {
			return time.Time{}, false
		}

		t := time.UnixMilli(ms).UTC()

		if m[2] != "" {
			if loc, ok := offsetZone(m[2]); ok {
				t = t.In(loc)
			}
		}

		return t, true
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

// offsetZone turns "+0530" into a fixed zone.
func offsetZone(s string) (*time.Location, bool) {
	hours, err := strconv.Atoi(s[1:3])
	if err != nil {
		return nil, false
	}

	minutes, err := strconv.Atoi(s[3:5])
	if err != nil {
		return nil, false
	}

	offset := hours*3600 + minutes*60
	if s[0] == '-' {
		offset = -offset
	}

	return time.FixedZone(s, offset), true
}

var hundred = decimal.NewFromInt(100)

// FormatRupees renders an amount as Indian rupees with lakh/crore grouping,
// e.g. ₹12,34,567 or -₹1,234.50. Paise are shown only when non-zero.
// Invalid amounts yield Placeholder.
func FormatRupees(a domain.Amount) string {
	if !a.Valid {
		return Placeholder
	}

	rounded := a.Value.Round(2)
	abs := rounded.Abs()
	whole := abs.Truncate(0)
	paise := abs.Sub(whole).Mul(hundred).IntPart()

	var b strings.Builder

	if rounded.IsNegative() {
		b.WriteByte('-')
	}

	b.WriteString(rupeeSymbol)
	b.WriteString(groupIndian(whole.String()))

	if paise != 0 {
		b.WriteByte('.')
		if paise < 10 {
			b.WriteByte('0')
		}
		b.WriteString(strconv.FormatInt(paise, 10))
	}

	return b.String()
}

// groupIndian inserts separators after the last three digits and then every two.
func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}

	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]

	var groups []string
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}

	groups = append([]string{head}, groups...)

	return strings.Join(groups, ",") + "," + tail
}

// Tone is the visual category of a quote status.
type Tone string

// Status tones, in matching priority order.
const (
	ToneDraft    Tone = "draft"
	ToneSent     Tone = "sent"
	ToneApproved Tone = "approved"
	ToneRejected Tone = "rejected"
	ToneNeutral  Tone = "neutral"
)

var tonePriority = []Tone{ToneDraft, ToneSent, ToneApproved, ToneRejected}

var toneClasses = map[Tone]string{
	ToneDraft:    "bg-gray-50 text-gray-600 border-gray-200",
	ToneSent:     "bg-blue-50 text-blue-600 border-blue-200",
	ToneApproved: "bg-green-50 text-green-600 border-green-200",
	ToneRejected: "bg-red-50 text-red-600 border-red-200",
	ToneNeutral:  "bg-slate-50 text-slate-600 border-slate-200",
}

// StatusTone picks the first tone whose name occurs in status, ignoring case.
// "Approved-Pending" is approved; anything unrecognised is neutral.
func StatusTone(status string) Tone {
	s := strings.ToLower(status)

	for _, tone := range tonePriority {
		if strings.Contains(s, string(tone)) {
			return tone
		}
	}

	return ToneNeutral
}

// Classes returns the CSS token pair for the tone.
func (t Tone) Classes() string {
	if c, ok := toneClasses[t]; ok {
		return c
	}

	return toneClasses[ToneNeutral]
}

// ApprovalLabel renders the approval flag.
func ApprovalLabel(approved bool) string {
	if approved {
		return "Yes"
	}

	return "No"
}

func optional(s *string) string {
	if s == nil || *s == "" {
		return Placeholder
	}

	return *s
}

func optionalInt(n *int) string {
	if n == nil {
		return Placeholder
	}

	return strconv.Itoa(*n)
}
