package template

import "time"

// Recognized timestamp layouts, used to recover the textual form of a
// timestamp from an epoch-ms value. LayoutUnknown means no recognized
// layout was found; such a column renders as epoch milliseconds on
// query instead of its original text.
const (
	LayoutUnknown = ""
	LayoutApache  = "[Mon Jan 02 15:04:05 2006]"
	LayoutRFC3339 = time.RFC3339Nano
	LayoutSyslog  = "Jan _2 15:04:05"
)

var recognizedLayouts = []string{LayoutApache, LayoutRFC3339, LayoutSyslog}

// recognizeLayout returns the first recognized layout that text parses
// against, or LayoutUnknown.
func recognizeLayout(text string) string {
	for _, layout := range recognizedLayouts {
		if _, err := time.Parse(layout, text); err == nil {
			return layout
		}
	}
	return LayoutUnknown
}

// ParseEpochMillis parses text using layout (as recorded on the owning
// Slot) and returns Unix epoch milliseconds. If layout is LayoutUnknown,
// it falls back to RFC3339 as a best-effort parse so a value still makes
// it into the column; rendering will report the epoch value, never the
// original text, in that case.
func ParseEpochMillis(text, layout string) (int64, error) {
	if layout == LayoutUnknown {
		layout = LayoutRFC3339
	}
	t, err := time.Parse(layout, text)
	if err != nil {
		return 0, err
	}
	return t.UnixMilli(), nil
}

// RenderTimestamp renders epochMillis back to text using layout. If
// layout is LayoutUnknown, it renders the bare epoch-millisecond integer.
func RenderTimestamp(epochMillis int64, layout string) string {
	if layout == LayoutUnknown {
		return formatInt64(epochMillis)
	}
	return time.UnixMilli(epochMillis).UTC().Format(layout)
}

func formatInt64(v int64) string {
	if v == 0 {
		return "0"
	}
	neg := v < 0
	if neg {
		v = -v
	}
	var buf [20]byte
	i := len(buf)
	for v > 0 {
		i--
		buf[i] = byte('0' + v%10)
		v /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}
