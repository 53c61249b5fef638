// Package ical renders calendar events as an RFC 5545 document.
package ical

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"
	"unicode/utf8"

	"job-calendar-feed/internal/models"
)

const (
	prodID    = "-//job-calendar-feed//Job Schedule//EN"
	uidPrefix = "job-feed:"
	uidDomain = "@jobcal"

	dateTimeFormat = "20060102T150405Z"
	dateFormat     = "20060102"

	// RFC 5545 section 3.1: content lines are delimited by CRLF and
	// SHOULD NOT be longer than 75 octets excluding the delimiter.
	foldLimit = 75
)

// Options controls how a document is rendered.
type Options struct {
	// AllDay renders DTSTART/DTEND as bare dates with an exclusive end.
	AllDay bool
	// Now stamps DTSTAMP; zero means time.Now.
	Now time.Time
	// CalName sets X-WR-CALNAME. Empty falls back to "Job Schedule".
	CalName string
}

// Render produces a complete folded VCALENDAR document for the events.
func Render(events []models.CalendarEvent, opts Options) string {
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}
	name := opts.CalName
	if name == "" {
		name = "Job Schedule"
	}

	lines := []string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:" + prodID,
		"CALSCALE:GREGORIAN",
		"METHOD:PUBLISH",
		"X-WR-CALNAME:" + Escape(name),
		"X-WR-TIMEZONE:UTC",
	}
	for _, ev := range events {
		lines = append(lines, eventLines(ev, now, opts.AllDay)...)
	}
	lines = append(lines, "END:VCALENDAR")

	return Fold(strings.Join(lines, "\r\n") + "\r\n")
}

func eventLines(ev models.CalendarEvent, now time.Time, allDay bool) []string {
	lines := []string{
		"BEGIN:VEVENT",
		"UID:" + UID(ev.ID),
		"DTSTAMP:" + now.UTC().Format(dateTimeFormat),
	}
	if allDay {
		lines = append(lines,
			"DTSTART;VALUE=DATE:"+ev.Start.UTC().Format(dateFormat),
			// DTEND is exclusive for date values; advance the inclusive
			// end date by one day.
			"DTEND;VALUE=DATE:"+ev.End.UTC().AddDate(0, 0, 1).Format(dateFormat),
		)
	} else {
		lines = append(lines,
			"DTSTART:"+ev.Start.UTC().Format(dateTimeFormat),
			"DTEND:"+ev.End.UTC().Format(dateTimeFormat),
		)
	}
	lines = append(lines, "SUMMARY:"+Escape(ev.Summary))
	if ev.Location != "" {
		lines = append(lines, "LOCATION:"+Escape(ev.Location))
	}
	if ev.Description != "" {
		lines = append(lines, "DESCRIPTION:"+Escape(ev.Description))
	}
	if len(ev.Categories) > 0 {
		escaped := make([]string, 0, len(ev.Categories))
		for _, c := range ev.Categories {
			escaped = append(escaped, Escape(c))
		}
		lines = append(lines, "CATEGORIES:"+strings.Join(escaped, ","))
	}
	return append(lines, "END:VEVENT")
}

// UID derives the stable event UID for a job identifier. Calendar
// clients match on this across renders, so it must never change for the
// same job.
func UID(id string) string {
	sum := sha256.Sum256([]byte(uidPrefix + id))
	return hex.EncodeToString(sum[:]) + uidDomain
}

var textEscaper = strings.NewReplacer(
	"\\", "\\\\",
	";", "\\;",
	",", "\\,",
	"\r\n", "\\n",
	"\n", "\\n",
)

// Escape backslash-escapes the characters RFC 5545 reserves in TEXT
// values and turns literal newlines into the \n escape sequence.
func Escape(s string) string {
	return textEscaper.Replace(s)
}

// Fold wraps every content line of doc at 75 UTF-8 octets, splitting on
// rune boundaries and prefixing continuations with a single space.
func Fold(doc string) string {
	var b strings.Builder
	b.Grow(len(doc) + len(doc)/foldLimit*3)
	for _, line := range strings.Split(doc, "\r\n") {
		for len(line) > foldLimit {
			cut := foldLimit
			for cut > 0 && !utf8.RuneStart(line[cut]) {
				cut--
			}
			b.WriteString(line[:cut])
			b.WriteString("\r\n")
			line = " " + line[cut:]
		}
		b.WriteString(line)
		b.WriteString("\r\n")
	}
	out := b.String()
	// Split introduced one trailing delimiter too many when doc already
	// ended with CRLF.
	out = strings.TrimSuffix(out, "\r\n")
	if !strings.HasSuffix(out, "\r\n") {
		out += "\r\n"
	}
	return out
}

// Unfold reverses Fold, reconstructing the original content lines.
func Unfold(doc string) string {
	return strings.ReplaceAll(doc, "\r\n ", "")
}
