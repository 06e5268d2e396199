// Package logging builds the JSON line logger shared by every component.
// One object per line, with "ts", "level" and "msg" keys.
package logging

import (
	"io"
	"time"

	"github.com/sirupsen/logrus"
)

// zoneFormatter renders timestamps in a fixed location before delegating.
type zoneFormatter struct {
	loc  *time.Location
	next logrus.Formatter
}

func (f *zoneFormatter) Format(e *logrus.Entry) ([]byte, error) {
	e.Time = e.Time.In(f.loc)
	return f.next.Format(e)
}

// New returns a JSON logger writing to w. Unknown levels fall back to info.
func New(w io.Writer, level string, loc *time.Location) *logrus.Logger {
	if loc == nil {
		loc = time.UTC
	}
	l := logrus.New()
	l.SetOutput(w)
	l.SetFormatter(&zoneFormatter{
		loc: loc,
		next: &logrus.JSONFormatter{
			TimestampFormat: time.RFC3339Nano,
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime:  "ts",
				logrus.FieldKeyLevel: "level",
				logrus.FieldKeyMsg:   "msg",
			},
		},
	})
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	l.SetLevel(lvl)
	return l
}

// Discard returns a logger that drops everything; handy in tests.
func Discard() *logrus.Logger {
	return New(io.Discard, "panic", time.UTC)
}

// Location resolves an IANA zone name, falling back to UTC.
func Location(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}
