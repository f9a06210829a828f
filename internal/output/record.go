// Package output assembles and serializes the per-group Record, keeping
// key order equal to discovery order: a record value is built up field
// by field as a group is decoded, then serialized once.
package output

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bartgrantham/goredsea/internal/rds"
)

// OpenDataApp is the payload of the optional open_data_app field.
type OpenDataApp struct {
	Group   rds.GroupType
	AppName string
	Message uint16
}

// Record is the ordered set of fields for one decoded group. Fields are
// serialized in the order they were Set — keys emitted in the order
// they become known.
type Record struct {
	PI       uint16
	Group    rds.GroupType
	TP       bool
	ProgType string

	fields []field
}

type field struct {
	key   string
	value string
}

func (r *Record) push(key, value string) {
	r.fields = append(r.fields, field{key, value})
}

// SetTA appends the ta field.
func (r *Record) SetTA(ta bool) { r.push("ta", boolStr(ta)) }

// SetAltFreqs appends the alt_freqs field with one-decimal frequencies.
func (r *Record) SetAltFreqs(freqs []float64) {
	parts := make([]string, len(freqs))
	for i, f := range freqs {
		parts[i] = strconv.FormatFloat(f, 'f', 1, 64)
	}
	r.push("alt_freqs", "[ "+strings.Join(parts, ", ")+" ]")
}

// SetPS appends the ps field.
func (r *Record) SetPS(ps string) { r.push("ps", quote(ps)) }

// SetRadiotext appends the radiotext field.
func (r *Record) SetRadiotext(rt string) { r.push("radiotext", quote(rt)) }

// SetCountry appends the country field.
func (r *Record) SetCountry(country string) { r.push("country", quote(country)) }

// SetLanguage appends the language field.
func (r *Record) SetLanguage(lang string) { r.push("language", quote(lang)) }

// SetClockTime appends the clock_time field.
func (r *Record) SetClockTime(iso string) { r.push("clock_time", quote(iso)) }

// SetTMCID appends the tmc_id field, 3 hex digits.
func (r *Record) SetTMCID(id uint16) { r.push("tmc_id", quote(fmt.Sprintf("0x%03x", id))) }

// SetEWS appends the ews field, 3 hex digits.
func (r *Record) SetEWS(channel uint16) { r.push("ews", quote(fmt.Sprintf("0x%03x", channel))) }

// SetOpenDataApp appends the open_data_app field.
func (r *Record) SetOpenDataApp(app OpenDataApp) {
	r.push("open_data_app", fmt.Sprintf(
		"{ group: %s, app_name: %s, message: %s }",
		quote(app.Group.String()), quote(app.AppName), quote(fmt.Sprintf("0x%02x", app.Message))))
}

// SetTMCMessage appends the tmc_message field.
func (r *Record) SetTMCMessage(hex string) { r.push("tmc_message", quote(hex)) }

// SetTODO marks an unimplemented group type.
func (r *Record) SetTODO() { r.push("", "/* TODO */") }

// String renders the record in its bracketed key/value form.
func (r *Record) String() string {
	var b strings.Builder
	b.WriteString("{ pi: ")
	b.WriteString(quote(fmt.Sprintf("0x%04x", r.PI)))
	b.WriteString(", group: ")
	b.WriteString(quote(r.Group.String()))
	b.WriteString(", tp: ")
	b.WriteString(boolStr(r.TP))
	b.WriteString(", prog_type: ")
	b.WriteString(quote(r.ProgType))
	for _, f := range r.fields {
		if f.key == "" {
			b.WriteString(" " + f.value)
			continue
		}
		b.WriteString(", ")
		b.WriteString(f.key)
		b.WriteString(": ")
		b.WriteString(f.value)
	}
	b.WriteString(" }")
	return b.String()
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
}

func boolStr(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
