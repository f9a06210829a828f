// Package tables supplies static lookup data: the LCD character set,
// programme-type names, country names, language names and the
// open-data-application registry. None of it participates in decode
// correctness; it only turns numeric codes into display strings.
package tables

import "fmt"

// LCDChar maps one PS/RT byte to its displayable form, per the EBU Latin
// character set RDS uses for text fields. 0x0A renders as a newline;
// other codes outside the printable ranges render as a single space.
func LCDChar(code byte) string {
	switch {
	case code >= 0x20 && code <= 0x7E:
		return string(rune(code))
	case code == 0x0A:
		return "\n"
	default:
		if r, ok := lcdHighSet[code]; ok {
			return r
		}
		return " "
	}
}

// lcdHighSet covers the accented/extended characters in the upper half
// of the RDS LCD table (0xA0-0xFF) that have no direct Latin-1 mapping.
var lcdHighSet = map[byte]string{
	0xA0: "á", 0xA1: "à", 0xA2: "é", 0xA3: "è", 0xA4: "í", 0xA5: "ì",
	0xA6: "ó", 0xA7: "ò", 0xA8: "ú", 0xA9: "ù", 0xAA: "Ñ", 0xAB: "Ç",
	0xAC: "Ş", 0xAD: "β", 0xAE: "¡", 0xAF: "Ĳ",
	0xB0: "â", 0xB1: "ä", 0xB2: "ê", 0xB3: "ë", 0xB4: "î", 0xB5: "ï",
	0xB6: "ô", 0xB7: "ö", 0xB8: "û", 0xB9: "ü", 0xBA: "ñ", 0xBB: "ç",
	0xBC: "ş", 0xBD: "ğ", 0xBE: "ı", 0xBF: "ĳ",
	0xC0: "ª", 0xC1: "α", 0xC2: "©", 0xC3: "‰", 0xC4: "Ǵ", 0xC5: "Ⱦ",
	0xC6: "ĸ", 0xC7: "ł", 0xC8: "ø", 0xC9: "ő", 0xCA: "π", 0xCB: "€",
	0xCC: "£", 0xCD: "$", 0xCE: "←", 0xCF: "↑",
	0xD0: "º", 0xD1: "¹", 0xD2: "²", 0xD3: "³", 0xD4: "±", 0xD5: "İ",
	0xD6: "ń", 0xD7: "ŉ", 0xD8: "ħ", 0xD9: "ĥ", 0xDA: "ě", 0xDB: "Ő",
	0xDC: "ū", 0xDD: "ŕ", 0xDE: "→", 0xDF: "↓",
	0xE0: "Á", 0xE1: "À", 0xE2: "É", 0xE3: "È", 0xE4: "Í", 0xE5: "Ì",
	0xE6: "Ó", 0xE7: "Ò", 0xE8: "Ú", 0xE9: "Ù", 0xEA: "Ř", 0xEB: "Č",
	0xEC: "Š", 0xED: "Ž", 0xEE: "Ð", 0xEF: "Ŀ",
	0xF0: "Â", 0xF1: "Ä", 0xF2: "Ê", 0xF3: "Ë", 0xF4: "Î", 0xF5: "Ï",
	0xF6: "Ô", 0xF7: "Ö", 0xF8: "Û", 0xF9: "Ü", 0xFA: "ř", 0xFB: "č",
	0xFC: "š", 0xFD: "ž", 0xFE: "Ð", 0xFF: "ŀ",
}

// ptyEU and ptyNA are the two PTY tables the RDS/RBDS standard defines;
// selection depends on whether the station's country maps to North
// America.
var ptyEU = [32]string{
	"No programme type", "News", "Current Affairs", "Information", "Sport",
	"Education", "Drama", "Culture", "Science", "Varied", "Pop Music",
	"Rock Music", "Easy Listening Music", "Light Classical", "Serious Classical",
	"Other Music", "Weather", "Finance", "Children's Programmes", "Social Affairs",
	"Religion", "Phone In", "Travel", "Leisure", "Jazz Music", "Country Music",
	"National Music", "Oldies Music", "Folk Music", "Documentary", "Alarm Test", "Alarm",
}

var ptyNA = [32]string{
	"No program type", "News", "Information", "Sports", "Talk", "Rock",
	"Classic Rock", "Adult Hits", "Soft Rock", "Top 40", "Country", "Oldies",
	"Soft", "Nostalgia", "Jazz", "Classical", "Rhythm and Blues",
	"Soft Rhythm and Blues", "Language", "Religious Music", "Religious Talk",
	"Personality", "Public", "College", "Unassigned", "Unassigned",
	"Unassigned", "Unassigned", "Unassigned", "Weather", "Emergency Test", "Emergency",
}

// PTYName returns the programme-type name for the given 5-bit code.
// region selects RBDS (North America) vs. EU naming; callers derive it
// from the station's PI via IsNorthAmerica.
func PTYName(pty int, northAmerica bool) string {
	if pty < 0 || pty > 31 {
		return "Unknown"
	}
	if northAmerica {
		return ptyNA[pty]
	}
	return ptyEU[pty]
}

// IsNorthAmerica reports whether a PI code falls in the North American
// call-sign allocation (4096-39247), used to recognize "W"/"K" stations.
func IsNorthAmerica(pi uint16) bool {
	return pi >= 4096 && pi <= 39247
}

// countryNames maps (ecc<<8 | cc) to the RDS/RBDS country name. Only a
// representative subset is populated; unknown combinations render a
// placeholder rather than failing.
var countryNames = map[uint16]string{
	0xA101: "United States", // ecc=0xA1, cc=0x1
	0xE101: "Germany",       // ecc=0xE1, cc=0x1
	0xE10F: "France",        // ecc=0xE1, cc=0xF
	0xE205: "Italy",         // ecc=0xE2, cc=0x5
	0xCE0C: "United Kingdom", // ecc=0xCE, cc=0xC
	0xE108: "Netherlands",   // ecc=0xE1, cc=0x8
	0xE106: "Belgium",       // ecc=0xE1, cc=0x6
	0xE20E: "Spain",         // ecc=0xE2, cc=0xE
	0xA103: "Canada",        // ecc=0xA1, cc=0x3
	0xE20F: "Norway",        // ecc=0xE2, cc=0xF
	0xE30E: "Sweden",        // ecc=0xE3, cc=0xE
}

// CountryString resolves the ECC+CC pair (CC is PI's top nibble) to a
// country name.
func CountryString(pi uint16, ecc uint8) string {
	cc := (pi >> 12) & 0xF
	key := uint16(ecc)<<8 | cc
	if name, ok := countryNames[key]; ok {
		return name
	}
	return fmt.Sprintf("unknown (ecc=0x%02x cc=0x%x)", ecc, cc)
}

// languageNames is the RDS language-code table (ETSI TS 101 756 Annex H),
// covering the common codes.
var languageNames = map[uint8]string{
	0x00: "Unknown", 0x01: "Albanian", 0x02: "Breton", 0x03: "Catalan",
	0x04: "Croatian", 0x05: "Welsh", 0x06: "Czech", 0x07: "Danish",
	0x08: "German", 0x09: "English", 0x0A: "Spanish", 0x0B: "Esperanto",
	0x0C: "Estonian", 0x0D: "Basque", 0x0E: "Faroese", 0x0F: "French",
	0x10: "Frisian", 0x11: "Irish", 0x12: "Gaelic", 0x13: "Galician",
	0x14: "Icelandic", 0x15: "Italian", 0x16: "Lappish", 0x17: "Latin",
	0x18: "Latvian", 0x19: "Luxembourgian", 0x1A: "Lithuanian",
	0x1B: "Hungarian", 0x1C: "Maltese", 0x1D: "Dutch", 0x1E: "Norwegian",
	0x1F: "Occitan", 0x20: "Polish", 0x21: "Portuguese", 0x22: "Romanian",
	0x23: "Romansh", 0x24: "Serbian", 0x25: "Slovak", 0x26: "Slovene",
	0x27: "Finnish", 0x28: "Swedish", 0x29: "Turkish", 0x2A: "Flemish",
	0x2B: "Walloon",
}

// LanguageString resolves an RDS language code.
func LanguageString(code uint8) string {
	if name, ok := languageNames[code]; ok {
		return name
	}
	return fmt.Sprintf("unknown (0x%02x)", code)
}

// appNames is the ODA application-identifier registry published by the
// RDS Forum. TMC's two published AIDs are the ones the rest of this repo
// actually checks for (see internal/tmc).
var appNames = map[uint16]string{
	0xCD46: "TMC (ALERT-C)",
	0xCD47: "TMC (ALERT-C)",
	0x4BD7: "RadioText Plus (RT+)",
	0x4BD8: "RadioText Plus (RT+) for eRT",
	0x6552: "Enhanced RadioText",
}

// AppName resolves an ODA AID to its registered name.
func AppName(aid uint16) string {
	if name, ok := appNames[aid]; ok {
		return name
	}
	return fmt.Sprintf("unknown (0x%04x)", aid)
}
