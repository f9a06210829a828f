// Package station implements the group-to-semantics decoder: a per-PI,
// stateful aggregate that interprets group types 0, 1, 2, 3, 4, 8 and
// 14, maintains the incrementally-built PS/RT strings, and tracks
// open-data-application bindings.
package station

import (
	"fmt"
	"math"
	"sort"

	"github.com/bartgrantham/goredsea/internal/output"
	"github.com/bartgrantham/goredsea/internal/rds"
	"github.com/bartgrantham/goredsea/internal/rdsstring"
	"github.com/bartgrantham/goredsea/internal/tables"
	"github.com/bartgrantham/goredsea/internal/tmc"
)

// Station is the mutable per-PI aggregate. It is created on first
// observation of a PI, mutated only by Update, and never destroyed by
// the core.
type Station struct {
	pi uint16

	isTP, isTA, isMusic bool
	pty                 int

	ps *rdsstring.String
	rt *rdsstring.String
	rtAB int

	altFreqs    map[float64]bool
	numAltFreqs int

	pin        uint16
	pagerTNG   uint16
	pagerInterval uint16
	pagerOPC   uint16
	pagerPAC   uint16
	pagerECC   uint16
	pagerCCF   uint16
	linkageLA  bool
	ecc        uint8
	cc         uint8
	hasCountry bool
	lang       uint8
	tmcID      uint16
	ewsChannel uint16

	clockTime string

	openDataAppForGroup map[rds.GroupType]uint16
}

// New creates a Station for the given PI.
func New(pi uint16) *Station {
	return &Station{
		pi:                  pi,
		ps:                  rdsstring.New(8),
		rt:                  rdsstring.New(64),
		altFreqs:            make(map[float64]bool),
		openDataAppForGroup: make(map[rds.GroupType]uint16),
	}
}

// PI returns the station's programme identification code.
func (s *Station) PI() uint16 { return s.pi }

// Update interprets one group, mutating station state and returning the
// Record assembled for it.
func (s *Station) Update(group rds.Group) *output.Record {
	s.isTP = rds.Bits(group.Block2, 10, 1) == 1
	s.pty = int(rds.Bits(group.Block2, 5, 5))

	rec := &output.Record{
		PI:       s.pi,
		Group:    group.Type,
		TP:       s.isTP,
		ProgType: tables.PTYName(s.pty, tables.IsNorthAmerica(s.pi)),
	}

	switch group.Type.Num {
	case 0:
		s.decodeType0(group, rec)
	case 1:
		s.decodeType1(group, rec)
	case 2:
		s.decodeType2(group, rec)
	case 3:
		s.decodeType3(group, rec)
	case 4:
		s.decodeType4(group, rec)
	case 8:
		s.decodeType8(group, rec)
	case 14:
		// Enhanced Other Networks: recognised, not decoded.
	default:
		rec.SetTODO()
	}

	return rec
}

// HasPS reports whether the programme-service name is currently fully
// received (its sequential run covers the expected length).
func (s *Station) HasPS() bool { return s.ps.IsComplete() }

// PS returns the last fully-received programme-service name.
func (s *Station) PS() string { return s.ps.LastComplete() }

// RT returns the last fully-received radiotext.
func (s *Station) RT() string { return s.rt.LastComplete() }

func (s *Station) addAltFreq(code byte) {
	switch {
	case code >= 1 && code <= 204:
		s.altFreqs[87.5+float64(code)/10.0] = true
	case code == 205:
		// filler code
	case code == 224:
		// "no AF exists"
	case code >= 225 && code <= 249:
		s.numAltFreqs = int(code) - 224
	case code == 250:
		// AM/LF frequency follows; not decoded
	}
}

func (s *Station) sortedAltFreqs() []float64 {
	out := make([]float64, 0, len(s.altFreqs))
	for f := range s.altFreqs {
		out = append(out, f)
	}
	sort.Float64s(out)
	return out
}

func (s *Station) updatePS(pos int, chars []byte, rec *output.Record) {
	for i, c := range chars {
		s.ps.SetAt(pos+i, c)
	}
	if s.ps.IsComplete() {
		rec.SetPS(s.ps.LastComplete())
	}
}

func (s *Station) updateRadiotext(pos int, chars []byte, rec *output.Record) {
	for i, c := range chars {
		s.rt.SetAt(pos+i, c)
	}
	if s.rt.IsComplete() {
		rec.SetRadiotext(s.rt.LastComplete())
	}
}

// decodeType0 handles Basic Tuning and Switching Information (group
// type 0).
func (s *Station) decodeType0(group rds.Group, rec *output.Record) {
	s.isTA = rds.Bits(group.Block2, 4, 1) == 1
	s.isMusic = rds.Bits(group.Block2, 3, 1) == 1
	rec.SetTA(s.isTA)

	if group.NumBlocks < 3 {
		return
	}

	if group.Type.AB == rds.TypeA {
		s.addAltFreq(byte(rds.Bits(group.Block3, 8, 8)))
		s.addAltFreq(byte(rds.Bits(group.Block3, 0, 8)))

		if len(s.altFreqs) == s.numAltFreqs && s.numAltFreqs > 0 {
			rec.SetAltFreqs(s.sortedAltFreqs())
			s.altFreqs = make(map[float64]bool)
		}
	}

	if group.NumBlocks < 4 {
		return
	}

	pos := int(rds.Bits(group.Block2, 0, 2)) * 2
	s.updatePS(pos, []byte{
		byte(rds.Bits(group.Block4, 8, 8)),
		byte(rds.Bits(group.Block4, 0, 8)),
	}, rec)
}

// decodeType1 handles Programme Item Number and Slow Labelling Codes
// (group type 1).
func (s *Station) decodeType1(group rds.Group, rec *output.Record) {
	if group.NumBlocks < 4 {
		return
	}

	s.pin = group.Block4

	if group.Type.AB != rds.TypeA {
		return
	}

	s.pagerTNG = rds.Bits(group.Block2, 2, 3)
	if s.pagerTNG != 0 {
		s.pagerInterval = rds.Bits(group.Block2, 0, 2)
	}
	s.linkageLA = rds.Bits(group.Block3, 15, 1) == 1

	slcVariant := rds.Bits(group.Block3, 12, 3)

	switch slcVariant {
	case 0:
		if s.pagerTNG != 0 {
			s.pagerOPC = rds.Bits(group.Block3, 8, 4)
		}
		s.decodePagerPINless(group)

		s.ecc = byte(rds.Bits(group.Block3, 0, 8))
		s.cc = byte(rds.Bits(group.Block1, 12, 4))
		if s.ecc != 0 {
			s.hasCountry = true
			rec.SetCountry(tables.CountryString(s.pi, s.ecc))
		}

	case 1:
		s.tmcID = rds.Bits(group.Block3, 0, 12)
		rec.SetTMCID(s.tmcID)

	case 2:
		if s.pagerTNG != 0 {
			s.pagerPAC = rds.Bits(group.Block3, 0, 6)
			s.pagerOPC = rds.Bits(group.Block3, 8, 4)
		}
		s.decodePagerPINless(group)

	case 3:
		s.lang = byte(rds.Bits(group.Block3, 0, 8))
		rec.SetLanguage(tables.LanguageString(s.lang))

	case 6:
		// broadcaster data: not decoded

	case 7:
		s.ewsChannel = rds.Bits(group.Block3, 0, 12)
		rec.SetEWS(s.ewsChannel)
	}
}

// decodePagerPINless handles the "No PIN" pager sub-record shared by
// slc_variant 0 and 2, per RBDS section M.3.2.4.3.
func (s *Station) decodePagerPINless(group rds.Group) {
	if group.NumBlocks != 4 || (group.Block4>>11) != 0 {
		return
	}
	subtype := rds.Bits(group.Block4, 10, 1)
	switch subtype {
	case 0:
		if s.pagerTNG != 0 {
			s.pagerPAC = rds.Bits(group.Block4, 4, 6)
			s.pagerOPC = rds.Bits(group.Block4, 0, 4)
		}
	case 1:
		if s.pagerTNG != 0 {
			b := rds.Bits(group.Block4, 8, 2)
			switch b {
			case 0:
				s.pagerECC = rds.Bits(group.Block4, 0, 6)
			case 3:
				s.pagerCCF = rds.Bits(group.Block4, 0, 4)
			}
		}
	}
}

// decodeType2 handles Radiotext (group type 2).
func (s *Station) decodeType2(group rds.Group, rec *output.Record) {
	if group.NumBlocks < 3 {
		return
	}

	multiplier := 2
	if group.Type.AB == rds.TypeA {
		multiplier = 4
	}
	rtPosition := int(rds.Bits(group.Block2, 0, 4)) * multiplier

	prevAB := s.rtAB
	s.rtAB = int(rds.Bits(group.Block2, 4, 1))
	if prevAB != s.rtAB {
		s.rt.Clear()
	}

	if group.Type.AB == rds.TypeA {
		s.updateRadiotext(rtPosition, []byte{
			byte(rds.Bits(group.Block3, 8, 8)),
			byte(rds.Bits(group.Block3, 0, 8)),
		}, rec)
	}

	if group.NumBlocks == 4 {
		s.updateRadiotext(rtPosition+2, []byte{
			byte(rds.Bits(group.Block4, 8, 8)),
			byte(rds.Bits(group.Block4, 0, 8)),
		}, rec)
	}
}

// decodeType3 handles Open Data Application announcements (group
// type 3).
func (s *Station) decodeType3(group rds.Group, rec *output.Record) {
	if group.NumBlocks < 4 || group.Type.AB != rds.TypeA {
		return
	}

	odaGroup := rds.NewGroupType(rds.Bits(group.Block2, 0, 5))
	odaAID := group.Block4
	odaMsg := group.Block3

	s.openDataAppForGroup[odaGroup] = odaAID

	rec.SetOpenDataApp(output.OpenDataApp{
		Group:   odaGroup,
		AppName: tables.AppName(odaAID),
		Message: odaMsg,
	})
}

// decodeType4 handles Clock-Time and Date (group type 4).
//
// The hour field is bits(block4, 12, 4) — four bits, not the fourteen
// a naive 14-bit read starting at bit 12 would (that overruns the
// 16-bit word; see DESIGN.md).
func (s *Station) decodeType4(group rds.Group, rec *output.Record) {
	if group.NumBlocks < 3 || group.Type.AB != rds.TypeA {
		return
	}

	mjd := (int(rds.Bits(group.Block2, 0, 2)) << 15) + int(rds.Bits(group.Block3, 1, 15))

	if group.NumBlocks != 4 {
		return
	}

	sign := 1.0
	if rds.Bits(group.Block4, 5, 1) == 1 {
		sign = -1.0
	}
	lto := sign * float64(rds.Bits(group.Block4, 0, 5)) / 2.0
	mjd = int(math.Floor(float64(mjd) + lto/24.0))

	yr := int(float64(mjd-15078) / 365.25 - 0.2/365.25)
	mo := int((float64(mjd) - 14956.1 - math.Trunc(float64(yr)*365.25)) / 30.6001)
	dy := mjd - 14956 - int(math.Trunc(float64(yr)*365.25)) - int(math.Trunc(float64(mo)*30.6001))
	if mo == 14 || mo == 15 {
		yr++
		mo -= 12
	}
	yr += 1900
	mo--

	ltom := (lto - math.Trunc(lto)) * 60

	hi := int(rds.Bits(group.Block3, 0, 1))<<4 + int(rds.Bits(group.Block4, 12, 4))
	hr := int(float64(hi)+lto) % 24
	mn := int(rds.Bits(group.Block4, 6, 6)) + int(ltom)

	s.clockTime = fmt.Sprintf("%04d-%02d-%02dT%02d:%02d:00%+03d:%02d",
		yr, mo, dy, hr, mn, int(lto), int(ltom))
	rec.SetClockTime(s.clockTime)
}

// decodeType8 handles the TMC/ODA payload (group type 8): if this
// group type is bound to a registered TMC AID, emit the envelope as a
// hex string for downstream parsing.
func (s *Station) decodeType8(group rds.Group, rec *output.Record) {
	aid, ok := s.openDataAppForGroup[group.Type]
	if !ok {
		return
	}
	env, ok := tmc.Recognize(group, aid)
	if !ok {
		return
	}
	rec.SetTMCMessage(env.Hex())
}
