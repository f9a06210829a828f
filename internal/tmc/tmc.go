// Package tmc recognises the Traffic Message Channel envelope carried in
// group type 8. Event semantics, location-table lookups and
// service-key decryption are a separate concern, out of scope here —
// this package only packs the raw envelope bytes for a downstream
// parser to consume.
package tmc

import (
	"fmt"

	"github.com/bartgrantham/goredsea/internal/rds"
)

// AID values the RDS Forum has registered for the ALERT-C TMC
// application.
const (
	AIDPrimary   = 0xCD46
	AIDAlternate = 0xCD47
)

// Envelope is the raw, unparsed TMC payload for one type-8 group:
// bits(block2,0,5) concatenated with block3 and block4.
type Envelope struct {
	Group      rds.GroupType
	AID        uint16
	Continuity byte // bits(block2, 0, 5)
	Block3     uint16
	Block4     uint16
}

// Recognize builds an Envelope from a type-8 group if aid (the AID the
// station previously bound to this group type via a type-3A ODA
// announcement) is one of the registered TMC AIDs.
func Recognize(group rds.Group, aid uint16) (Envelope, bool) {
	if aid != AIDPrimary && aid != AIDAlternate {
		return Envelope{}, false
	}
	return Envelope{
		Group:      group.Type,
		AID:        aid,
		Continuity: byte(rds.Bits(group.Block2, 0, 5)),
		Block3:     group.Block3,
		Block4:     group.Block4,
	}, true
}

// Hex renders the envelope as the "0xHHHHHHHHHH" form (two hex digits
// for the 5-bit field, four each for block3 and block4) used for
// tmc_message.
func (e Envelope) Hex() string {
	return fmt.Sprintf("0x%02x%04x%04x", e.Continuity, e.Block3, e.Block4)
}
