package output

import (
	"testing"

	"github.com/bartgrantham/goredsea/internal/rds"
	"github.com/stretchr/testify/assert"
)

func TestRecordMinimalFields(t *testing.T) {
	r := &Record{
		PI:       0x1234,
		Group:    rds.GroupType{Num: 0, AB: rds.TypeA},
		TP:       true,
		ProgType: "Rock",
	}
	got := r.String()
	want := `{ pi: "0x1234", group: "0A", tp: true, prog_type: "Rock" }`
	assert.Equal(t, want, got)
}

func TestRecordOrdersFieldsByDiscovery(t *testing.T) {
	r := &Record{PI: 0x1234, Group: rds.GroupType{Num: 0, AB: rds.TypeA}, TP: false, ProgType: "News"}
	r.SetTA(true)
	r.SetAltFreqs([]float64{88.0, 90.5})
	r.SetPS("HELLOWLD")

	got := r.String()
	want := `{ pi: "0x1234", group: "0A", tp: false, prog_type: "News", ta: true, alt_freqs: [ 88.0, 90.5 ], ps: "HELLOWLD" }`
	assert.Equal(t, want, got)
}

func TestRecordTMCIDFormatting(t *testing.T) {
	r := &Record{PI: 0x1234, Group: rds.GroupType{Num: 1, AB: rds.TypeA}, ProgType: "News"}
	r.SetTMCID(0x1AB)
	assert.Contains(t, r.String(), `tmc_id: "0x1ab"`)
}

func TestRecordTODOMarker(t *testing.T) {
	r := &Record{PI: 0x1234, Group: rds.GroupType{Num: 9, AB: rds.TypeA}, ProgType: "News"}
	r.SetTODO()
	assert.Contains(t, r.String(), "/* TODO */")
}
