package decoder

import (
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
)

// corruptHeaders are full header lines of messages known to be corrupt in the
// published archives. Matching messages are skipped before any parsing.
var corruptHeaders = mapset.NewThreadUnsafeSet(
	"2016:01:21:15:19:12:GMT: subject=BMRA.BM.T_DIDC1.BOALF",
	"2016:04:13:06:30:02:GMT: subject=BMRA.BM.T_WBURB-2.FPN",
	"2016:09:28:23:15:43:GMT: subject=BMRA.SYSTEM.FUELINST",
	"2017:02:14:11:00:06:GMT: subject=BMRA.BP.E_BRDUW-1.BOAV",
	"2017:11:02:16:45:20:GMT: subject=BMRA.SYSTEM.DISEBSP",
	"2018:05:30:22:20:09:GMT: subject=BMRA.DYNAMIC.T_COTPS-3.RURE",
)

// ignoredTypes are message type segments that appear in the feed but carry
// no market data.
var ignoredTypes = mapset.NewThreadUnsafeSet(
	"TEST",
	"TESTING",
	"HEARTBEAT",
)

// IsCorrupt reports whether a header line is on the corrupt message deny-list.
func IsCorrupt(header string) bool {
	return corruptHeaders.Contains(strings.TrimSpace(header))
}
