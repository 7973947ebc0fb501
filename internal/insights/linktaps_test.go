package insights

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"
)

func TestDecodeLinkTapsCountArray(t *testing.T) {
	raw := datatypes.JSON(`[{"linkId":"github","count":5},{"linkId":"website","count":2}]`)

	list := DecodeLinkTaps(raw)
	assert.Equal(t, LinkTapList{
		{LinkID: "github", Count: 5},
		{LinkID: "website", Count: 2},
	}, list)
}

func TestDecodeLinkTapsAllZeroCountArray(t *testing.T) {
	// Count keys present but every value zero, as a re-encoded list looks
	// after clamping. This is the current shape, not a legacy event array,
	// and must not be refolded into counts of one.
	raw := datatypes.JSON(`[{"linkId":"a","count":0},{"linkId":"b","count":0}]`)

	list := DecodeLinkTaps(raw)
	assert.Equal(t, LinkTapList{
		{LinkID: "a", Count: 0},
		{LinkID: "b", Count: 0},
	}, list)

	// Decoding is stable across re-encoding of a clamped list.
	clamped := DecodeLinkTaps(datatypes.JSON(`[{"linkId":"bad","count":-7}]`))
	assert.Equal(t, clamped, DecodeLinkTaps(EncodeLinkTaps(clamped)))
}

func TestDecodeLinkTapsEventArray(t *testing.T) {
	// Legacy shape: one entry per tap, folded into counts in first-tap order.
	raw := datatypes.JSON(`[{"linkId":"a"},{"linkId":"b"},{"linkId":"a"},{"linkId":"a"}]`)

	list := DecodeLinkTaps(raw)
	assert.Equal(t, LinkTapList{
		{LinkID: "a", Count: 3},
		{LinkID: "b", Count: 1},
	}, list)
}

func TestDecodeLinkTapsObjectPreservesKeyOrder(t *testing.T) {
	raw := datatypes.JSON(`{"zeta":3,"alpha":3,"mid":1}`)

	list := DecodeLinkTaps(raw)
	assert.Equal(t, LinkTapList{
		{LinkID: "zeta", Count: 3},
		{LinkID: "alpha", Count: 3},
		{LinkID: "mid", Count: 1},
	}, list)

	// The tie between zeta and alpha resolves to the earlier document key.
	assert.Equal(t, "zeta", list.Top())
}

func TestDecodeLinkTapsGarbage(t *testing.T) {
	for _, raw := range []string{"", "null", "   ", "not json", `42`, `"str"`} {
		assert.Empty(t, DecodeLinkTaps(datatypes.JSON(raw)), "input %q", raw)
	}
}

func TestDecodeLinkTapsNegativeCounts(t *testing.T) {
	raw := datatypes.JSON(`[{"linkId":"ok","count":2},{"linkId":"bad","count":-7}]`)

	list := DecodeLinkTaps(raw)
	assert.Equal(t, LinkTapList{
		{LinkID: "ok", Count: 2},
		{LinkID: "bad", Count: 0},
	}, list)
	assert.Equal(t, int64(2), list.Total())
}

func TestLinkTapListTotal(t *testing.T) {
	list := LinkTapList{
		{LinkID: "a", Count: 3},
		{LinkID: "b", Count: -5},
		{LinkID: "c", Count: 2},
	}
	assert.Equal(t, int64(5), list.Total())
	assert.Equal(t, int64(0), LinkTapList{}.Total())
}

func TestLinkTapListTop(t *testing.T) {
	assert.Equal(t, "", LinkTapList{}.Top())

	// Strictly highest wins.
	list := LinkTapList{{LinkID: "a", Count: 1}, {LinkID: "b", Count: 9}}
	assert.Equal(t, "b", list.Top())

	// All ties resolve to the first in list order.
	tied := LinkTapList{{LinkID: "x", Count: 4}, {LinkID: "y", Count: 4}}
	assert.Equal(t, "x", tied.Top())

	// All-zero counts produce no top link.
	zeros := LinkTapList{{LinkID: "x", Count: 0}, {LinkID: "y", Count: 0}}
	assert.Equal(t, "", zeros.Top())
}

func TestLinkTapListIncrement(t *testing.T) {
	var list LinkTapList
	list = list.Increment("a")
	list = list.Increment("b")
	list = list.Increment("a")

	assert.Equal(t, LinkTapList{
		{LinkID: "a", Count: 2},
		{LinkID: "b", Count: 1},
	}, list)
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	list := LinkTapList{{LinkID: "github", Count: 7}}
	assert.Equal(t, list, DecodeLinkTaps(EncodeLinkTaps(list)))

	assert.Equal(t, datatypes.JSON(`[]`), EncodeLinkTaps(nil))
}
