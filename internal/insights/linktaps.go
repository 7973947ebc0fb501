// Package insights computes a profile's usage analytics: view totals, unique
// visitors, per-day series, link-tap breakdowns and contact-exchange quota
// consumption. Everything here is a pure, bounded transformation over one
// profile's already-fetched activity history; persistence of any mutation
// (counter resets, appended events) is the caller's job.
package insights

import (
	"bytes"
	"encoding/json"

	"gorm.io/datatypes"
)

// LinkTap is one entry of the unified link-tap representation: an ordered
// mapping from link identifier to tap count. Order is insertion order and is
// load-bearing: topLink ties break toward the earlier entry.
type LinkTap struct {
	LinkID string `json:"linkId"`
	Count  int64  `json:"count"`
}

// LinkTapList is the unified shape every aggregation depends on. The stored
// column historically held three shapes (plain JSON object, ordered-key map,
// append-only event array); DecodeLinkTaps folds all of them into this one.
type LinkTapList []LinkTap

// Increment bumps the count for a link, appending it when unseen.
func (l LinkTapList) Increment(linkID string) LinkTapList {
	for i := range l {
		if l[i].LinkID == linkID {
			l[i].Count++
			return l
		}
	}
	return append(l, LinkTap{LinkID: linkID, Count: 1})
}

// Total sums all counts. Negative counts (corrupt rows) contribute zero so a
// bad entry can never drag the total below the sum of the healthy ones.
func (l LinkTapList) Total() int64 {
	var total int64
	for _, t := range l {
		if t.Count > 0 {
			total += t.Count
		}
	}
	return total
}

// Top returns the link with the strictly highest count. Ties resolve to the
// first entry in list order, which keeps the result deterministic across
// runs. Empty input returns "".
func (l LinkTapList) Top() string {
	var (
		top  string
		best int64
	)
	for _, t := range l {
		if t.Count > best {
			top = t.LinkID
			best = t.Count
		}
	}
	return top
}

// tapEntry is the decoded form of one array element. The pointer Count
// distinguishes the current {linkId,count} shape from the legacy event array
// structurally: events carry no count key at all, so a count of zero is
// never evidence of the legacy shape.
type tapEntry struct {
	LinkID string `json:"linkId"`
	Count  *int64 `json:"count"`
}

// DecodeLinkTaps reads a stored link-tap column in any of its historical
// shapes and returns the unified ordered list.
//
//   - array of {linkId,count}: taken as-is (current shape)
//   - array of {linkId} events: folded into counts, first-tap order
//   - JSON object {linkId: count}: key order of the document is preserved
//
// Invalid or missing data decodes to an empty list, never an error: the
// aggregator must not fail on absent collections.
func DecodeLinkTaps(raw datatypes.JSON) LinkTapList {
	if len(raw) == 0 {
		return LinkTapList{}
	}

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return LinkTapList{}
	}

	if trimmed[0] == '[' {
		var entries []tapEntry
		if err := json.Unmarshal(trimmed, &entries); err != nil {
			return LinkTapList{}
		}

		hasCounts := false
		for _, e := range entries {
			if e.Count != nil {
				hasCounts = true
				break
			}
		}

		if hasCounts {
			list := make(LinkTapList, 0, len(entries))
			for _, e := range entries {
				if e.LinkID == "" {
					continue
				}
				var count int64
				if e.Count != nil && *e.Count > 0 {
					count = *e.Count
				}
				list = append(list, LinkTap{LinkID: e.LinkID, Count: count})
			}
			return list
		}

		folded := LinkTapList{}
		for _, e := range entries {
			if e.LinkID != "" {
				folded = folded.Increment(e.LinkID)
			}
		}
		return folded
	}

	if trimmed[0] == '{' {
		return decodeOrderedObject(trimmed)
	}

	return LinkTapList{}
}

// decodeOrderedObject walks the object token stream so that document key
// order survives the decode. encoding/json map decoding would scramble it
// and break the deterministic topLink tie-break.
func decodeOrderedObject(raw []byte) LinkTapList {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	// opening brace
	if _, err := dec.Token(); err != nil {
		return LinkTapList{}
	}

	list := LinkTapList{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return list
		}
		key, ok := keyTok.(string)
		if !ok {
			return list
		}

		valTok, err := dec.Token()
		if err != nil {
			return list
		}

		var count int64
		if num, ok := valTok.(json.Number); ok {
			if n, err := num.Int64(); err == nil && n > 0 {
				count = n
			}
		}
		list = append(list, LinkTap{LinkID: key, Count: count})
	}
	return list
}

// EncodeLinkTaps serializes the unified list back into the stored column.
func EncodeLinkTaps(list LinkTapList) datatypes.JSON {
	if list == nil {
		list = LinkTapList{}
	}
	raw, err := json.Marshal(list)
	if err != nil {
		return datatypes.JSON([]byte("[]"))
	}
	return datatypes.JSON(raw)
}
