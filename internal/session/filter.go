package session

import (
	"strings"

	"github.com/callvault/callvault/internal/model"
)

// Filters is the predicate set for the second-order filter operation. An
// empty value imposes no constraint on that field.
type Filters struct {
	ExtensionNum string
	ObjectID     string
	ChannelNum   string
	AniAliDigits string
	Name         string
}

// Empty reports whether no predicate is set.
func (f Filters) Empty() bool {
	return f == Filters{}
}

// Match reports whether rec satisfies every active predicate. Extension,
// object id and channel require exact equality; ANI/ALI digits match by
// substring; Name matches by substring against the record's fullName or
// name field.
func (f Filters) Match(rec model.Record) bool {
	if f.ExtensionNum != "" && rec.Get("extensionNum") != f.ExtensionNum {
		return false
	}
	if f.ObjectID != "" && rec.Get("objectID") != f.ObjectID {
		return false
	}
	if f.ChannelNum != "" && rec.Get("channelNum") != f.ChannelNum {
		return false
	}
	if f.AniAliDigits != "" && !strings.Contains(rec.Get("aniAliDigits"), f.AniAliDigits) {
		return false
	}
	if f.Name != "" &&
		!strings.Contains(rec.Get("fullName"), f.Name) &&
		!strings.Contains(rec.Get("name"), f.Name) {
		return false
	}
	return true
}
