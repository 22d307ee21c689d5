package widget

import (
	"regexp"
	"strings"
)

// arrayIndexedID matches wanted-focus ids that address one item of a repeated
// group, e.g. "instrument_2".
var arrayIndexedID = regexp.MustCompile(`^\w+_\d+$`)

// ClaimsFocus reports whether a field should claim focus for the wanted id.
// A field claims focus on an exact id match, or when the wanted id uses
// array-indexed addressing and the field id extends it past a digit boundary:
// wanted "instrument_2" is claimed by "instrument_2" and "instrument_2_name"
// but not by "instrument_20".
func ClaimsFocus(fieldID, wanted string) bool {
	if fieldID == "" || wanted == "" {
		return false
	}
	if fieldID == wanted {
		return true
	}
	if !arrayIndexedID.MatchString(wanted) {
		return false
	}
	if !strings.HasPrefix(fieldID, wanted) {
		return false
	}
	next := fieldID[len(wanted)]
	return next < '0' || next > '9'
}
