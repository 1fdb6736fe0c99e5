// Package sharelink encodes an address book into a URL query value and back,
// so one user can send their friend list to another and the recipient's
// session starts pre-filled.
package sharelink

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// QueryParam is the URL query key carrying the encoded friend list.
const QueryParam = "friends"

// Friend is the (name, address) pair embedded in a share link. Coordinates
// are deliberately never part of the encoding: addresses are re-geocoded on
// load, so a link cannot go stale when the geocoding service's results drift.
type Friend struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

// ErrMalformed is returned by Parse when the query value is not a valid
// encoding of a friend list.
var ErrMalformed = errors.New("malformed share link payload")

// Build encodes the friend list as base64url-wrapped JSON. The wrapping
// keeps the value inert in chat clients and URL shorteners that mangle
// percent-encoded braces.
func Build(friends []Friend) string {
	raw, err := json.Marshal(friends)
	if err != nil {
		// A slice of two-string structs cannot fail to marshal.
		panic(err)
	}

	return base64.RawURLEncoding.EncodeToString(raw)
}

// Parse decodes a query value produced by Build. Items without an address
// are dropped rather than failing the whole list; a payload that is not
// valid base64url JSON at all is reported as ErrMalformed. Unknown JSON
// fields are ignored, so links built by older or newer versions still load.
func Parse(value string) ([]Friend, error) {
	raw, err := base64.RawURLEncoding.DecodeString(value)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	var friends []Friend
	if err = json.Unmarshal(raw, &friends); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	kept := friends[:0]
	for _, friend := range friends {
		if strings.TrimSpace(friend.Address) == "" {
			continue
		}
		kept = append(kept, friend)
	}

	return kept, nil
}

// URL returns an absolute share link for the given base page URL. An empty
// friend list yields the base URL unchanged.
func URL(base string, friends []Friend) string {
	if len(friends) == 0 {
		return base
	}

	values := url.Values{QueryParam: {Build(friends)}}

	return base + "?" + values.Encode()
}
