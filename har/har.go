// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package har

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
)

// ErrUnsupportedVersion signals a HAR file in a format version we don't
// understand.
var ErrUnsupportedVersion = errors.New("unsupported HAR version")

// HAR is the (very) small subset of an HTTP Archive we're interested in: the
// URLs of the recorded requests.
type HAR struct {
	Log Log `json:"log"`
}

// Log is the root of the exported data.
type Log struct {
	Version string  `json:"version"`
	Creator Creator `json:"creator"`
	Entries []Entry `json:"entries"`
}

// Creator identifies the application that created the HAR file.
type Creator struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// Entry is a single recorded HTTP request with its response; we're only
// interested in the request part.
type Entry struct {
	Request Request `json:"request"`
}

// Request is the request part of an Entry.
type Request struct {
	Method string `json:"method"`
	URL    string `json:"url"`
}

// supportedVersions lists the HAR versions we accept; the empty version
// stands in for HAR files that don't bother to tell.
var supportedVersions = map[string]struct{}{
	"":    {},
	"1.1": {},
	"1.2": {},
	"1.3": {},
}

// Load reads and decodes the HAR file at the specified path.
func Load(path string) (*HAR, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open HAR file: %w", err)
	}
	defer f.Close()
	h, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("cannot read HAR file %s: %w", path, err)
	}
	return h, nil
}

// Read decodes a HAR from the specified reader.
func Read(r io.Reader) (*HAR, error) {
	var h HAR
	if err := json.NewDecoder(r).Decode(&h); err != nil {
		return nil, err
	}
	if _, ok := supportedVersions[h.Log.Version]; !ok {
		return nil, fmt.Errorf("%w %q", ErrUnsupportedVersion, h.Log.Version)
	}
	return &h, nil
}

// URLs returns the request URLs in recording order.
func (h *HAR) URLs() []string {
	urls := make([]string, 0, len(h.Log.Entries))
	for _, entry := range h.Log.Entries {
		urls = append(urls, entry.Request.URL)
	}
	return urls
}
