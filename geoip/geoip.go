// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package geoip

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/oschwald/geoip2-golang"
)

// DefaultURL is the download location of the GeoLite2 city database used when
// the database isn't present locally yet.
const DefaultURL = "https://github.com/P3TERX/GeoLite.mmdb/raw/download/GeoLite2-City.mmdb"

// DatabaseName is the file name of the GeoLite2 city database.
const DatabaseName = "GeoLite2-City.mmdb"

// DefaultPath returns the default location of the GeoLite2 city database
// inside the user's home directory.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".geolite2", DatabaseName), nil
}

// Open opens the MaxMind database at the specified path. The returned reader
// is safe for concurrent use; callers should Close it when done.
func Open(path string) (*geoip2.Reader, error) {
	reader, err := geoip2.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open geo IP database %s: %w", path, err)
	}
	return reader, nil
}

// Load opens the MaxMind database at the specified path, downloading it first
// from url in case it doesn't exist yet.
func Load(ctx context.Context, path string, url string, options ...FetchOption) (*geoip2.Reader, error) {
	if err := Fetch(ctx, path, url, options...); err != nil {
		return nil, err
	}
	return Open(path)
}
