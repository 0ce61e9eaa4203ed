// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package geoip

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/cenkalti/backoff/v4"
	log "github.com/sirupsen/logrus"
)

// fetcher downloads a database file.
type fetcher struct {
	client  *http.Client
	retries uint64
	backoff func() backoff.BackOff
}

// FetchOption can be passed to Fetch and Load.
type FetchOption func(*fetcher)

// WithHTTPClient uses the specified HTTP client instead of
// http.DefaultClient.
func WithHTTPClient(client *http.Client) FetchOption {
	return func(f *fetcher) {
		f.client = client
	}
}

// WithRetries sets the maximum number of retries after a failed download
// attempt; it defaults to 3.
func WithRetries(retries uint) FetchOption {
	return func(f *fetcher) {
		f.retries = uint64(retries)
	}
}

// withBackOff allows unit tests to skip the waiting.
func withBackOff(b func() backoff.BackOff) FetchOption {
	return func(f *fetcher) {
		f.backoff = b
	}
}

// Fetch downloads the database from url to path, unless there already is a
// file at path. Missing parent directories are created. The download first
// goes into a temporary file in the same directory, which is renamed only
// after a complete and successful download, so there's never a partially
// written database at path.
//
// Failed download attempts are retried with exponential backoff, unless the
// server definitely refuses to serve the database (4xx status codes).
func Fetch(ctx context.Context, path string, url string, options ...FetchOption) error {
	f := &fetcher{
		client:  http.DefaultClient,
		retries: 3,
		backoff: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = time.Second
			return b
		},
	}
	for _, opt := range options {
		opt(f)
	}

	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("cannot access geo IP database %s: %w", path, err)
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("cannot create geo IP database directory: %w", err)
	}

	log.Infof("downloading %s from %s", filepath.Base(path), url)
	err := backoff.RetryNotify(
		func() error { return f.download(ctx, path, url) },
		backoff.WithContext(backoff.WithMaxRetries(f.backoff(), f.retries), ctx),
		func(err error, next time.Duration) {
			log.Warnf("downloading geo IP database failed, retrying in %s: %s", next, err.Error())
		})
	if err != nil {
		return fmt.Errorf("cannot download geo IP database: %w", err)
	}
	return nil
}

// download carries out a single download attempt into a temporary file that
// finally gets renamed into path.
func (f *fetcher) download(ctx context.Context, path string, url string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return backoff.Permanent(err)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	switch {
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return backoff.Permanent(fmt.Errorf("server responded with %s", resp.Status))
	case resp.StatusCode != http.StatusOK:
		return fmt.Errorf("server responded with %s", resp.Status)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return backoff.Permanent(err)
	}
	defer os.Remove(tmp.Name()) // no-op after a successful rename.
	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return backoff.Permanent(err)
	}
	return nil
}
