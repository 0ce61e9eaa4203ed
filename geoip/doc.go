/*
Package geoip provides hardig's geo IP lookup capability in form of a
MaxMind GeoLite2 city database reader. If the database is missing locally, it
gets downloaded on first use.

	path, _ := geoip.DefaultPath()
	reader, err := geoip.Load(ctx, path, geoip.DefaultURL)
	if err != nil {
	    // download or open failed
	}
	defer reader.Close()
	city, err := reader.City(net.ParseIP("192.0.2.1"))

The reader returned by [Open] and [Load] is safe for concurrent read-only
use.

# Acknowledgements

Under its hood, this package leverages [oschwald/geoip2-golang] for reading
the database, and [cenkalti/backoff] for retrying downloads.

[oschwald/geoip2-golang]: https://github.com/oschwald/geoip2-golang
[cenkalti/backoff]: https://github.com/cenkalti/backoff
*/
package geoip
