/*
Package har lists the (unique) domains contacted in an HTTP Archive (HAR)
capture, such as exported from the developer tools of web browsers.

	domains, err := har.DomainsFromFile("capture.har")

The list of domains is sorted and free of duplicates, so it can directly be
fed into an analysis.
*/
package har
