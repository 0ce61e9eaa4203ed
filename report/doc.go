/*
Package report renders analysis records, either as a psql-style [Table] for
humans, or as [JSON] for further processing.

	 domain       | addrs       | latency | geo              | err
	--------------+-------------+---------+------------------+----------------------------
	 good.example | 192.0.2.1   | 12ms    | Germany / Munich |
	              | 2001:db8::1 |         | Germany          |
	 bad.invalid  |             | 0ms     |                  | no such host "bad.invalid"
*/
package report
