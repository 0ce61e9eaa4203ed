/*
Package mobynet locates the network namespace of a Docker container, so that
names can be dug and addresses probed from the perspective of the container
instead of the host.
*/
package mobynet
