// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package mobynet

import (
	"context"
	"fmt"

	"github.com/docker/docker/api/types"
	"github.com/docker/docker/client"
)

// ContainerInspector inspects Docker containers; a Docker *client.Client is a
// ContainerInspector.
type ContainerInspector interface {
	ContainerInspect(ctx context.Context, containerID string) (types.ContainerJSON, error)
}

// NewClient returns a new Docker client, configured from the environment
// (DOCKER_HOST, et cetera) with API version negotiation.
func NewClient() (*client.Client, error) {
	cln, err := client.NewClientWithOpts(
		client.FromEnv,
		client.WithAPIVersionNegotiation(),
	)
	if err != nil {
		return nil, fmt.Errorf("cannot connect to the Docker daemon: %w", err)
	}
	return cln, nil
}

// NetnsOf returns the filesystem path referencing the network namespace of
// the container with the specified name or ID, such as "/proc/666/ns/net".
// The container must be running, as otherwise it doesn't have a network
// namespace.
func NetnsOf(ctx context.Context, moby ContainerInspector, name string) (string, error) {
	details, err := moby.ContainerInspect(ctx, name)
	if err != nil {
		return "", fmt.Errorf("cannot inspect container '%s': %w", name, err)
	}
	if details.ContainerJSONBase == nil || details.State == nil || details.State.Pid == 0 {
		return "", fmt.Errorf("container '%s' is not running", name)
	}
	return fmt.Sprintf("/proc/%d/ns/net", details.State.Pid), nil
}
