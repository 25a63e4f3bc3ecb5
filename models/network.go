package models

// NetworkState is the process-wide reachability state as reported by the
// network monitor. "Online" means the platform believes a usable link
// exists, not that the remote is reachable: remote calls may still fail
// while nominally online.
type NetworkState string

const (
	NetworkOnline  NetworkState = "online"
	NetworkOffline NetworkState = "offline"
)

// IsOnline reports whether the state is NetworkOnline.
func (s NetworkState) IsOnline() bool {
	return s == NetworkOnline
}

// NetworkStateOf maps a boolean link flag to a NetworkState.
func NetworkStateOf(online bool) NetworkState {
	if online {
		return NetworkOnline
	}
	return NetworkOffline
}
