package git

import "context"

// Tagger creates release tags and pushes them to a remote
type Tagger interface {
	CreateTag(ctx context.Context, name string) error
	PushTag(ctx context.Context, remote, name string) error
}

// RemoteInspector reports the URL configured for a remote
type RemoteInspector interface {
	RemoteURL(remote string) (string, error)
}
