package transport

import "context"

// Transport moves single files between the local machine and a remote
// target. Implementations are not required to be safe for concurrent use;
// the runner drives them strictly sequentially.
type Transport interface {
	// Prepare ensures the remote target exists. Called once per run,
	// before the first write.
	Prepare(ctx context.Context) error

	// Put copies the local file at localPath to the remote target under
	// the given name.
	Put(ctx context.Context, localPath, name string) error

	// Get copies the named remote file back to localPath.
	Get(ctx context.Context, name, localPath string) error

	// Remove deletes the named file from the remote target. Missing files
	// are not an error.
	Remove(ctx context.Context, name string) error

	// Describe returns a human-readable identifier of the target for
	// reports and log messages.
	Describe() string
}
