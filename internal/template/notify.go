package template

// Notifier receives the user-facing events raised by template operations.
// Implementations render them; the template package never prints.
type Notifier interface {
	// NoDocuments reports that a catalog scan found nothing usable.
	NoDocuments(folder string)
	// Corrupted reports a catalog entry that was skipped.
	Corrupted(name string, err error)
	// Failure reports an unexpected error that aborted an operation.
	Failure(err error)
	// Success confirms a completed operation.
	Success(msg string)
}

// NopNotifier discards every notification.
type NopNotifier struct{}

func (NopNotifier) NoDocuments(string) {}
func (NopNotifier) Corrupted(string, error) {}
func (NopNotifier) Failure(error) {}
func (NopNotifier) Success(string) {}
