package plancache

// Tier identifiers for reconciliation reporting.
type Source string

const (
	SourceNone   Source = "none"
	SourceLocal  Source = "local"
	SourceRemote Source = "remote"
)

// Reconcile picks the winning copy between the two cache tiers. The remote
// copy wins only when its cachedAt is strictly newer; a tie keeps local (it is
// the cheaper tier to have been right). The tie-breaking rule lives here, in
// one testable function, rather than inline at the call sites.
func Reconcile(local, remote *CachedPlan) (*CachedPlan, Source) {
	switch {
	case local == nil && remote == nil:
		return nil, SourceNone
	case local == nil:
		return remote, SourceRemote
	case remote == nil:
		return local, SourceLocal
	case remote.CachedAt.After(local.CachedAt):
		return remote, SourceRemote
	default:
		return local, SourceLocal
	}
}
