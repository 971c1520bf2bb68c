package service

// Requirement describes who may invoke an operation.
type Requirement int

const (
	// Anyone permits anonymous callers
	Anyone Requirement = iota
	// Authenticated requires a resolved actor
	Authenticated
	// PostOwner requires a resolved actor who owns the target post;
	// ownership itself is checked by the operation against the loaded
	// resource
	PostOwner
)

// policies maps operation names to their access requirement. Evaluated
// before the operation body runs; unknown operations fall back to
// Authenticated.
var policies = map[string]Requirement{
	"user.list":            Anyone,
	"user.get":             Anyone,
	"user.posts":           Anyone,
	"user.follow_user":     Anyone,
	"user.follower_user":   Anyone,
	"user.following_posts": Anyone,
	"user.check_follow":    Authenticated,
	"user.follow":          Authenticated,
	"user.unfollow":        Authenticated,

	"post.list":      Anyone,
	"post.get":       Anyone,
	"post.create":    Authenticated,
	"post.update":    PostOwner,
	"post.like_user": Anyone,
	"post.like":      Authenticated,
	"post.unlike":    Authenticated,

	"auth.register": Anyone,
	"auth.login":    Anyone,
	"auth.logout":   Authenticated,
}

// Requires returns the access requirement for an operation
func Requires(operation string) Requirement {
	if r, ok := policies[operation]; ok {
		return r
	}
	return Authenticated
}

// Authorize checks an actor against an operation's requirement. Actor ID
// zero means anonymous. Ownership for PostOwner operations is enforced by
// the operation itself once the resource is loaded.
func Authorize(operation string, actorID int64) error {
	switch Requires(operation) {
	case Anyone:
		return nil
	default:
		if actorID == 0 {
			return PermissionDenied("Authentication credentials were not provided.")
		}
		return nil
	}
}
