package dgmenu

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the public API.
var (
	// ErrUninitialized is returned when the Manager is missing a collaborator
	// it cannot work without. This is a setup error: treat it as fatal
	// misconfiguration, not something to retry.
	ErrUninitialized = errors.New("dgmenu: manager is not fully initialized")

	// ErrNoReactionUser is returned when a reaction notification carries no
	// resolvable acting user.
	ErrNoReactionUser = errors.New("dgmenu: reaction has no resolvable user")
)

// PageNotFoundError is returned when a page index is out of range.
type PageNotFoundError struct {
	// Index is the requested page index.
	Index int
}

func (e *PageNotFoundError) Error() string {
	return fmt.Sprintf("dgmenu: page %d not found", e.Index)
}

// DuplicateEntryError is returned by Registry.Insert when an entry already
// exists at the identity. Overwriting silently would orphan the live listener,
// so insertion is rejected instead.
type DuplicateEntryError struct {
	Identity MessageIdentity
}

func (e *DuplicateEntryError) Error() string {
	return fmt.Sprintf("dgmenu: listener already registered for message %s", e.Identity)
}

// MissingEntryError is returned by Registry.Rekey when the old identity has no
// entry. It signals that the registry and the live object disagree about the
// message identity, which is a logic error, never a condition to swallow.
type MissingEntryError struct {
	Identity MessageIdentity
}

func (e *MissingEntryError) Error() string {
	return fmt.Sprintf("dgmenu: no listener registered for message %s", e.Identity)
}
