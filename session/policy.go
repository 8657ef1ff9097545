package session

import "fmt"

// TeardownPolicy selects what Release does when the last reference goes.
type TeardownPolicy uint8

const (
	// TeardownNever keeps the session open once created.
	TeardownNever TeardownPolicy = iota

	// TeardownOnZero destroys the session and shuts the runtime down when
	// the reference count reaches zero.
	TeardownOnZero
)

// String returns the policy name as accepted by ParseTeardownPolicy.
func (p TeardownPolicy) String() string {
	switch p {
	case TeardownNever:
		return "never"
	case TeardownOnZero:
		return "on-zero"
	default:
		return fmt.Sprintf("TeardownPolicy(%d)", uint8(p))
	}
}

// ParseTeardownPolicy parses "never" or "on-zero".
func ParseTeardownPolicy(s string) (TeardownPolicy, error) {
	switch s {
	case "never", "":
		return TeardownNever, nil
	case "on-zero":
		return TeardownOnZero, nil
	default:
		return TeardownNever, fmt.Errorf("session: unknown teardown policy %q (want never or on-zero)", s)
	}
}
