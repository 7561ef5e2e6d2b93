package testutil

// Fixed identifiers for deterministic tests.
const (
	TestUserID    = "user_00000000000000000000000001"
	TestUserID2   = "user_00000000000000000000000002"
	TestAdminID   = "user_000000000000000000000000a1"
	TestListingID = "listing-0001"

	TestLenderBanorte = "lender-banorte"
)
