package collateral

type AccountDTO struct {
	User    string `json:"user_id"`
	Balance uint64 `json:"balance"`
	// Custody is the asset balance held for the user's collateral.
	Custody uint64 `json:"custody_balance"`
	// External is the user's own asset balance.
	External uint64 `json:"external_balance"`
}
