package domain

// State is an entry of the state lookup table.
type State struct {
	ID   ID     `json:"id"`
	Name string `json:"name"`
}

// City is an entry of the city lookup table, scoped to one state.
type City struct {
	ID      ID     `json:"id"`
	City    string `json:"city"`
	StateID ID     `json:"stateId"`
}
