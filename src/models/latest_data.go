package models

// -----------------------------------------------------------------------------
// Live feed message pushed to websocket clients after every analysis
// -----------------------------------------------------------------------------

type MAnalysisEvent struct {
	Type      string   `json:"type"` // "ANALYSIS"
	Analysis  Analysis `json:"analysis"`
	Narrative string   `json:"narrative,omitempty"`
	Timestamp int64    `json:"timestamp"`
}

// -----------------------------------------------------------------------------
// SubscribeCommand for client messages
// -----------------------------------------------------------------------------

type MSubscribeCommand struct {
	Command string     `json:"command"`
	Tiers   []RiskTier `json:"tiers"`
}
