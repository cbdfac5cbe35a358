package models

// CodeText is one entry of a value-help list.
type CodeText struct {
	Code string `json:"code"`
	Text string `json:"text"`
}

// ImpactLevels lists the selectable impact levels.
func ImpactLevels() []CodeText {
	return []CodeText{
		{Code: string(LevelHigh), Text: "High Impact"},
		{Code: string(LevelMedium), Text: "Medium Impact"},
		{Code: string(LevelLow), Text: "Low Impact"},
	}
}

// ProbabilityLevels lists the selectable probability levels.
func ProbabilityLevels() []CodeText {
	return []CodeText{
		{Code: string(LevelHigh), Text: "High Probability"},
		{Code: string(LevelMedium), Text: "Medium Probability"},
		{Code: string(LevelLow), Text: "Low Probability"},
	}
}

// StatusTypes lists the risk statuses.
func StatusTypes() []CodeText {
	return []CodeText{
		{Code: string(RiskStatusOpen), Text: "Open"},
		{Code: string(RiskStatusMitigated), Text: "Mitigated"},
		{Code: string(RiskStatusClosed), Text: "Closed"},
	}
}
