package models

// Partial-update payloads. Each entity exposes an explicit whitelist of
// updatable fields; keys and derived fields are never part of an
// update. A nil field means "leave unchanged".

// GameUpdate is the set of Game fields a Modify may touch
type GameUpdate struct {
	GameName         *string  `json:"gameName,omitempty"`
	YearReleased     *string  `json:"yearReleased,omitempty"`
	Genre            *string  `json:"genre,omitempty"`
	Console          *string  `json:"console,omitempty"`
	Developer        *string  `json:"developer,omitempty"`
	CoverImageURL    *string  `json:"coverImageUrl,omitempty"`
	DesiredCondition *string  `json:"desiredCondition,omitempty"`
	DesiredPrice     *float64 `json:"desiredPrice,omitempty"`
}

// Empty reports whether the update would change nothing
func (u GameUpdate) Empty() bool {
	return u.GameName == nil && u.YearReleased == nil && u.Genre == nil &&
		u.Console == nil && u.Developer == nil && u.CoverImageURL == nil &&
		u.DesiredCondition == nil && u.DesiredPrice == nil
}

// PriceMonitorUpdate is the set of PriceMonitor fields a Modify may touch
type PriceMonitorUpdate struct {
	DesiredCondition *string  `json:"desiredCondition,omitempty"`
	DesiredPrice     *float64 `json:"desiredPrice,omitempty"`
}

// Empty reports whether the update would change nothing
func (u PriceMonitorUpdate) Empty() bool {
	return u.DesiredCondition == nil && u.DesiredPrice == nil
}
