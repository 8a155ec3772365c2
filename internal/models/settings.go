package models

// Settings holds user-level application settings.
type Settings struct {
	// Timezone is an IANA timezone name, or "Local" for the system zone.
	// Reference days are computed in this zone.
	Timezone string `json:"timezone"`
}
