package item

// Config holds hydration settings.
type Config struct {
	// PerkCategories lists the categories whose fixed plugs are reported as perks,
	// comma separated (e.g. "weapon_perk" or "trait,intrinsic,origin_trait,frame").
	PerkCategories string `mapstructure:"perk_categories" default:"weapon_perk"`
	// Workers bounds concurrent lookups within one hydration.
	Workers int `mapstructure:"workers" default:"4"`
}
