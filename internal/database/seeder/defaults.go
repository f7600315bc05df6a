package seeder

// Defaults returns the starter catalog seeders in dependency order.
func Defaults() []Seeder {
	return []Seeder{
		SkillsSeeder{},
		PrerequisitesSeeder{},
		RolesSeeder{},
		MetricsSeeder{},
	}
}
