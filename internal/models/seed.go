package models

const (
	UserAizi   = "aizi"
	UserOrfeus = "orfeus"

	DefaultDailyLimit = 120
	DefaultStartDate  = "2025-08-25"
	DefaultEndDate    = "2025-09-30"
)

func DefaultWeeklyGoals() []string {
	return []string{"Meta 1", "Meta 2", "Meta 3"}
}

// SeedDocument is written once when no document has been persisted yet.
func SeedDocument() Document {
	return Document{
		Users: map[string]User{
			UserAizi: {
				Name:           "Aizi",
				Avatar:         "https://a0.anyrgb.com/pngimg/1708/588/rattata-raticate-color-depth-pidgeot-8bit-pikachu-bit-sprite-pixel-art-pokemon.png",
				DailyLimit:     DefaultDailyLimit,
				WeeklyGoals:    DefaultWeeklyGoals(),
				Points:         0,
				ScreenTimes:    map[string]int{},
				GoalsCompleted: map[string][]bool{},
			},
			UserOrfeus: {
				Name:           "Orfeus",
				Avatar:         "https://art.pixilart.com/sr280fab26ceb71.png",
				DailyLimit:     DefaultDailyLimit,
				WeeklyGoals:    DefaultWeeklyGoals(),
				Points:         0,
				ScreenTimes:    map[string]int{},
				GoalsCompleted: map[string][]bool{},
			},
		},
		GameSettings: GameSettings{
			StartDate: DefaultStartDate,
			EndDate:   DefaultEndDate,
		},
	}
}
