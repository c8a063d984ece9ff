package catalog

// LeaderboardEntry is one row of the static rankings table.
type LeaderboardEntry struct {
	Rank     int
	Name     string
	Score    int
	District string
}

// Leaderboard returns the static rankings. This is display data only.
func Leaderboard() []LeaderboardEntry {
	return []LeaderboardEntry{
		{Rank: 1, Name: "Aditya Kumar", Score: 4500, District: "Patna"},
		{Rank: 2, Name: "Neha Singh", Score: 4200, District: "Muzaffarpur"},
		{Rank: 3, Name: "Rahul Dev", Score: 3900, District: "Gaya"},
		{Rank: 4, Name: "Priya Sharma", Score: 3600, District: "Bhagalpur"},
	}
}
