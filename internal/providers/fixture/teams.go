package fixture

import (
	"github.com/preston-bernstein/schedule-import-service/internal/domain/games"
	"github.com/preston-bernstein/schedule-import-service/internal/domain/teams"
)

// DefaultTeams returns the fixed directory used when no live service is configured.
func DefaultTeams() []teams.Team {
	hs := games.OrgHighSchool
	college := games.OrgNCAA
	return []teams.Team{
		team(101, "Mater Dei High School", "Mater Dei", "Monarchs", "Santa Ana", "CA", &hs),
		team(102, "Mater Dei Catholic High School", "Mater Dei Catholic", "Crusaders", "Chula Vista", "CA", &hs),
		team(103, "Servite High School", "Servite", "Friars", "Anaheim", "CA", &hs),
		team(104, "St. John Bosco High School", "St. John Bosco", "Braves", "Bellflower", "CA", &hs),
		team(105, "Centennial High School", "Centennial", "Huskies", "Corona", "CA", &hs),
		team(106, "Centennial High School", "Centennial", "Eagles", "Bakersfield", "CA", &hs),
		team(107, "Los Alamitos High School", "Los Alamitos", "Griffins", "Los Alamitos", "CA", &hs),
		team(108, "Santa Margarita Catholic High School", "Santa Margarita", "Eagles", "Rancho Santa Margarita", "CA", &hs),
		team(109, "Bishop Gorman High School", "Bishop Gorman", "Gaels", "Las Vegas", "NV", &hs),
		team(110, "De La Salle High School", "De La Salle", "Spartans", "Concord", "CA", &hs),
		team(111, "Corona del Mar High School", "Corona del Mar", "Sea Kings", "Newport Beach", "CA", &hs),
		team(112, "Orange Lutheran High School", "Orange Lutheran", "Lancers", "Orange", "CA", &hs),
		team(201, "University of Southern California", "USC", "Trojans", "Los Angeles", "CA", &college),
		team(202, "University of California, Los Angeles", "UCLA", "Bruins", "Los Angeles", "CA", &college),
	}
}

func team(id int, name, minName, mascot, city, state string, org *int) teams.Team {
	return teams.Team{
		TeamID:        id,
		TeamName:      name,
		MinTeamName:   minName,
		ShortTeamName: minName,
		Mascot1:       mascot,
		City:          city,
		State:         state,
		URL:           "https://fixture.local/team/" + minName,
		OrgID:         org,
		SquadIDs:      []int{games.SquadVarsityBoys, games.SquadVarsityGirls},
	}
}
