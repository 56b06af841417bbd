package testutil

import (
	"github.com/preston-bernstein/schedule-import-service/internal/domain/teams"
	"github.com/preston-bernstein/schedule-import-service/internal/schedule"
)

// ScheduleCSV is a three-game schedule against the fixture directory: one row resolves
// cleanly, one has an ambiguous home team and one names an unknown school.
const ScheduleCSV = "Date,Time,Home Team,Away Team,Home Score,Away Score\n" +
	"9/5/2026,7:00 PM,Servite High School,Los Alamitos High School,28,21\n" +
	"9/12/2026,7:00 PM,Centennial,Servite High School,,\n" +
	"9/19/2026,7:00 PM,Nowhere Prep,Servite High School,,\n"

// SampleTable returns ScheduleCSV as an already parsed table.
func SampleTable() schedule.Table {
	return schedule.Table{
		Headers: []string{"Date", "Time", "Home Team", "Away Team", "Home Score", "Away Score"},
		Rows: []map[string]string{
			{"Date": "9/5/2026", "Time": "7:00 PM", "Home Team": "Servite High School", "Away Team": "Los Alamitos High School", "Home Score": "28", "Away Score": "21"},
			{"Date": "9/12/2026", "Time": "7:00 PM", "Home Team": "Centennial", "Away Team": "Servite High School", "Home Score": "", "Away Score": ""},
			{"Date": "9/19/2026", "Time": "7:00 PM", "Home Team": "Nowhere Prep", "Away Team": "Servite High School", "Home Score": "", "Away Score": ""},
		},
	}
}

// SampleTeam returns a minimal high school team.
func SampleTeam(id int, name string) teams.Team {
	org := 1000
	return teams.Team{
		TeamID:      id,
		TeamName:    name,
		MinTeamName: name,
		City:        "Anaheim",
		State:       "CA",
		OrgID:       &org,
	}
}
