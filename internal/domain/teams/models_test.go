package teams

import (
	"encoding/json"
	"testing"
)

func TestTeamDecodesAlternateOrgIDFields(t *testing.T) {
	cases := map[string]string{
		"orgId":          `{"teamId":1,"orgId":1000}`,
		"organizationId": `{"teamId":1,"organizationId":1000}`,
		"orgID":          `{"teamId":1,"orgID":1000}`,
		"org_id string":  `{"teamId":1,"org_id":"1000"}`,
	}
	for name, payload := range cases {
		t.Run(name, func(t *testing.T) {
			var team Team
			if err := json.Unmarshal([]byte(payload), &team); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !team.HasOrg(1000) {
				t.Fatalf("expected org 1000, got %+v", team.OrgID)
			}
		})
	}
}

func TestTeamWithoutOrgID(t *testing.T) {
	var team Team
	if err := json.Unmarshal([]byte(`{"teamId":5,"teamName":"Oakdale High School"}`), &team); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if team.OrgID != nil {
		t.Fatalf("expected nil org id, got %d", *team.OrgID)
	}
	if team.HasOrg(1000) {
		t.Fatal("expected HasOrg false without org id")
	}
	if team.TeamName != "Oakdale High School" || team.TeamID != 5 {
		t.Fatalf("unexpected team %+v", team)
	}
}

func TestAttachLogosPrefersMascotThumbnail(t *testing.T) {
	list := []Team{
		{TeamID: 1, MascotTeamPictureIDs: []int{10}},
		{TeamID: 2, MascotTeamPictureIDs: []int{20}},
		{TeamID: 3, MascotTeamPictureIDs: []int{30}},
	}
	pics := []Picture{
		{TeamPictureID: 10, Type: PictureMascot, ThumbnailURL: "thumb-1", Max90URL: "max-1"},
		{TeamPictureID: 20, Type: PictureMascot, Max90URL: "max-2"},
		{TeamPictureID: 30, Type: PictureBackground, ThumbnailURL: "bg-3"},
	}

	got := AttachLogos(list, pics)

	if got[0].LogoURL != "thumb-1" {
		t.Fatalf("expected thumbnail logo, got %q", got[0].LogoURL)
	}
	if got[1].LogoURL != "max-2" {
		t.Fatalf("expected max90 fallback, got %q", got[1].LogoURL)
	}
	if got[2].LogoURL != "" {
		t.Fatalf("expected background picture ignored, got %q", got[2].LogoURL)
	}
	if list[0].LogoURL != "" {
		t.Fatal("expected input slice untouched")
	}
}
