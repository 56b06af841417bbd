package teams

import (
	"encoding/json"
	"strconv"
)

// PictureType distinguishes mascot artwork from background images.
type PictureType string

const (
	PictureMascot     PictureType = "mascot"
	PictureBackground PictureType = "background"
)

// Team is a candidate record owned by the remote team directory.
// Copies held here are read-only and refreshed per search.
type Team struct {
	TeamID               int    `json:"teamId"`
	TeamName             string `json:"teamName"`
	MinTeamName          string `json:"minTeamName"`
	ShortTeamName        string `json:"shortTeamName,omitempty"`
	Mascot1              string `json:"mascot1,omitempty"`
	City                 string `json:"city"`
	State                string `json:"state"`
	URL                  string `json:"url,omitempty"`
	OrgID                *int   `json:"orgId,omitempty"`
	MascotTeamPictureIDs []int  `json:"mascotTeamPictureIds,omitempty"`
	SquadIDs             []int  `json:"squadIds,omitempty"`
	LogoURL              string `json:"logoUrl,omitempty"`
}

// Picture is a team image referenced from Team.MascotTeamPictureIDs.
type Picture struct {
	TeamPictureID int         `json:"teamPictureId"`
	TeamID        int         `json:"teamId"`
	Type          PictureType `json:"type"`
	Max90URL      string      `json:"max90Url"`
	ThumbnailURL  string      `json:"thumbnailUrl"`
}

// orgIDKeys lists the field names the directory has used for the organization id.
var orgIDKeys = []string{"orgId", "organizationId", "orgID", "org_id"}

// UnmarshalJSON accepts any of the known organization id spellings.
func (t *Team) UnmarshalJSON(data []byte) error {
	type plain Team
	var decoded plain
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	decoded.OrgID = nil
	for _, key := range orgIDKeys {
		val, ok := raw[key]
		if !ok {
			continue
		}
		if id, ok := decodeOrgID(val); ok {
			decoded.OrgID = &id
			break
		}
	}

	*t = Team(decoded)
	return nil
}

func decodeOrgID(raw json.RawMessage) (int, bool) {
	var n int
	if err := json.Unmarshal(raw, &n); err == nil {
		return n, true
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil && s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			return n, true
		}
	}
	return 0, false
}

// HasOrg reports whether the team carries the given organization id.
func (t Team) HasOrg(orgID int) bool {
	return t.OrgID != nil && *t.OrgID == orgID
}

// AttachLogos sets LogoURL from the first mascot picture referenced by each team.
// Thumbnail is preferred over the 90px variant.
func AttachLogos(list []Team, pictures []Picture) []Team {
	if len(pictures) == 0 {
		return list
	}
	byID := make(map[int]Picture, len(pictures))
	for _, pic := range pictures {
		if pic.Type == PictureMascot {
			byID[pic.TeamPictureID] = pic
		}
	}
	out := make([]Team, len(list))
	for i, team := range list {
		out[i] = team
		for _, id := range team.MascotTeamPictureIDs {
			pic, ok := byID[id]
			if !ok {
				continue
			}
			if pic.ThumbnailURL != "" {
				out[i].LogoURL = pic.ThumbnailURL
			} else {
				out[i].LogoURL = pic.Max90URL
			}
			break
		}
	}
	return out
}
