package games

// Sport is the remote service's sport name.
type Sport string

// SegmentType is the game segmentation scheme for a sport.
type SegmentType string

const (
	SegmentQuarter SegmentType = "quarter"
	SegmentHalf    SegmentType = "half"
	SegmentPeriod  SegmentType = "period"
	SegmentInning3 SegmentType = "inning-3"
	SegmentInning5 SegmentType = "inning-5"
	SegmentInning7 SegmentType = "inning-7"
	SegmentInning9 SegmentType = "inning-9"
	SegmentBestOf3 SegmentType = "game-3"
	SegmentBestOf5 SegmentType = "game-5"
)

// Squad ids used by the remote service.
const (
	SquadVarsityBoys   = 1010
	SquadJVBoys        = 1020
	SquadFreshmanBoys  = 1030
	SquadVarsityGirls  = 1040
	SquadJVGirls       = 1050
	SquadFreshmanGirls = 1060
)

// Organization ids used to filter team searches.
const (
	OrgHighSchool = 1000
	OrgNCAA       = 1001
	OrgNFL        = 1002
	OrgNBA        = 1003
	OrgMLB        = 1004
	OrgNHL        = 1005
	OrgMLS        = 1006
	OrgCustom     = -1
)

// Option is a value/label pair offered to clients choosing defaults.
type Option[T comparable] struct {
	Value T      `json:"value"`
	Label string `json:"label"`
}

// Squads lists the selectable squads.
var Squads = []Option[int]{
	{SquadVarsityBoys, "Varsity Boys"},
	{SquadJVBoys, "JV Boys"},
	{SquadFreshmanBoys, "Freshman Boys"},
	{SquadVarsityGirls, "Varsity Girls"},
	{SquadJVGirls, "JV Girls"},
	{SquadFreshmanGirls, "Freshman Girls"},
}

// Organizations lists the selectable organization filters.
var Organizations = []Option[int]{
	{OrgHighSchool, "High School"},
	{OrgNCAA, "NCAA"},
	{OrgNFL, "NFL"},
	{OrgNBA, "NBA"},
	{OrgMLB, "MLB"},
	{OrgNHL, "NHL"},
	{OrgMLS, "MLS"},
	{OrgCustom, "Other (Custom)"},
}

// Sports lists the supported sports in display order.
var Sports = []Option[Sport]{
	{"football", "Football"},
	{"basketball", "Basketball"},
	{"baseball", "Baseball"},
	{"softball", "Softball"},
	{"hockey", "Hockey"},
	{"volleyball", "Volleyball"},
	{"soccer", "Soccer"},
	{"lacrosse", "Lacrosse"},
	{"rugby", "Rugby"},
	{"waterpolo", "Water Polo"},
	{"fieldhockey", "Field Hockey"},
	{"ultimatefrisbee", "Ultimate Frisbee"},
	{"wrestling", "Wrestling"},
	{"netball", "Netball"},
	{"handball", "Handball"},
	{"flagfootball", "Flag Football"},
}

// segmentTypes holds the allowed segment types per sport; the first entry is the default.
var segmentTypes = map[Sport][]SegmentType{
	"football":        {SegmentQuarter, SegmentHalf},
	"basketball":      {SegmentQuarter, SegmentHalf},
	"baseball":        {SegmentInning7, SegmentInning3, SegmentInning5, SegmentInning9},
	"softball":        {SegmentInning7, SegmentInning5},
	"soccer":          {SegmentHalf},
	"volleyball":      {SegmentBestOf5, SegmentBestOf3},
	"hockey":          {SegmentPeriod},
	"lacrosse":        {SegmentQuarter},
	"rugby":           {SegmentHalf},
	"waterpolo":       {SegmentQuarter},
	"fieldhockey":     {SegmentHalf},
	"ultimatefrisbee": {SegmentHalf},
	"wrestling":       {SegmentPeriod},
	"netball":         {SegmentQuarter},
	"handball":        {SegmentHalf},
	"flagfootball":    {SegmentQuarter, SegmentHalf},
}

// Known reports whether the sport is in the catalog.
func (s Sport) Known() bool {
	_, ok := segmentTypes[s]
	return ok
}

// SegmentTypes returns the segment types allowed for the sport.
func (s Sport) SegmentTypes() []SegmentType {
	return append([]SegmentType(nil), segmentTypes[s]...)
}

// DefaultSegmentType returns the sport's default segmentation, or "" for unknown sports.
func (s Sport) DefaultSegmentType() SegmentType {
	types := segmentTypes[s]
	if len(types) == 0 {
		return ""
	}
	return types[0]
}

// Allows reports whether st is a valid segment type for the sport.
func (s Sport) Allows(st SegmentType) bool {
	for _, candidate := range segmentTypes[s] {
		if candidate == st {
			return true
		}
	}
	return false
}
