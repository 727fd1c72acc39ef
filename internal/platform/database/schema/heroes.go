package schema

// HeroTable represents the 'heroes' table
type HeroTable struct {
	Table             string
	ID                string
	Nickname          string
	RealName          string
	OriginDescription string
	Superpowers       string
	CatchPhrase       string
	Images            string
}

// Hero is the schema definition for heroes
var Hero = HeroTable{
	Table:             "heroes",
	ID:                "id",
	Nickname:          "nickname",
	RealName:          "real_name",
	OriginDescription: "origin_description",
	Superpowers:       "superpowers",
	CatchPhrase:       "catch_phrase",
	Images:            "images",
}

// Columns returns every column in scan order.
func (t HeroTable) Columns() []string {
	return []string{t.ID, t.Nickname, t.RealName, t.OriginDescription, t.Superpowers, t.CatchPhrase, t.Images}
}
