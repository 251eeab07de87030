package allocation

import "strings"

// policy specializes the instrument selection for one category.
type policy struct {
	// lumpy assets are bought in large indivisible units, and may borrow a
	// little budget from other categories to afford one.
	lumpy bool
	// continuous instruments take any amount above their minimum, with no
	// unit quantization.
	continuous bool
	// tieBreak returns how many secondary preferences the instrument meets.
	tieBreak func(in Instrument, p Profile) int
}

var policies = [numCategories]policy{
	RealEstate: {lumpy: true, tieBreak: realEstateTieBreak},
	Stocks:     {tieBreak: stocksTieBreak},
	Gold:       {tieBreak: goldTieBreak},
	Bonds:      {tieBreak: bondsTieBreak},
	Savings:    {continuous: true, tieBreak: shariahTieBreak},
	Crypto:     {tieBreak: cryptoTieBreak},
}

func policyFor(c Category) policy { return policies[c] }

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func shariahTieBreak(in Instrument, p Profile) int {
	return boolInt(p.Shariah && in.Shariah)
}

// properties located in the user's own market are easier to follow.
func realEstateTieBreak(in Instrument, p Profile) int {
	local := p.Market != "" && p.Market != GlobalMarket && strings.EqualFold(in.Market, p.Market)
	return boolInt(local) + shariahTieBreak(in, p)
}

var growthSectors = map[string]bool{"technology": true, "real-estate": true, "healthcare": true, "consumer-discretionary": true}
var defensiveSectors = map[string]bool{"energy": true, "utilities": true, "banking": true, "telecom": true, "consumer-staples": true}

// young investors lean to growth sectors, older ones to dividend payers.
func stocksTieBreak(in Instrument, p Profile) int {
	sector := strings.ToLower(in.Sector)
	if p.Age.Young() {
		return boolInt(growthSectors[sector] || in.Kind == "growth") + shariahTieBreak(in, p)
	}
	return boolInt(defensiveSectors[sector] || in.Kind == "dividend") + shariahTieBreak(in, p)
}

// liquid paper gold suits emergency and income goals, bars suit the rest.
func goldTieBreak(in Instrument, p Profile) int {
	paper := in.Kind == "etf" || in.Kind == "digital"
	liquid := p.HasGoal(GoalEmergency) || p.HasGoal(GoalIncome)
	return boolInt(paper == liquid) + shariahTieBreak(in, p)
}

func bondsTieBreak(in Instrument, p Profile) int {
	return boolInt(p.Risk == RiskLow && in.HighGrade()) + shariahTieBreak(in, p)
}

// only risk-seeking profiles should hold beyond the major coins.
func cryptoTieBreak(in Instrument, p Profile) int {
	return boolInt(p.Risk != RiskHigh && strings.EqualFold(in.Sector, "major"))
}
