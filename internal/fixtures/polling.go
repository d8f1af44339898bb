package fixtures

// Polling parties, in dataset order.
const (
	PollPartyTea      = "Boston Tea Party"
	PollPartyBirthday = "Birthday Party"
)

// Party colors shared by every scene. Red and blue are avoided on purpose.
const (
	ColorPurple = "#8E6C8A"
	ColorGreen  = "#45A27D"
	ColorGrey   = "#cfcfd6"
)

// PollingYears are the election years on the x axis of scene 1.
var PollingYears = []int{1996, 2000, 2004, 2008, 2012, 2016, 2020, 2024}

// PollingParties lists the polled parties in chart order.
var PollingParties = []string{PollPartyTea, PollPartyBirthday}

// pollingValues are millions of votes per party, aligned with PollingYears.
var pollingValues = map[string][]float64{
	PollPartyTea:      {47, 50, 58, 68, 65, 66, 80, 72},
	PollPartyBirthday: {38, 49, 61, 59, 60, 62, 73, 76},
}

// PollingValues returns a copy of the series for party, or nil if unknown.
func PollingValues(party string) []float64 {
	v, ok := pollingValues[party]
	if !ok {
		return nil
	}
	return append([]float64(nil), v...)
}

// PollingColor returns the bar color for the party at index i.
func PollingColor(i int) string {
	if i == 0 {
		return ColorPurple
	}
	return ColorGreen
}
