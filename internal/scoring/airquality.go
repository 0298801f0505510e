package scoring

// AQI is ordinal: 1 good, 5 very poor.
const (
	MinAQI = 1
	MaxAQI = 5

	// PoorAQI is the lowest class that triggers an indoor-exercise alert.
	PoorAQI = 4
	// CleanAQIMax is the highest class still suitable for sensitive groups.
	CleanAQIMax = 2
	// ModerateAQIMax is the highest class still suitable for running.
	ModerateAQIMax = 3
)

// ValidAQI reports whether aqi is a known class.
func ValidAQI(aqi int) bool {
	return aqi >= MinAQI && aqi <= MaxAQI
}

// IsPoorAQI reports whether outdoor exercise should move indoors.
func IsPoorAQI(aqi int) bool {
	return aqi >= PoorAQI
}

// AQILabel returns the conventional name of an AQI class.
func AQILabel(aqi int) string {
	switch aqi {
	case 1:
		return "Good"
	case 2:
		return "Fair"
	case 3:
		return "Moderate"
	case 4:
		return "Poor"
	case 5:
		return "Very Poor"
	default:
		return "Unknown"
	}
}
