package collision

// Zone type tags with a dedicated display style. Catalogs may carry any tag;
// unlisted ones fall back to the default style.
const (
	ZoneDID        = "DID"
	ZoneAirport    = "AIRPORT"
	ZoneRedZone    = "RED_ZONE"
	ZoneYellowZone = "YELLOW_ZONE"
)

const defaultZoneColor = "#9E9E9E"

type zoneStyle struct {
	color    string
	severity Severity
}

var zoneStyles = map[string]zoneStyle{
	ZoneDID:        {color: "#F44336", severity: SeverityWarning},
	ZoneAirport:    {color: "#9C27B0", severity: SeverityDanger},
	ZoneRedZone:    {color: "#b71c1c", severity: SeverityDanger},
	ZoneYellowZone: {color: "#ffc107", severity: SeverityWarning},
}

// ClassifyZone maps a zone type tag to its display color and severity.
// Unrecognized tags get the default gray and WARNING.
func ClassifyZone(zoneType string) (color string, severity Severity) {
	if s, ok := zoneStyles[zoneType]; ok {
		return s.color, s.severity
	}
	return defaultZoneColor, SeverityWarning
}
