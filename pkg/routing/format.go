package routing

import (
	"fmt"
	"strings"
)

// FormatDuration renders minutes as a human-readable span.
func FormatDuration(minutes float64) string {
	switch {
	case minutes < 1:
		return fmt.Sprintf("%d seconds", int(minutes*60))
	case minutes < 60:
		return fmt.Sprintf("%.1f minutes", minutes)
	default:
		hours := int(minutes) / 60
		mins := int(minutes) % 60
		if mins == 0 {
			if hours == 1 {
				return "1 hour"
			}
			return fmt.Sprintf("%d hours", hours)
		}
		return fmt.Sprintf("%dh %dm", hours, mins)
	}
}

func titleLine(line string) string {
	if line == "" {
		return ""
	}
	parts := strings.Split(line, "-")
	for i, p := range parts {
		if p != "" {
			parts[i] = strings.ToUpper(p[:1]) + p[1:]
		}
	}
	return strings.Join(parts, " ")
}

// FormatDetailed renders a full journey breakdown for terminal display.
func FormatDetailed(r *RouteResult, startName, endName string) string {
	if r == nil {
		return "No route found"
	}

	legs := GroupLegs(r.Segments)

	var b strings.Builder
	rule := strings.Repeat("=", 60)

	fmt.Fprintf(&b, "%s\n", rule)
	fmt.Fprintf(&b, "ROUTE: %s -> %s\n", startName, endName)
	fmt.Fprintf(&b, "Total time: %s\n", FormatDuration(r.TotalDuration))
	if r.IsDirectBike {
		fmt.Fprintf(&b, "Direct bicycle ride, no transit used\n")
	}
	fmt.Fprintf(&b, "%s\n", rule)

	for i, leg := range legs {
		fromName := leg.FromName
		toName := leg.ToName
		if i == 0 && leg.Mode == "bike" {
			fromName = startName
		}
		if i == len(legs)-1 && leg.Mode == "bike" {
			toName = endName
		}

		switch leg.Mode {
		case "bike":
			fmt.Fprintf(&b, "\n%d. BIKE: %s -> %s\n", i+1, fromName, toName)
			fmt.Fprintf(&b, "   Duration: %s\n", FormatDuration(leg.DurationMinutes))
			if leg.DistanceKm != nil {
				fmt.Fprintf(&b, "   Distance: %.1f km\n", *leg.DistanceKm)
			}
			if leg.BufferMinutes > 0 {
				fmt.Fprintf(&b, "   Bike time: %.0f min + Station access: %.0f min\n",
					leg.RawDurationMinutes, leg.BufferMinutes)
			}
		case "line_change":
			fmt.Fprintf(&b, "\n%d. LINE CHANGE at %s\n", i+1, leg.FromName)
			fmt.Fprintf(&b, "   Duration: %s\n", FormatDuration(leg.DurationMinutes))
		default:
			fmt.Fprintf(&b, "\n%d. TUBE: %s -> %s\n", i+1, fromName, toName)
			if leg.Line != "" {
				fmt.Fprintf(&b, "   Line: %s\n", titleLine(leg.Line))
			}
			fmt.Fprintf(&b, "   Duration: %s\n", FormatDuration(leg.DurationMinutes))
			if leg.StopCount > 1 {
				fmt.Fprintf(&b, "   Stops: %d stations\n", leg.StopCount)
			}
		}
	}

	fmt.Fprintf(&b, "\n%s\n", rule)
	fmt.Fprintf(&b, "Total journey time: %s\n", FormatDuration(r.TotalDuration))

	return b.String()
}

// FormatSimple renders a one-line journey summary.
func FormatSimple(r *RouteResult) string {
	if r == nil {
		return "No route found"
	}

	var parts []string
	for _, leg := range GroupLegs(r.Segments) {
		switch leg.Mode {
		case "bike":
			parts = append(parts, fmt.Sprintf("bike %.1fmin", leg.RawDurationMinutes))
		case "line_change":
			parts = append(parts, fmt.Sprintf("change %.0fmin", leg.DurationMinutes))
		default:
			line := titleLine(leg.Line)
			if line == "" {
				line = "Tube"
			}
			parts = append(parts, fmt.Sprintf("tube %.0fmin (%s)", leg.DurationMinutes, line))
		}
	}

	return fmt.Sprintf("%s = %s total", strings.Join(parts, " -> "), FormatDuration(r.TotalDuration))
}
