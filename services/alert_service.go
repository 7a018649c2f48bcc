package services

// RealtimeAlert is computed fresh from the current balance on every
// request and is never persisted.
type RealtimeAlert struct {
	Type        string   `json:"type"` // "urgent" | "warning" | "info"
	Title       string   `json:"title"`
	Message     string   `json:"message"`
	Suggestions []string `json:"suggestions,omitempty"`
}

type AlertThresholds struct {
	UrgentBelow  float64
	WarningBelow float64
}

type AlertService struct {
	thresholds AlertThresholds
}

func NewAlertService(t AlertThresholds) *AlertService {
	return &AlertService{thresholds: t}
}

// Evaluate derives the alerts for a balance. At most one balance alert
// fires (the thresholds are mutually exclusive), and balance alerts
// always precede the environment-wide informational ones.
func (s *AlertService) Evaluate(balance float64) []RealtimeAlert {
	alerts := []RealtimeAlert{}

	switch {
	case balance < s.thresholds.UrgentBelow:
		alerts = append(alerts, RealtimeAlert{
			Type:        "urgent",
			Title:       "Critical Balance Warning",
			Message:     "Your balance is very low. Immediate action recommended.",
			Suggestions: []string{"Find nearest ATM", "Contact bank", "Transfer funds"},
		})
	case balance < s.thresholds.WarningBelow:
		alerts = append(alerts, RealtimeAlert{
			Type:        "warning",
			Title:       "Low Balance Alert",
			Message:     "Consider topping up your account soon.",
			Suggestions: []string{"Schedule deposit", "Set up auto-transfer"},
		})
	}

	// Network-wide advisories apply to every user regardless of balance.
	alerts = append(alerts, RealtimeAlert{
		Type:        "info",
		Title:       "ATM Maintenance Alert",
		Message:     "ATM at University is under maintenance. Use Place 1er Mai instead.",
		Suggestions: []string{"Find alternative ATM", "Use card payment"},
	})

	return alerts
}
