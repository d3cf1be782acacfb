package trial

import "fmt"

// Message возвращает текст для интерфейса по принятому решению.
func Message(d Decision) string {
	switch d.Reason {
	case ReasonSubscribed:
		return "You have an active subscription"
	case ReasonTrialActive:
		if d.DaysRemaining == 1 {
			return "You have 1 day left in your free trial"
		}
		return fmt.Sprintf("You have %d days left in your free trial", d.DaysRemaining)
	case ReasonTrialExpired:
		return "Your 7-day trial has expired. Subscribe to continue learning!"
	case ReasonNoTrial:
		return "Trial not available"
	case ReasonNotAuthenticated:
		return "Please sign in to access your trial"
	}
	return ""
}

func expiryWarning(days int) string {
	if days == 0 {
		return "Your trial expires today! Subscribe now to keep learning."
	}
	return "Your trial expires tomorrow! Subscribe now to keep learning."
}
